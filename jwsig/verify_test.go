// Copyright 2024 OpenPubkey
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package jwsig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/jwskey"
)

func TestVerifyRejectsAlgNoneEvenWithNoKeys(t *testing.T) {
	js := New([]byte(`{}`))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.None, nil), nil, nil))

	err := js.Verify(nil)
	require.ErrorIs(t, err, joseerr.ErrOperationNotAllowed)

	err = js.Verify([]jwskey.ValidatingKey{jwskey.NewHMACKey("k", []byte("secret"))})
	require.ErrorIs(t, err, joseerr.ErrOperationNotAllowed)
}

func TestVerifyES256RoundTripAndBitFlip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	signing := jwskey.NewECDSAPrivateKey("es-1", priv)
	validating := jwskey.NewECDSAPublicKey("es-1", &priv.PublicKey)

	js := New([]byte(`{"foo":"bar"}`))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.ES256, map[string]any{"kid": "es-1"}), nil, []jwskey.SigningKey{signing}))
	require.NoError(t, js.Verify([]jwskey.ValidatingKey{validating}))

	js.Signatures[0].SignatureBytes[0] ^= 0x01
	require.Error(t, js.Verify([]jwskey.ValidatingKey{validating}))
}

func TestVerifyMultiSignatureRequiresAllKeys(t *testing.T) {
	hmacKey := jwskey.NewHMACKey("hmac-1", []byte("secret"))
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecKey := jwskey.NewECDSAPrivateKey("ec-1", priv)

	js := New([]byte(`{"foo":"bar"}`))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "hmac-1"}), nil, []jwskey.SigningKey{hmacKey}))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.ES256, map[string]any{"kid": "ec-1"}), nil, []jwskey.SigningKey{ecKey}))

	require.NoError(t, js.Verify([]jwskey.ValidatingKey{hmacKey, ecKey}))

	// Removing the HMAC key from the candidate set fails verification,
	// even though the EC signature alone is still valid.
	err = js.Verify([]jwskey.ValidatingKey{ecKey})
	require.Error(t, err)
}
