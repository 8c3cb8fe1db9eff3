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

package jwskey

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jozefizso/jwsetkit/jwa"
)

func TestEd25519SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signing := NewEd25519PrivateKey("ed-1", priv)
	defer signing.(Destroyer).Destroy()

	sig, err := signing.Sign([]byte("message"), jwa.EdDSA)
	require.NoError(t, err)
	require.Len(t, sig, ed25519.SignatureSize)

	validating := NewEd25519PublicKey("ed-1", pub)
	require.NoError(t, validating.Verify([]byte("message"), sig, jwa.EdDSA))
}

func TestEd25519VerifyRejectsTamperedSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signing := NewEd25519PrivateKey("ed-1", priv)
	sig, err := signing.Sign([]byte("message"), jwa.EdDSA)
	require.NoError(t, err)
	sig[0] ^= 0x01

	validating := NewEd25519PublicKey("ed-1", pub)
	require.Error(t, validating.Verify([]byte("message"), sig, jwa.EdDSA))
}

func TestEd25519RejectsOtherAlgorithms(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	validating := NewEd25519PublicKey("ed-1", pub)
	require.False(t, validating.SupportsAlgorithm(jwa.ES256))
}
