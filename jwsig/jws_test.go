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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/jwskey"
	"github.com/jozefizso/jwsetkit/store"
)

func headerWithAlg(t *testing.T, alg jwa.Algorithm, extra map[string]any) store.Storage {
	t.Helper()
	s := store.New()
	s.Set("alg", string(alg))
	for k, v := range extra {
		s.Set(k, v)
	}
	return s
}

func TestJWSCompactRoundTrip(t *testing.T) {
	key := jwskey.NewHMACKey("k1", []byte("secret"))

	js := New([]byte(`{"foo":"bar"}`))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"typ": "JWT", "kid": "k1"}), nil, []jwskey.SigningKey{key}))

	compact, err := js.CompactSerialize()
	require.NoError(t, err)
	require.Len(t, js.Signatures, 1)

	decoded, err := Decode([]byte(compact))
	require.NoError(t, err)
	require.Equal(t, js.PayloadB64, decoded.PayloadB64)
	require.Equal(t, js.Signatures[0].ProtectedB64, decoded.Signatures[0].ProtectedB64)
	require.Equal(t, js.Signatures[0].SignatureBytes, decoded.Signatures[0].SignatureBytes)

	recompact, err := decoded.CompactSerialize()
	require.NoError(t, err)
	require.Equal(t, compact, recompact, "re-serializing an unmutated decode must be byte-identical")

	require.NoError(t, decoded.Verify([]jwskey.ValidatingKey{key}))
}

func TestJWSSerializeChoosesFormByShape(t *testing.T) {
	keyA := jwskey.NewHMACKey("a", []byte("secret-a"))
	keyB := jwskey.NewHMACKey("b", []byte("secret-b"))

	single := New([]byte(`{}`))
	require.NoError(t, single.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "a"}), nil, []jwskey.SigningKey{keyA}))
	out, err := single.Serialize()
	require.NoError(t, err)
	require.NotEqual(t, byte('{'), out[0], "single signature with no unprotected header serializes compact")

	withUnprotected := New([]byte(`{}`))
	require.NoError(t, withUnprotected.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "a"}), store.New(), []jwskey.SigningKey{keyA}))
	withUnprotected.Signatures[0].Unprotected.Set("extra", "header")
	out, err = withUnprotected.Serialize()
	require.NoError(t, err)
	require.Equal(t, byte('{'), out[0])
	_, err = withUnprotected.CompactSerialize()
	require.Error(t, err)

	multi := New([]byte(`{}`))
	require.NoError(t, multi.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "a", "typ": "JWT"}), nil, []jwskey.SigningKey{keyA}))
	require.NoError(t, multi.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "b", "typ": "CIC"}), nil, []jwskey.SigningKey{keyB}))
	out, err = multi.GeneralJSON()
	require.NoError(t, err)

	decoded, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, decoded.Signatures, 2)
	require.NoError(t, decoded.Verify([]jwskey.ValidatingKey{keyA, keyB}))

	jwtToken, err := decoded.GetSignatureByTyp("JWT")
	require.NoError(t, err)
	require.NotEmpty(t, jwtToken)

	missing, err := decoded.GetSignatureByTyp("COS")
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestJWSVerifyRejectsTamperedSignature(t *testing.T) {
	key := jwskey.NewHMACKey("k1", []byte("secret"))
	js := New([]byte(`{"foo":"bar"}`))
	require.NoError(t, js.AddSignature(headerWithAlg(t, jwa.HS256, map[string]any{"kid": "k1"}), nil, []jwskey.SigningKey{key}))
	js.Signatures[0].SignatureBytes[0] ^= 0xFF

	err := js.Verify([]jwskey.ValidatingKey{key})
	require.Error(t, err)
}

func TestJWSDecodeMalformedInputs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"wrong dot count", "eyJhIjoxfQ.eyJiIjoyfQ"},
		{"not json not compact", "not a jws"},
		{"json missing signature and signatures", `{"payload":"eyJhIjoxfQ"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.raw))
			require.Error(t, err)
		})
	}
}

func TestJWSDecodeEmptySignaturesArray(t *testing.T) {
	decoded, err := Decode([]byte(`{"payload":"eyJhIjogIjEiLCAiYiI6IDJ9","signatures":[]}`))
	require.NoError(t, err)
	require.Empty(t, decoded.Signatures)
	require.ErrorIs(t, decoded.Verify(nil), joseerr.ErrAuthenticationFailure)
}
