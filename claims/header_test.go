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

package claims

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

func TestHeaderAlgorithmAndKeyID(t *testing.T) {
	h := NewHeader()
	h.SetAlgorithm(jwa.ES256)
	kid := "key-1"
	h.SetKeyID(&kid)
	typ := "JWT"
	h.SetType(&typ)

	alg, ok := h.Algorithm()
	require.True(t, ok)
	require.Equal(t, jwa.ES256, alg)

	gotKid, ok := h.KeyID()
	require.True(t, ok)
	require.Equal(t, kid, gotKid)

	gotTyp, ok := h.Type()
	require.True(t, ok)
	require.Equal(t, typ, gotTyp)
}

func TestHeaderJWKEmbedding(t *testing.T) {
	h := NewHeader()
	jwk := store.New()
	jwk.Set("kty", "EC")
	jwk.Set("crv", "P-256")
	h.SetJWK(jwk)

	got, ok := h.JWK()
	require.True(t, ok)
	kty, ok := got.Get("kty")
	require.True(t, ok)
	require.Equal(t, "EC", kty)
}

func TestHeaderJWKAbsent(t *testing.T) {
	h := NewHeader()
	_, ok := h.JWK()
	require.False(t, ok)
}
