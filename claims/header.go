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
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// HeaderTable is the registered-parameter table for the JOSE header
// parameters this module concerns itself with (RFC 7515 §4.1 plus
// the DPoP "jwk" usage from RFC 9449 §4.2).
var HeaderTable = Table{
	"algorithm":   {Wire: "alg"},
	"keyID":       {Wire: "kid"},
	"type":        {Wire: "typ"},
	"contentType": {Wire: "cty"},
	"jwk":         {Wire: "jwk"},
}

// Header is a typed view over a JOSE header Storage (protected or
// unprotected).
type Header struct {
	Storage store.Storage
}

// NewHeader returns a Header view over a freshly-allocated, empty
// Storage.
func NewHeader() *Header {
	return &Header{Storage: store.New()}
}

// WrapHeader returns a Header view over an existing Storage.
func WrapHeader(s store.Storage) *Header {
	if s == nil {
		s = store.New()
	}
	return &Header{Storage: s}
}

func (h *Header) Algorithm() (jwa.Algorithm, bool) {
	s, ok := store.GetString(h.Storage, HeaderTable["algorithm"].Wire)
	return jwa.Algorithm(s), ok
}

func (h *Header) SetAlgorithm(alg jwa.Algorithm) {
	s := string(alg)
	store.SetString(h.Storage, HeaderTable["algorithm"].Wire, &s)
}

func (h *Header) KeyID() (string, bool) {
	return store.GetString(h.Storage, HeaderTable["keyID"].Wire)
}

func (h *Header) SetKeyID(v *string) {
	store.SetString(h.Storage, HeaderTable["keyID"].Wire, v)
}

func (h *Header) Type() (string, bool) {
	return store.GetString(h.Storage, HeaderTable["type"].Wire)
}

func (h *Header) SetType(v *string) {
	store.SetString(h.Storage, HeaderTable["type"].Wire, v)
}

// JWK returns the embedded "jwk" header parameter as a Storage, if
// present. Used by the DPoP profile (§4.7) to carry the public key
// matching the private key that signed the proof.
func (h *Header) JWK() (store.Storage, bool) {
	raw, ok := h.Storage.Get(HeaderTable["jwk"].Wire)
	if !ok {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	return store.Storage(m), true
}

// SetJWK embeds jwk as the "jwk" header parameter.
func (h *Header) SetJWK(jwk store.Storage) {
	h.Storage.Set(HeaderTable["jwk"].Wire, map[string]any(jwk))
}
