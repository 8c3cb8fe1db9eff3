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

// Package jwkset is a supplemental feature beyond the distilled
// spec: an ordered list of JWK-backed keys with lookup-by-kid,
// mirroring the shape of the teacher's pktoken/mocks key-list
// handling, but deliberately without any fetch or cache policy
// (that stays out of scope per spec §1 Non-goals — "JWK Set
// fetch/caching policy"). A Set is built with New and Add; a JSON
// {"keys": [...]} document is decoded to and encoded from raw JWK
// Storages (DecodeJWKStorages, EncodeJWKStorages). This package does
// not know how those bytes arrived.
package jwkset

import (
	json "github.com/goccy/go-json"

	"github.com/jozefizso/jwsetkit/jwskey"
	"github.com/jozefizso/jwsetkit/store"
)

// Set is an ordered collection of validating keys, keyed by their
// position and (optionally) their "kid".
type Set struct {
	keys []jwskey.ValidatingKey
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Add appends key to the set.
func (s *Set) Add(key jwskey.ValidatingKey) {
	s.keys = append(s.keys, key)
}

// Keys returns every key in the set, in insertion order.
func (s *Set) Keys() []jwskey.ValidatingKey {
	return append([]jwskey.ValidatingKey{}, s.keys...)
}

// ByKeyID returns the first key whose KeyID equals kid.
func (s *Set) ByKeyID(kid string) (jwskey.ValidatingKey, bool) {
	for _, k := range s.keys {
		if k.KeyID() == kid {
			return k, true
		}
	}
	return nil, false
}

// Len reports how many keys are in the set.
func (s *Set) Len() int { return len(s.keys) }

// wireKeySet is the RFC 7517 §5 {"keys": [...]} document shape.
type wireKeySet struct {
	Keys []map[string]any `json:"keys"`
}

// DecodeJWKStorages parses a {"keys": [...]} document into a slice
// of raw JWK Storages, leaving key-type-specific reconstruction
// (RSA/EC/OKP/oct -> a concrete crypto key) to the caller, since
// that dispatch is collaborator-specific (spec §6: "Crypto
// provider"). This module has no function that builds a
// jwskey.ValidatingKey from a JWK Storage.
func DecodeJWKStorages(raw []byte) ([]store.Storage, error) {
	var w wireKeySet
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	out := make([]store.Storage, 0, len(w.Keys))
	for _, k := range w.Keys {
		out = append(out, store.Storage(k))
	}
	return out, nil
}

// EncodeJWKStorages serializes storages back to a {"keys": [...]}
// document.
func EncodeJWKStorages(storages []store.Storage) ([]byte, error) {
	w := wireKeySet{Keys: make([]map[string]any, 0, len(storages))}
	for _, s := range storages {
		w.Keys = append(w.Keys, map[string]any(s))
	}
	return json.Marshal(w)
}
