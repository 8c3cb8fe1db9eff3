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

// Package store implements Value Storage: the open, schema-flexible
// map from string key to any JSON value that backs every JOSE header
// and JWT/DPoP claim set in this module. Claim containers (package
// claims) are thin typed views over a Storage; they never hold JSON
// state of their own.
package store

import (
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/jozefizso/jwsetkit/b64"
)

// Storage is an open map from string key to any JSON-representable
// value. A present key with a nil value is a present JSON null,
// distinct from an absent key — callers use Get's second return to
// tell the two apart, exactly as with a plain Go map.
type Storage map[string]any

// New returns an empty Storage.
func New() Storage {
	return Storage{}
}

// Get returns the raw value stored at key, and whether key is
// present at all. A present key with value nil represents JSON null.
func (s Storage) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Contains reports whether key is present, independent of its value.
func (s Storage) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns every key currently present, in no particular order.
func (s Storage) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Set stores value at key. Setting value to nil removes key (the
// absence sentinel), and setting an empty slice or array removes key
// as well — per the Value Storage invariants, there is no way to
// store an empty list distinct from absence. To store an explicit
// JSON null, use SetNull.
func (s Storage) Set(key string, value any) {
	if value == nil {
		delete(s, key)
		return
	}
	if isEmptyList(value) {
		delete(s, key)
		return
	}
	s[key] = value
}

// SetNull stores an explicit, present JSON null at key.
func (s Storage) SetNull(key string) {
	s[key] = nil
}

// Remove deletes key, if present. A no-op if key is absent.
func (s Storage) Remove(key string) {
	delete(s, key)
}

func isEmptyList(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}

// Merge combines other into a copy of s. Keys present in only one of
// the two carry over unchanged; for keys present in both, combine is
// invoked with (s's raw value, other's raw value) and its result is
// stored. The receiver is not mutated.
func (s Storage) Merge(other Storage, combine func(a, b any) any) Storage {
	out := s.Clone()
	for k, ov := range other {
		if av, ok := out[k]; ok {
			out[k] = combine(av, ov)
		} else {
			out[k] = ov
		}
	}
	return out
}

// Filter returns a copy of s retaining only the keys for which
// predicate returns true.
func (s Storage) Filter(predicate func(key string, value any) bool) Storage {
	out := New()
	for k, v := range s {
		if predicate(k, v) {
			out[k] = v
		}
	}
	return out
}

// Clone returns a shallow copy of s: a new map with the same
// key/value pairs. Values that are themselves reference types
// (slices, maps) are not deep-copied.
func (s Storage) Clone() Storage {
	out := make(Storage, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether s and other are equal under canonical-form
// equality: both are round-tripped through JSON and compared on that
// canonical representation, so a claim stored as the Go int 1 and
// one stored as the Go float64 1.0 compare equal, matching the open
// question in spec §9.
func (s Storage) Equal(other Storage) bool {
	a, errA := canonicalize(s)
	b, errB := canonicalize(other)
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

func canonicalize(s Storage) ([]byte, error) {
	raw, err := json.Marshal(map[string]any(s))
	if err != nil {
		return nil, err
	}
	// Round-trip once more through an untyped value so that
	// differently-typed-but-numerically-equal encodings (1 vs 1.0)
	// collapse to the same representation before the final marshal.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// Decode parses raw into a new Storage. It accepts two wire forms
// indistinguishably, per the Value Storage codec contract: a JSON
// object, or a base64url-encoded string that itself decodes to a
// JSON object. Any other shape fails.
func Decode(raw []byte) (Storage, error) {
	trimmed := trimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var s Storage
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errMalformed(err)
		}
		if s == nil {
			s = New()
		}
		return s, nil
	}

	// Not a JSON object at top level: try base64url(JSON object).
	unquoted := trimmed
	if len(unquoted) >= 2 && unquoted[0] == '"' && unquoted[len(unquoted)-1] == '"' {
		var str string
		if err := json.Unmarshal(unquoted, &str); err != nil {
			return nil, errMalformed(err)
		}
		unquoted = []byte(str)
	}
	decoded, err := b64.DecodeBytes(unquoted)
	if err != nil {
		return nil, errMalformed(err)
	}
	decodedTrimmed := trimSpace(decoded)
	if len(decodedTrimmed) == 0 || decodedTrimmed[0] != '{' {
		return nil, errMalformed(nil)
	}
	var s Storage
	if err := json.Unmarshal(decodedTrimmed, &s); err != nil {
		return nil, errMalformed(err)
	}
	if s == nil {
		s = New()
	}
	return s, nil
}

// Encode always produces the JSON object form. Callers that need the
// compact base64url segment encode this output themselves with
// package b64.
func (s Storage) Encode() ([]byte, error) {
	if s == nil {
		s = New()
	}
	return json.Marshal(map[string]any(s))
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
