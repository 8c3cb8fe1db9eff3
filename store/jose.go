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

package store

import (
	"math/big"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/jozefizso/jwsetkit/b64"
)

// This file is the TypedAccessor layer: typed reads/writes over a
// Storage that apply the JOSE field encoding rules from spec §4.1.
// Each accessor follows the coercion order for reads: direct type
// match, then the JOSE field decoder, then a generic JSON
// re-encode/decode fallback, then give up (return absence). Writes
// always encode per the JOSE rule for that field.

// GetString reads key as a plain string, with a json re-encode
// fallback for other Go values whose JSON form is a string (e.g. a
// named string type). A value whose JSON form is not a string, such
// as a number, reads as absent.
func GetString(s Storage, key string) (string, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return "", false
	}
	if v, ok := raw.(string); ok {
		return v, true
	}
	var v string
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return "", false
}

// SetString writes a plain string at key, removing key if v is nil.
func SetString(s Storage, key string, v *string) {
	if v == nil {
		s.Remove(key)
		return
	}
	s.Set(key, *v)
}

// GetBool reads key as a bool.
func GetBool(s Storage, key string) (bool, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return false, false
	}
	if v, ok := raw.(bool); ok {
		return v, true
	}
	var v bool
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return false, false
}

// SetBool writes a bool at key, removing key if v is nil.
func SetBool(s Storage, key string, v *bool) {
	if v == nil {
		s.Remove(key)
		return
	}
	s.Set(key, *v)
}

// GetFloat64 reads key as a float64, the generic JSON number type.
func GetFloat64(s Storage, key string) (float64, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return 0, false
	}
	if v, ok := raw.(float64); ok {
		return v, true
	}
	var v float64
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return 0, false
}

// SetFloat64 writes a float64 number at key, removing key if v is nil.
func SetFloat64(s Storage, key string, v *float64) {
	if v == nil {
		s.Remove(key)
		return
	}
	s.Set(key, *v)
}

// GetInt64 reads key as an int64, accepting any JSON number that has
// no fractional part.
func GetInt64(s Storage, key string) (int64, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case int64:
		return v, true
	case float64:
		if float64(int64(v)) != v {
			return 0, false
		}
		return int64(v), true
	}
	var v int64
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return 0, false
}

// SetInt64 writes an int64 at key, removing key if v is nil.
func SetInt64(s Storage, key string, v *int64) {
	if v == nil {
		s.Remove(key)
		return
	}
	s.Set(key, *v)
}

// GetBytes reads key as base64url-decoded bytes (the JOSE "bytes"
// field rule). Direct []byte storage is returned as-is; a string
// value is treated as base64url and decoded.
func GetBytes(s Storage, key string) ([]byte, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return nil, false
	}
	if v, ok := raw.([]byte); ok {
		return v, true
	}
	if str, ok := raw.(string); ok {
		if decoded, err := b64.Decode(str); err == nil {
			return decoded, true
		}
	}
	var v []byte
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return nil, false
}

// SetBytes writes v base64url-encoded at key. A nil or empty v
// removes key, per the Value Storage empty-list invariant.
func SetBytes(s Storage, key string, v []byte) {
	if len(v) == 0 {
		s.Remove(key)
		return
	}
	s.Set(key, b64.Encode(v))
}

// GetTime reads key as a NumericDate: seconds since the Unix epoch,
// as a JSON number (integer or fractional).
func GetTime(s Storage, key string) (time.Time, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return time.Time{}, false
	}
	if v, ok := raw.(time.Time); ok {
		return v, true
	}
	switch v := raw.(type) {
	case float64:
		return numericDateToTime(v), true
	case int64:
		return time.Unix(v, 0).UTC(), true
	}
	var f float64
	if ok := fallbackDecode(raw, &f); ok {
		return numericDateToTime(f), true
	}
	return time.Time{}, false
}

// SetTime writes v as a NumericDate at key, removing key if v is nil.
func SetTime(s Storage, key string, v *time.Time) {
	if v == nil {
		s.Remove(key)
		return
	}
	s.Set(key, timeToNumericDate(*v))
}

func numericDateToTime(seconds float64) time.Time {
	whole := int64(seconds)
	frac := seconds - float64(whole)
	return time.Unix(whole, int64(frac*float64(time.Second))).UTC()
}

func timeToNumericDate(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// GetLocale reads key as a BCP-47 language tag.
func GetLocale(s Storage, key string) (language.Tag, bool) {
	str, ok := GetString(s, key)
	if !ok {
		return language.Tag{}, false
	}
	tag, err := language.Parse(str)
	if err != nil {
		return language.Tag{}, false
	}
	return tag, true
}

// SetLocale writes v as a BCP-47 (hyphenated) tag at key, removing
// key if v is nil.
func SetLocale(s Storage, key string, v *language.Tag) {
	if v == nil {
		s.Remove(key)
		return
	}
	tag := v.String()
	SetString(s, key, &tag)
}

// GetTimeZone reads key as an IANA time zone identifier.
func GetTimeZone(s Storage, key string) (*time.Location, bool) {
	str, ok := GetString(s, key)
	if !ok {
		return nil, false
	}
	loc, err := time.LoadLocation(str)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// SetTimeZone writes v's IANA identifier at key, removing key if v
// is nil.
func SetTimeZone(s Storage, key string, v *time.Location) {
	if v == nil {
		s.Remove(key)
		return
	}
	name := v.String()
	SetString(s, key, &name)
}

// GetUUID reads key as a lowercase, hyphenated UUID.
func GetUUID(s Storage, key string) (uuid.UUID, bool) {
	str, ok := GetString(s, key)
	if !ok {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// SetUUID writes v lowercase and hyphenated at key, removing key if
// v is nil.
func SetUUID(s Storage, key string, v *uuid.UUID) {
	if v == nil {
		s.Remove(key)
		return
	}
	str := strings.ToLower(v.String())
	SetString(s, key, &str)
}

// GetBigInt reads key as a big-endian unsigned integer, base64url
// encoded, per the RSA JWK big integer field rule.
func GetBigInt(s Storage, key string) (*big.Int, bool) {
	raw, ok := GetBytes(s, key)
	if !ok {
		return nil, false
	}
	return new(big.Int).SetBytes(raw), true
}

// SetBigInt writes v as the base64url of its minimal big-endian
// unsigned byte string at key, removing key if v is nil.
func SetBigInt(s Storage, key string, v *big.Int) {
	if v == nil {
		s.Remove(key)
		return
	}
	SetBytes(s, key, v.Bytes())
}

// GetStringList reads key that per RFC 7519 §4.1.3 may be encoded as
// either a single string or a JSON array of strings (the JWT "aud"
// shape), always returning a slice.
func GetStringList(s Storage, key string) ([]string, bool) {
	raw, ok := s.Get(key)
	if !ok || raw == nil {
		return nil, false
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	var v []string
	if ok := fallbackDecode(raw, &v); ok {
		return v, true
	}
	return nil, false
}

// SetStringList writes v at key: a single-element v is written as a
// bare string (the common JWT convention), v with two or more
// elements is written as a JSON array, and an empty or nil v removes
// key.
func SetStringList(s Storage, key string, v []string) {
	if len(v) == 0 {
		s.Remove(key)
		return
	}
	if len(v) == 1 {
		s.Set(key, v[0])
		return
	}
	s.Set(key, v)
}

// fallbackDecode attempts the generic JSON re-encode/decode fallback
// used as the last coercion step before giving up: it marshals raw
// back to JSON and unmarshals it into target (a pointer). It reports
// whether this succeeded.
func fallbackDecode(raw any, target any) bool {
	buf, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(buf, target); err != nil {
		return false
	}
	return true
}
