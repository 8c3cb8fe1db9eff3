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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDistinguishesAbsentFromNull(t *testing.T) {
	s := New()
	s.SetNull("a")

	v, ok := s.Get("a")
	require.True(t, ok)
	require.Nil(t, v)

	_, ok = s.Get("b")
	require.False(t, ok)
}

func TestSetEmptyListRemovesKey(t *testing.T) {
	s := New()
	s.Set("a", []string{"x"})
	require.True(t, s.Contains("a"))

	s.Set("a", []string{})
	require.False(t, s.Contains("a"))
}

func TestSetNilRemovesKey(t *testing.T) {
	s := New()
	s.Set("a", "x")
	require.True(t, s.Contains("a"))

	s.Set("a", nil)
	require.False(t, s.Contains("a"))
}

func TestMergePrefersCombineOnConflict(t *testing.T) {
	a := New()
	a.Set("shared", "from-a")
	a.Set("only-a", 1)
	b := New()
	b.Set("shared", "from-b")
	b.Set("only-b", 2)

	merged := a.Merge(b, func(x, y any) any { return y })
	require.Equal(t, "from-b", merged["shared"])
	require.Equal(t, 1, merged["only-a"])
	require.Equal(t, 2, merged["only-b"])
	// receiver untouched
	require.Equal(t, "from-a", a["shared"])
}

func TestFilterRetainsMatchingKeys(t *testing.T) {
	s := New()
	s.Set("keep", 1)
	s.Set("drop", 2)
	filtered := s.Filter(func(key string, _ any) bool { return key == "keep" })
	require.True(t, filtered.Contains("keep"))
	require.False(t, filtered.Contains("drop"))
}

func TestDecodeAcceptsJSONObjectForm(t *testing.T) {
	s, err := Decode([]byte(`{"iss":"example.org","exp":123}`))
	require.NoError(t, err)
	iss, ok := GetString(s, "iss")
	require.True(t, ok)
	require.Equal(t, "example.org", iss)
}

func TestDecodeAcceptsBase64URLForm(t *testing.T) {
	encoded := `eyJpc3MiOiJleGFtcGxlLm9yZyJ9` // {"iss":"example.org"}
	s, err := Decode([]byte(encoded))
	require.NoError(t, err)
	iss, ok := GetString(s, "iss")
	require.True(t, ok)
	require.Equal(t, "example.org", iss)
}

func TestDecodeRejectsNeitherForm(t *testing.T) {
	_, err := Decode([]byte("not json and not base64url!!"))
	require.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := New()
	s.Set("iss", "example.org")
	s.Set("count", 3)

	encoded, err := s.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.True(t, s.Equal(decoded))
}

func TestEqualIsCanonicalAcrossNumericTypes(t *testing.T) {
	a := New()
	a.Set("n", 1)
	b := New()
	b.Set("n", 1.0)
	require.True(t, a.Equal(b))
}

func TestEqualDiffersOnValue(t *testing.T) {
	a := New()
	a.Set("n", 1)
	b := New()
	b.Set("n", 2)
	require.False(t, a.Equal(b))
}

func TestKeysReturnsAllPresentKeys(t *testing.T) {
	s := New()
	s.Set("a", 1)
	s.Set("b", 2)
	keys := s.Keys()
	require.ElementsMatch(t, []string{"a", "b"}, keys)
}
