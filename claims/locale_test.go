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
	"golang.org/x/text/language"
)

func TestProfileNameBareKeyWinsOverLocaleVariants(t *testing.T) {
	p := NewProfile()
	bare := "Default Name"
	p.SetName(&bare)
	p.SetNameForLocale(language.Japanese, "デフォルト名")

	got, ok := p.Name()
	require.True(t, ok)
	require.Equal(t, bare, got, "a bare base key wins outright over any locale variant")
}

func TestProfileNameResolvesBestLocaleMatch(t *testing.T) {
	defer SetPreferredLocales(language.English)

	p := NewProfile()
	p.SetNameForLocale(language.Japanese, "名前")
	p.SetNameForLocale(language.French, "Nom")

	SetPreferredLocales(language.French)
	got, ok := p.Name()
	require.True(t, ok)
	require.Equal(t, "Nom", got)

	SetPreferredLocales(language.Japanese)
	got, ok = p.Name()
	require.True(t, ok)
	require.Equal(t, "名前", got)
}

func TestProfileNameAbsentWhenNoVariantMatches(t *testing.T) {
	p := NewProfile()
	_, ok := p.Name()
	require.False(t, ok)
}

func TestProfileGivenAndFamilyNameIndependentFromName(t *testing.T) {
	p := NewProfile()
	given := "Ada"
	family := "Lovelace"
	p.SetGivenName(&given)
	p.SetFamilyName(&family)

	gotGiven, ok := p.GivenName()
	require.True(t, ok)
	require.Equal(t, given, gotGiven)

	gotFamily, ok := p.FamilyName()
	require.True(t, ok)
	require.Equal(t, family, gotFamily)
}

func TestPreferredLocalesDefaultsToEnglish(t *testing.T) {
	defer SetPreferredLocales(language.English)
	SetPreferredLocales()
	got := PreferredLocales()
	require.Len(t, got, 1)
	require.Equal(t, language.English, got[0])
}
