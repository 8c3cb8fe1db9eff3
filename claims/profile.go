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
	"time"

	"golang.org/x/text/language"

	"github.com/jozefizso/jwsetkit/store"
)

// ProfileTable is the registered-parameter table for a claim
// container holding end-user profile information, the concrete
// localizable fields spec §3 describes: a display name and given
// name may be carried in several languages as "name#ja",
// "name#fr-CA" and so on, alongside an unlocalized default.
var ProfileTable = Table{
	"name":      {Wire: "name", Localizable: true},
	"givenName": {Wire: "given_name", Localizable: true},
	"familyName": {Wire: "family_name", Localizable: true},
	"zoneinfo":  {Wire: "zoneinfo"},
}

// Profile is a typed view over a store.Storage holding localizable
// end-user profile claims.
type Profile struct {
	Storage store.Storage
}

// NewProfile returns a Profile view over a freshly-allocated, empty
// Storage.
func NewProfile() *Profile {
	return &Profile{Storage: store.New()}
}

// WrapProfile returns a Profile view over an existing Storage.
func WrapProfile(s store.Storage) *Profile {
	if s == nil {
		s = store.New()
	}
	return &Profile{Storage: s}
}

// Name reads "name", resolving the best-matching "name#<locale>"
// variant against the process-wide locale preference if the bare key
// is absent.
func (p *Profile) Name() (string, bool) {
	return getLocalized(p.Storage, ProfileTable["name"].Wire)
}

// SetName writes the unlocalized default "name", per the write rule
// in spec §3: writing always targets the bare base key.
func (p *Profile) SetName(v *string) {
	setLocalized(p.Storage, ProfileTable["name"].Wire, v)
}

// SetNameForLocale writes a locale-tagged variant, "name#<locale>",
// read back by Name only when it best matches the caller's preferred
// locales and no bare "name" is set.
func (p *Profile) SetNameForLocale(locale language.Tag, v string) {
	store.SetString(p.Storage, ProfileTable["name"].Wire+localeSep+locale.String(), &v)
}

func (p *Profile) GivenName() (string, bool) {
	return getLocalized(p.Storage, ProfileTable["givenName"].Wire)
}
func (p *Profile) SetGivenName(v *string) {
	setLocalized(p.Storage, ProfileTable["givenName"].Wire, v)
}
func (p *Profile) SetGivenNameForLocale(locale language.Tag, v string) {
	store.SetString(p.Storage, ProfileTable["givenName"].Wire+localeSep+locale.String(), &v)
}

func (p *Profile) FamilyName() (string, bool) {
	return getLocalized(p.Storage, ProfileTable["familyName"].Wire)
}
func (p *Profile) SetFamilyName(v *string) {
	setLocalized(p.Storage, ProfileTable["familyName"].Wire, v)
}
func (p *Profile) SetFamilyNameForLocale(locale language.Tag, v string) {
	store.SetString(p.Storage, ProfileTable["familyName"].Wire+localeSep+locale.String(), &v)
}

func (p *Profile) TimeZone() (*time.Location, bool) {
	loc, ok := store.GetTimeZone(p.Storage, ProfileTable["zoneinfo"].Wire)
	return loc, ok
}
func (p *Profile) SetTimeZone(v *time.Location) {
	store.SetTimeZone(p.Storage, ProfileTable["zoneinfo"].Wire, v)
}

// Encode marshals the backing Storage to its JSON-object wire form.
func (p *Profile) Encode() ([]byte, error) {
	return p.Storage.Encode()
}
