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
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/jozefizso/jwsetkit/store"
)

const localeSep = "#"

var (
	preferredMu sync.RWMutex
	preferred   = []language.Tag{language.English}
)

// SetPreferredLocales sets the process-wide locale preference used
// by localized field reads. Safe for concurrent use; intended to run
// during program initialization.
func SetPreferredLocales(tags ...language.Tag) {
	preferredMu.Lock()
	defer preferredMu.Unlock()
	if len(tags) == 0 {
		preferred = []language.Tag{language.English}
		return
	}
	preferred = append([]language.Tag{}, tags...)
}

// PreferredLocales returns the current process-wide locale
// preference.
func PreferredLocales() []language.Tag {
	preferredMu.RLock()
	defer preferredMu.RUnlock()
	return append([]language.Tag{}, preferred...)
}

// getLocalized reads base from s, honoring the localizable lookup
// rule: a bare base key wins outright, otherwise the store is
// searched for "base#<locale>" keys and the one best matching the
// process-wide locale preference is returned.
func getLocalized(s store.Storage, base string) (string, bool) {
	if v, ok := store.GetString(s, base); ok {
		return v, true
	}

	prefix := base + localeSep
	candidates := map[language.Tag]string{}
	for _, k := range s.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		tag, err := language.Parse(k[len(prefix):])
		if err != nil {
			continue
		}
		candidates[tag] = k
	}
	if len(candidates) == 0 {
		return "", false
	}

	tags := make([]language.Tag, 0, len(candidates))
	for t := range candidates {
		tags = append(tags, t)
	}
	matcher := language.NewMatcher(tags)
	_, idx, _ := matcher.Match(PreferredLocales()...)
	return store.GetString(s, candidates[tags[idx]])
}

// setLocalized writes v at the bare base key, per spec §3 "when
// writing, the base key is used".
func setLocalized(s store.Storage, base string, v *string) {
	store.SetString(s, base, v)
}
