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

package jwskey

import (
	"fmt"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
)

// Match implements the key-selection algorithm from spec §4.4: given
// a list of candidate keys, a required algorithm, and an optional
// kid, it partitions by algorithm support, then prefers the key
// whose KeyID equals kid, falling back to the first compatible key
// if kid is empty or matches none of them.
//
// The second return reports whether the match used an exact kid hit
// (true) or fell back to the first compatible key (false) — the
// fallback flag spec §9's "Key selection" note asks implementations
// to record for observability; callers (the JWS engine) use it to
// decide whether to log a fallback warning.
func Match[K ValidatingKey](candidates []K, algorithm jwa.Algorithm, kid string) (K, bool, error) {
	var zero K
	var compatible []K
	for _, k := range candidates {
		if k.SupportsAlgorithm(algorithm) {
			compatible = append(compatible, k)
		}
	}
	if len(compatible) == 0 {
		return zero, false, fmt.Errorf("%w: algorithm %s, kid %q", joseerr.ErrKeyNotFound, algorithm, kid)
	}
	if kid != "" {
		for _, k := range compatible {
			if k.KeyID() == kid {
				return k, true, nil
			}
		}
	}
	return compatible[0], false, nil
}
