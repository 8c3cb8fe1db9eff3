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

package jwsig

import (
	"fmt"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// resolveAlgKid resolves "alg" and "kid" for a signature slot,
// consulting the protected header first and falling back to the
// unprotected header, per spec §4.6.3 step 1-2 / §4.6.4 step 1.
func resolveAlgKid(sig Signature) (jwa.Algorithm, string, error) {
	alg, ok := headerString(sig.Protected, "alg")
	if !ok {
		alg, ok = headerString(sig.Unprotected, "alg")
	}
	if !ok {
		return "", "", joseerr.ErrAlgorithmMissing
	}
	kid, _ := headerString(sig.Protected, "kid")
	if kid == "" {
		kid, _ = headerString(sig.Unprotected, "kid")
	}
	return jwa.Algorithm(alg), kid, nil
}

func headerString(s store.Storage, key string) (string, bool) {
	if s == nil {
		return "", false
	}
	return store.GetString(s, key)
}

// resolveAlgKidFromHeaders is resolveAlgKid over headers that have
// not yet been attached to a Signature slot, used while signing.
func resolveAlgKidFromHeaders(protected, unprotected store.Storage) (jwa.Algorithm, string, error) {
	return resolveAlgKid(Signature{Protected: protected, Unprotected: unprotected})
}

func mustLookup(alg jwa.Algorithm) error {
	if _, ok := jwa.Lookup(alg); !ok {
		return fmt.Errorf("%w: %s", joseerr.ErrUnknownAlgorithm, alg)
	}
	return nil
}
