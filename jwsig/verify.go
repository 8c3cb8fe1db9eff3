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

	"github.com/sirupsen/logrus"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/jwskey"
)

// Verify implements §4.6.4 in strict mode: every signature slot must
// resolve a non-none algorithm, match a validating key, and verify
// against the byte-exact reconstructed signing input. The first
// failure across all slots is returned; an empty signature set is
// itself a failure.
func (j *JWS) Verify(keys []jwskey.ValidatingKey) error {
	if len(j.Signatures) == 0 {
		return joseerr.ErrAuthenticationFailure
	}
	for i, sig := range j.Signatures {
		if err := j.verifySlot(sig, keys); err != nil {
			return fmt.Errorf("signature %d: %w", i, err)
		}
	}
	return nil
}

func (j *JWS) verifySlot(sig Signature, keys []jwskey.ValidatingKey) error {
	alg, kid, err := resolveAlgKid(sig)
	if err != nil {
		return err
	}

	// Hard-coded, non-configurable refusal: alg=none never verifies,
	// regardless of which keys are supplied. This is the engine's
	// only defense against algorithm-stripping attacks (spec §4.6.4
	// step 2, §9 "alg = none policy").
	if alg == jwa.None {
		return joseerr.ErrOperationNotAllowed
	}
	if err := mustLookup(alg); err != nil {
		return err
	}

	key, exact, err := jwskey.Match(keys, alg, kid)
	if err != nil {
		return err
	}
	if kid != "" && !exact {
		logrus.WithFields(logrus.Fields{"kid": kid, "alg": alg}).Warn("jwsig: no key matched kid, verifying with first compatible key")
	}

	input := j.signingInput(sig)
	if err := key.Verify(input, sig.SignatureBytes, alg); err != nil {
		return err
	}
	return nil
}
