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

	"github.com/jozefizso/jwsetkit/b64"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/jwskey"
	"github.com/jozefizso/jwsetkit/store"
)

// Sign builds a new single-signature JWS over payload, with
// protected covered by the signature. It is the common case of the
// §4.6.3 signing algorithm: construct, then add exactly one
// signature.
func Sign(payload []byte, protected store.Storage, keys []jwskey.SigningKey) (*JWS, error) {
	j := New(payload)
	if err := j.AddSignature(protected, nil, keys); err != nil {
		return nil, err
	}
	return j, nil
}

// AddSignature implements §4.6.3: resolve alg/kid from protected
// (falling back to unprotected), select a signing key by §4.4
// matching, construct the signing input from the freshly-encoded
// protected header and the JWS's existing payload, sign, and append
// the resulting slot. Grounded on the teacher's Jws.AddSignature,
// generalized from appending an already-signed compact token to
// performing the signature itself.
//
// If protected (or unprotected) declares alg=none, the produced
// signature is empty bytes and no key is consulted — callers opt
// into this by passing a none header; the engine logs a Warn because
// producing such a token should only happen in tests (spec §4.6.3
// step 3, §9 "alg = none policy").
func (j *JWS) AddSignature(protected, unprotected store.Storage, keys []jwskey.SigningKey) error {
	alg, kid, err := resolveAlgKidFromHeaders(protected, unprotected)
	if err != nil {
		return err
	}
	if err := mustLookup(alg); err != nil {
		return err
	}

	if alg == jwa.None {
		logrus.Warn("jwsig: signing with alg=none; this must only be used for testing")
		return j.appendSlot(protected, unprotected, nil)
	}

	key, exact, err := jwskey.Match(keys, alg, kid)
	if err != nil {
		return err
	}
	if kid != "" && !exact {
		logrus.WithFields(logrus.Fields{"kid": kid, "alg": alg}).Warn("jwsig: no key matched kid, signing with first compatible key")
	}

	protectedBytes, err := protected.Encode()
	if err != nil {
		return fmt.Errorf("encoding protected header: %w", err)
	}
	protectedB64 := b64.Encode(protectedBytes)
	input := []byte(protectedB64 + "." + j.PayloadB64)

	sigBytes, err := key.Sign(input, alg)
	if err != nil {
		return fmt.Errorf("signing: %w", err)
	}

	j.Signatures = append(j.Signatures, Signature{
		ProtectedB64:   protectedB64,
		Protected:      protected,
		Unprotected:    unprotected,
		SignatureBytes: sigBytes,
	})
	return nil
}

func (j *JWS) appendSlot(protected, unprotected store.Storage, sigBytes []byte) error {
	var protectedB64 string
	if protected != nil {
		protectedBytes, err := protected.Encode()
		if err != nil {
			return fmt.Errorf("encoding protected header: %w", err)
		}
		protectedB64 = b64.Encode(protectedBytes)
	}
	j.Signatures = append(j.Signatures, Signature{
		ProtectedB64:   protectedB64,
		Protected:      protected,
		Unprotected:    unprotected,
		SignatureBytes: sigBytes,
	})
	return nil
}
