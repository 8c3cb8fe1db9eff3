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
	"crypto/hmac"
	"crypto/subtle"
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/store"
)

// hmacKey is a symmetric HS256/384/512 signing-and-validating key.
// The secret is held in a memguard.LockedBuffer rather than a plain
// []byte so it is mlock'd against swap and wiped on Destroy, the
// same protection the teacher's gq package gives GQ signing
// material.
type hmacKey struct {
	kid    string
	secret *memguard.LockedBuffer
}

// NewHMACKey wraps secret as an HMAC signing key identified by kid
// (which may be empty). secret is copied into a locked buffer; the
// caller's slice is not retained.
func NewHMACKey(kid string, secret []byte) SigningKey {
	return &hmacKey{kid: kid, secret: memguard.NewBufferFromBytes(append([]byte{}, secret...))}
}

func (k *hmacKey) KeyID() string { return k.kid }

func (k *hmacKey) SupportsAlgorithm(algorithm jwa.Algorithm) bool {
	r, ok := jwa.Lookup(algorithm)
	return ok && r.KeyType == jwa.KeyTypeSymmetric && r.Kind == jwa.KindHMAC
}

func (k *hmacKey) Sign(message []byte, algorithm jwa.Algorithm) ([]byte, error) {
	r, ok := jwa.Lookup(algorithm)
	if !ok || r.KeyType != jwa.KeyTypeSymmetric || r.Kind != jwa.KindHMAC {
		return nil, fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	mac := hmac.New(r.Hash.New, k.secret.Bytes())
	mac.Write(message)
	return mac.Sum(nil), nil
}

func (k *hmacKey) Verify(message, signature []byte, algorithm jwa.Algorithm) error {
	expected, err := k.Sign(message, algorithm)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(expected, signature) != 1 {
		return joseerr.ErrAuthenticationFailure
	}
	return nil
}

// JWK returns an "oct"-type JWK. Per §4.6.3/§4.7, HMAC keys are never
// embedded as a protected-header "jwk" (that is reserved for the
// asymmetric keys DPoP proofs carry), but callers may still want the
// JWK shape for key-set export.
func (k *hmacKey) JWK() store.Storage {
	s := store.New()
	s.Set("kty", string(jwa.KeyTypeSymmetric))
	if k.kid != "" {
		s.Set("kid", k.kid)
	}
	return s
}

// Destroy wipes the secret from memory immediately.
func (k *hmacKey) Destroy() {
	k.secret.Destroy()
}
