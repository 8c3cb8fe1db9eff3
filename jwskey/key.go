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

// Package jwskey is the polymorphic Key Abstraction: signing keys
// (which also validate) and validating-only keys, each backed by its
// own JWK-shaped store.Storage and dispatched through the jwa
// registry. Unlike the teacher's signer package — which ties one
// signer struct to one hard-coded algorithm — these keys declare
// which algorithm *kinds* they accept and are matched against a
// required (algorithm, kid) pair the way spec §4.4 describes.
package jwskey

import (
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// ValidatingKey verifies signatures. Every SigningKey is also a
// ValidatingKey.
type ValidatingKey interface {
	// KeyID returns the JWK "kid" claim, or "" if unset.
	KeyID() string

	// SupportsAlgorithm reports whether this key's type and curve
	// (if any) match algorithm's registration.
	SupportsAlgorithm(algorithm jwa.Algorithm) bool

	// Verify checks signature over message for algorithm. It returns
	// joseerr.ErrAuthenticationFailure if the signature is invalid,
	// or joseerr.ErrUnsupported if SupportsAlgorithm(algorithm) is
	// false.
	Verify(message, signature []byte, algorithm jwa.Algorithm) error

	// JWK returns this key's JSON Web Key representation. For a
	// SigningKey this is the public half only — private material
	// never round-trips through JWK.
	JWK() store.Storage
}

// SigningKey signs messages, and validates its own signatures.
type SigningKey interface {
	ValidatingKey

	// Sign produces a signature over message for algorithm, in the
	// wire encoding §4.4 mandates for that algorithm's kind (raw
	// HMAC/Ed25519 bytes, raw r‖s for ECDSA, raw PKCS1/PSS bytes for
	// RSA). Returns joseerr.ErrUnsupported if SupportsAlgorithm is
	// false for algorithm.
	Sign(message []byte, algorithm jwa.Algorithm) ([]byte, error)
}

// Destroyer is implemented by keys that hold key material in a
// memguard.LockedBuffer (HMAC secrets, ECDSA and Ed25519 private
// keys). RSA private keys are held as a plain *rsa.PrivateKey and do
// not implement it.
// Callers that generate ephemeral keys should call Destroy once the
// key is no longer needed so the locked pages are wiped and released
// immediately rather than waiting on GC + process exit.
type Destroyer interface {
	Destroy()
}
