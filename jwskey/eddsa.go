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
	"crypto/ed25519"
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// ed25519PublicKey validates EdDSA. Per spec §4.4, Ed25519 consumes
// the message directly: there is no external pre-hash, unlike
// HMAC/RSA/ECDSA, so Sign/Verify never touch hashSum.
type ed25519PublicKey struct {
	kid string
	pub ed25519.PublicKey
}

// ed25519PrivateKey additionally signs. The 32-byte seed is the
// entire secret, held in a memguard.LockedBuffer the same way
// ecdsaPrivateKey holds its scalar.
type ed25519PrivateKey struct {
	ed25519PublicKey
	seed *memguard.LockedBuffer
}

// NewEd25519PublicKey wraps pub as a validating-only key.
func NewEd25519PublicKey(kid string, pub ed25519.PublicKey) ValidatingKey {
	return &ed25519PublicKey{kid: kid, pub: pub}
}

// NewEd25519PrivateKey wraps priv as a signing-and-validating key.
// The caller's priv.Seed() is copied into a locked buffer.
func NewEd25519PrivateKey(kid string, priv ed25519.PrivateKey) SigningKey {
	pub := priv.Public().(ed25519.PublicKey)
	return &ed25519PrivateKey{
		ed25519PublicKey: ed25519PublicKey{kid: kid, pub: pub},
		seed:             memguard.NewBufferFromBytes(append([]byte{}, priv.Seed()...)),
	}
}

func (k *ed25519PublicKey) KeyID() string { return k.kid }

func (k *ed25519PublicKey) SupportsAlgorithm(algorithm jwa.Algorithm) bool {
	r, ok := jwa.Lookup(algorithm)
	return ok && r.KeyType == jwa.KeyTypeOKP && r.Kind == jwa.KindEdDSA
}

func (k *ed25519PublicKey) Verify(message, signature []byte, algorithm jwa.Algorithm) error {
	if !k.SupportsAlgorithm(algorithm) {
		return fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	if len(signature) != ed25519.SignatureSize {
		return joseerr.ErrAuthenticationFailure
	}
	if !ed25519.Verify(k.pub, message, signature) {
		return joseerr.ErrAuthenticationFailure
	}
	return nil
}

func (k *ed25519PublicKey) JWK() store.Storage {
	s := store.New()
	s.Set("kty", string(jwa.KeyTypeOKP))
	s.Set("crv", "Ed25519")
	store.SetBytes(s, "x", k.pub)
	if k.kid != "" {
		s.Set("kid", k.kid)
	}
	return s
}

func (k *ed25519PrivateKey) Sign(message []byte, algorithm jwa.Algorithm) ([]byte, error) {
	if !k.SupportsAlgorithm(algorithm) {
		return nil, fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	priv := ed25519.NewKeyFromSeed(k.seed.Bytes())
	return ed25519.Sign(priv, message), nil
}

func (k *ed25519PrivateKey) Destroy() {
	k.seed.Destroy()
}
