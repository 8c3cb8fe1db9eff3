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
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// rsaPublicKey validates RS*/PS* signatures. The teacher's
// signer.rsaSigner ties one signer to exactly one hard-coded
// algorithm (RS256); this key instead accepts any registered RSA
// algorithm and dispatches PKCS1-v1.5 vs PSS off the registry's Kind.
type rsaPublicKey struct {
	kid string
	pub *rsa.PublicKey
}

// rsaPrivateKey additionally signs. The private key material stays a
// native *rsa.PrivateKey: unlike the fixed-width scalar secrets HMAC,
// ECDSA and Ed25519 hold, RSA's secret spans several big.Int limbs,
// and re-locking it through memguard on every Sign call would cost
// far more than the lock buys; see DESIGN.md.
type rsaPrivateKey struct {
	rsaPublicKey
	priv *rsa.PrivateKey
}

// NewRSAPublicKey wraps pub as a validating-only key identified by
// kid.
func NewRSAPublicKey(kid string, pub *rsa.PublicKey) ValidatingKey {
	return &rsaPublicKey{kid: kid, pub: pub}
}

// NewRSAPrivateKey wraps priv as a signing-and-validating key
// identified by kid.
func NewRSAPrivateKey(kid string, priv *rsa.PrivateKey) SigningKey {
	return &rsaPrivateKey{rsaPublicKey: rsaPublicKey{kid: kid, pub: &priv.PublicKey}, priv: priv}
}

func (k *rsaPublicKey) KeyID() string { return k.kid }

func (k *rsaPublicKey) SupportsAlgorithm(algorithm jwa.Algorithm) bool {
	r, ok := jwa.Lookup(algorithm)
	return ok && r.KeyType == jwa.KeyTypeRSA && (r.Kind == jwa.KindRSAPKCS1 || r.Kind == jwa.KindRSAPSS)
}

func (k *rsaPublicKey) Verify(message, signature []byte, algorithm jwa.Algorithm) error {
	r, ok := jwa.Lookup(algorithm)
	if !ok || r.KeyType != jwa.KeyTypeRSA {
		return fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	digest := hashSum(r.Hash, message)
	var err error
	switch r.Kind {
	case jwa.KindRSAPKCS1:
		err = rsa.VerifyPKCS1v15(k.pub, r.Hash, digest, signature)
	case jwa.KindRSAPSS:
		err = rsa.VerifyPSS(k.pub, r.Hash, digest, signature, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
			Hash:       r.Hash,
		})
	default:
		return fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	if err != nil {
		return joseerr.ErrAuthenticationFailure
	}
	return nil
}

func (k *rsaPublicKey) JWK() store.Storage {
	s := store.New()
	s.Set("kty", string(jwa.KeyTypeRSA))
	store.SetBigInt(s, "n", k.pub.N)
	e := big.NewInt(int64(k.pub.E))
	store.SetBigInt(s, "e", e)
	if k.kid != "" {
		s.Set("kid", k.kid)
	}
	return s
}

func (k *rsaPrivateKey) Sign(message []byte, algorithm jwa.Algorithm) ([]byte, error) {
	r, ok := jwa.Lookup(algorithm)
	if !ok || r.KeyType != jwa.KeyTypeRSA {
		return nil, fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	digest := hashSum(r.Hash, message)
	switch r.Kind {
	case jwa.KindRSAPKCS1:
		return rsa.SignPKCS1v15(rand.Reader, k.priv, r.Hash, digest)
	case jwa.KindRSAPSS:
		return rsa.SignPSS(rand.Reader, k.priv, r.Hash, digest, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
			Hash:       r.Hash,
		})
	default:
		return nil, fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
}
