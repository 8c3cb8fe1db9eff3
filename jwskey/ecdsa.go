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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/awnumar/memguard"

	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/store"
)

// ecdsaPublicKey validates ES256/384/512. Unlike the JOSE wire form,
// crypto/ecdsa's own Sign/Verify speak ASN.1 DER or (x,y) pairs; this
// key is where the raw, fixed-width r‖s encoding §4.4 mandates is
// enforced — the teacher's signer.ecdsaSigner skips this and emits
// DER, which is not JWS-compatible.
type ecdsaPublicKey struct {
	kid string
	pub *ecdsa.PublicKey
}

// ecdsaPrivateKey additionally signs. The private scalar D is the
// entire secret for an EC key (unlike RSA's multi-limb secret), so it
// is held in a memguard.LockedBuffer and reconstituted into a
// *ecdsa.PrivateKey only for the instant of signing, the same shape
// as the teacher's gq/sign.go modular-inverse buffers.
type ecdsaPrivateKey struct {
	ecdsaPublicKey
	d *memguard.LockedBuffer
}

// NewECDSAPublicKey wraps pub as a validating-only key.
func NewECDSAPublicKey(kid string, pub *ecdsa.PublicKey) ValidatingKey {
	return &ecdsaPublicKey{kid: kid, pub: pub}
}

// NewECDSAPrivateKey wraps priv as a signing-and-validating key. The
// caller's priv.D is copied into a locked buffer; it should
// zero/discard its own copy once this call returns.
func NewECDSAPrivateKey(kid string, priv *ecdsa.PrivateKey) SigningKey {
	return &ecdsaPrivateKey{
		ecdsaPublicKey: ecdsaPublicKey{kid: kid, pub: &priv.PublicKey},
		d:              memguard.NewBufferFromBytes(priv.D.Bytes()),
	}
}

func (k *ecdsaPublicKey) KeyID() string { return k.kid }

func algRegForCurve(algorithm jwa.Algorithm) (jwa.Registration, bool) {
	r, ok := jwa.Lookup(algorithm)
	if !ok || r.KeyType != jwa.KeyTypeEC || r.Kind != jwa.KindECDSA {
		return jwa.Registration{}, false
	}
	return r, true
}

func (k *ecdsaPublicKey) SupportsAlgorithm(algorithm jwa.Algorithm) bool {
	r, ok := algRegForCurve(algorithm)
	return ok && r.Curve == k.pub.Curve
}

func (k *ecdsaPublicKey) Verify(message, signature []byte, algorithm jwa.Algorithm) error {
	r, ok := algRegForCurve(algorithm)
	if !ok || r.Curve != k.pub.Curve {
		return fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	if len(signature) != 2*r.ECPointWidth {
		return joseerr.ErrAuthenticationFailure
	}
	digest := hashSum(r.Hash, message)
	rr := new(big.Int).SetBytes(signature[:r.ECPointWidth])
	ss := new(big.Int).SetBytes(signature[r.ECPointWidth:])
	if !ecdsa.Verify(k.pub, digest, rr, ss) {
		return joseerr.ErrAuthenticationFailure
	}
	return nil
}

func (k *ecdsaPublicKey) JWK() store.Storage {
	s := store.New()
	s.Set("kty", string(jwa.KeyTypeEC))
	s.Set("crv", curveName(k.pub.Curve))
	byteLen := (k.pub.Curve.Params().BitSize + 7) / 8
	store.SetBytes(s, "x", leftPad(k.pub.X.Bytes(), byteLen))
	store.SetBytes(s, "y", leftPad(k.pub.Y.Bytes(), byteLen))
	if k.kid != "" {
		s.Set("kid", k.kid)
	}
	return s
}

func (k *ecdsaPrivateKey) Sign(message []byte, algorithm jwa.Algorithm) ([]byte, error) {
	r, ok := algRegForCurve(algorithm)
	if !ok || r.Curve != k.pub.Curve {
		return nil, fmt.Errorf("%w: %s", joseerr.ErrUnsupported, algorithm)
	}
	priv := &ecdsa.PrivateKey{
		PublicKey: *k.pub,
		D:         new(big.Int).SetBytes(k.d.Bytes()),
	}
	digest := hashSum(r.Hash, message)
	rr, ss, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2*r.ECPointWidth)
	rr.FillBytes(out[:r.ECPointWidth])
	ss.FillBytes(out[r.ECPointWidth:])
	return out, nil
}

func (k *ecdsaPrivateKey) Destroy() {
	k.d.Destroy()
}

func curveName(c elliptic.Curve) string {
	switch c {
	case elliptic.P256():
		return "P-256"
	case elliptic.P384():
		return "P-384"
	case elliptic.P521():
		return "P-521"
	default:
		return c.Params().Name
	}
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}
