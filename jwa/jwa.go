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

// Package jwa is the process-wide algorithm registry: a map from
// algorithm id (the JOSE "alg" value) to the key type, optional
// curve, hash function and signature kind it implies. It is the
// leaf that both the Key Abstraction and the JWS Engine dispatch
// through.
package jwa

import (
	"crypto"
	"crypto/elliptic"
	"sync"
)

// Algorithm is a registered JOSE "alg" identifier.
type Algorithm string

// Built-in algorithm identifiers, taken from RFC 7518.
const (
	None   Algorithm = "none"
	HS256  Algorithm = "HS256"
	HS384  Algorithm = "HS384"
	HS512  Algorithm = "HS512"
	RS256  Algorithm = "RS256"
	RS384  Algorithm = "RS384"
	RS512  Algorithm = "RS512"
	PS256  Algorithm = "PS256"
	PS384  Algorithm = "PS384"
	PS512  Algorithm = "PS512"
	ES256  Algorithm = "ES256"
	ES384  Algorithm = "ES384"
	ES512  Algorithm = "ES512"
	EdDSA  Algorithm = "EdDSA"
)

// KeyType is the family of cryptographic key an algorithm requires.
type KeyType string

const (
	KeyTypeNone      KeyType = ""
	KeyTypeSymmetric KeyType = "oct"
	KeyTypeRSA       KeyType = "RSA"
	KeyTypeEC        KeyType = "EC"
	KeyTypeOKP       KeyType = "OKP" // Octet Key Pair, used for Ed25519
)

// SignatureKind distinguishes the signing primitive an algorithm
// uses, independent of the hash/curve parameters.
type SignatureKind string

const (
	KindNone      SignatureKind = "none"
	KindHMAC      SignatureKind = "HMAC"
	KindRSAPKCS1  SignatureKind = "RSA-PKCS1"
	KindRSAPSS    SignatureKind = "RSA-PSS"
	KindECDSA     SignatureKind = "ECDSA"
	KindEdDSA     SignatureKind = "EdDSA"
)

// Registration is everything the registry knows about one algorithm
// id: the key family it requires, the curve (EC only), the hash
// function (HMAC/RSA/ECDSA only — EdDSA hashes internally), the
// signing primitive, and the fixed output width ECDSA signatures use
// for their raw r‖s encoding (0 for non-ECDSA kinds).
type Registration struct {
	Algorithm      Algorithm
	KeyType        KeyType
	Curve          elliptic.Curve // nil unless KeyType == KeyTypeEC
	Hash           crypto.Hash    // 0 for EdDSA and None
	Kind           SignatureKind
	ECPointWidth   int // byte width of r and s individually, for ECDSA
}

var (
	mu       sync.RWMutex
	registry = map[Algorithm]Registration{}
)

func init() {
	register(Registration{Algorithm: None, KeyType: KeyTypeNone, Kind: KindNone})
	register(Registration{Algorithm: HS256, KeyType: KeyTypeSymmetric, Hash: crypto.SHA256, Kind: KindHMAC})
	register(Registration{Algorithm: HS384, KeyType: KeyTypeSymmetric, Hash: crypto.SHA384, Kind: KindHMAC})
	register(Registration{Algorithm: HS512, KeyType: KeyTypeSymmetric, Hash: crypto.SHA512, Kind: KindHMAC})
	register(Registration{Algorithm: RS256, KeyType: KeyTypeRSA, Hash: crypto.SHA256, Kind: KindRSAPKCS1})
	register(Registration{Algorithm: RS384, KeyType: KeyTypeRSA, Hash: crypto.SHA384, Kind: KindRSAPKCS1})
	register(Registration{Algorithm: RS512, KeyType: KeyTypeRSA, Hash: crypto.SHA512, Kind: KindRSAPKCS1})
	register(Registration{Algorithm: PS256, KeyType: KeyTypeRSA, Hash: crypto.SHA256, Kind: KindRSAPSS})
	register(Registration{Algorithm: PS384, KeyType: KeyTypeRSA, Hash: crypto.SHA384, Kind: KindRSAPSS})
	register(Registration{Algorithm: PS512, KeyType: KeyTypeRSA, Hash: crypto.SHA512, Kind: KindRSAPSS})
	register(Registration{Algorithm: ES256, KeyType: KeyTypeEC, Curve: elliptic.P256(), Hash: crypto.SHA256, Kind: KindECDSA, ECPointWidth: 32})
	register(Registration{Algorithm: ES384, KeyType: KeyTypeEC, Curve: elliptic.P384(), Hash: crypto.SHA384, Kind: KindECDSA, ECPointWidth: 48})
	register(Registration{Algorithm: ES512, KeyType: KeyTypeEC, Curve: elliptic.P521(), Hash: crypto.SHA512, Kind: KindECDSA, ECPointWidth: 66})
	register(Registration{Algorithm: EdDSA, KeyType: KeyTypeOKP, Kind: KindEdDSA})
}

func register(r Registration) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Algorithm] = r
}

// Lookup returns the Registration for id, or ok=false if id is not
// registered. Safe for concurrent use with Register.
func Lookup(id Algorithm) (Registration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[id]
	return r, ok
}

// Register adds or overwrites the registration for r.Algorithm.
// Entries are never removed: once registered, an id stays resolvable
// for the lifetime of the process. Intended to run during program
// initialization; safe to call concurrently with Lookup and with
// itself, but registrations are serialized against each other and
// against readers.
func Register(r Registration) {
	register(r)
}

// RegisteredIDs returns every currently registered algorithm id, in
// no particular order.
func RegisteredIDs() []Algorithm {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]Algorithm, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
