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

// Package keyset holds PEM key-fixture helpers for tests and
// integrators. This is supplemental feature #3: generalized from
// the teacher's util/files.go, which only reads/writes ECDSA keys,
// to the RSA and Ed25519 key families this module also supports
// (HMAC has no PEM form, so it is excluded). Config/key-file loading
// is otherwise explicitly out of scope (spec §1), so this package
// stays deliberately minimal — PEM in, PEM out, no key store, no
// file-watching.
//
// Grounded entirely on the standard library: the teacher itself only
// reaches for encoding/pem and crypto/x509 here, and no ecosystem
// PEM/X.509 library appears anywhere in the retrieval pack, so there
// is no third-party alternative to wire in (see DESIGN.md).
package keyset

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

// WritePrivateKeyPEM PKCS8-encodes priv (an *ecdsa.PrivateKey,
// *rsa.PrivateKey, or ed25519.PrivateKey) and writes it to fpath as
// a "PRIVATE KEY" PEM block.
func WritePrivateKeyPEM(fpath string, priv crypto.Signer) error {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("marshaling private key: %w", err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return os.WriteFile(fpath, block, 0600)
}

// ReadPrivateKeyPEM reads and PKCS8-decodes the private key at
// fpath.
func ReadPrivateKeyPEM(fpath string) (crypto.Signer, error) {
	raw, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", fpath)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%s does not hold a signing key", fpath)
	}
	return signer, nil
}

// WritePublicKeyPEM PKIX-encodes pub (an *ecdsa.PublicKey,
// *rsa.PublicKey, or ed25519.PublicKey) and writes it to fpath as a
// "PUBLIC KEY" PEM block.
func WritePublicKeyPEM(fpath string, pub crypto.PublicKey) error {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return fmt.Errorf("marshaling public key: %w", err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return os.WriteFile(fpath, block, 0600)
}

// ReadPublicKeyPEM reads and PKIX-decodes the public key at fpath.
func ReadPublicKeyPEM(fpath string) (crypto.PublicKey, error) {
	raw, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", fpath)
	}
	return x509.ParsePKIXPublicKey(block.Bytes)
}

// GenerateKeyPair creates a fresh key pair for one of the asymmetric
// key families this module supports: "ES256"/"ES384"/"ES512" (the
// matching P-256/384/521 curve), "RS256"/"RS384"/"RS512"/"PS256"/
// "PS384"/"PS512" (2048-bit RSA), or "EdDSA" (Ed25519). Grounded on
// the teacher's util.GenKeyPair, extended from ECDSA/RSA-only to
// also cover Ed25519.
func GenerateKeyPair(algorithm string) (crypto.Signer, error) {
	switch algorithm {
	case "ES256":
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case "ES384":
		return ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	case "ES512":
		return ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	case "RS256", "RS384", "RS512", "PS256", "PS384", "PS512":
		return rsa.GenerateKey(rand.Reader, 2048)
	case "EdDSA":
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		return priv, err
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
}
