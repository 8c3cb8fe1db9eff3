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

package dpop

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/jozefizso/jwsetkit/b64"
	"github.com/jozefizso/jwsetkit/claims"
	"github.com/jozefizso/jwsetkit/jwa"
	"github.com/jozefizso/jwsetkit/jwsig"
	"github.com/jozefizso/jwsetkit/jwskey"
	"github.com/jozefizso/jwsetkit/store"
)

const proofType = "dpop+jwt"

// ProofOptStruct collects the options a CreateProof call may be
// given. Named and shaped after the teacher's SigOptStruct/SigOpts
// pair in oidc/jws.go.
type ProofOptStruct struct {
	jti         string
	issuedAt    time.Time
	accessToken string
	nonce       string
}

type ProofOpt func(*ProofOptStruct)

// WithJTI overrides the randomly-generated "jti" claim.
func WithJTI(jti string) ProofOpt {
	return func(o *ProofOptStruct) { o.jti = jti }
}

// WithIssuedAt overrides the "iat" claim, which otherwise defaults
// to time.Now(). Mainly useful for tests.
func WithIssuedAt(t time.Time) ProofOpt {
	return func(o *ProofOptStruct) { o.issuedAt = t }
}

// WithAccessToken sets the "ath" claim to the base64url-SHA-256 of
// token's ASCII bytes, binding this proof to an access token per
// RFC 9449 §4.2.
func WithAccessToken(token string) ProofOpt {
	return func(o *ProofOptStruct) { o.accessToken = token }
}

// WithNonce sets the server-provided "nonce" claim.
func WithNonce(nonce string) ProofOpt {
	return func(o *ProofOptStruct) { o.nonce = nonce }
}

// AccessTokenHash computes the "ath" claim value for token: the
// base64url (no padding) encoding of SHA-256 over its ASCII bytes,
// per RFC 9449 §4.2.
func AccessTokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return b64.Encode(sum[:])
}

// CreateProof builds a DPoP proof (spec §4.7): a JWS whose protected
// header carries typ="dpop+jwt", the signing algorithm, and the
// signing key's public JWK, and whose payload is a DPoP claim set
// for method htm against target URI htu. htu is normalized via
// NormalizeTargetURI before being stored.
//
// algorithm must be one of the asymmetric algorithms key supports;
// HMAC keys are rejected because embedding a symmetric secret's JWK
// in a public header would leak it.
func CreateProof(htm, htu string, key jwskey.SigningKey, algorithm jwa.Algorithm, opts ...ProofOpt) (*jwsig.JWS, error) {
	reg, ok := jwa.Lookup(algorithm)
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %s", algorithm)
	}
	if reg.KeyType == jwa.KeyTypeSymmetric {
		return nil, fmt.Errorf("DPoP proofs require an asymmetric algorithm, got %s", algorithm)
	}
	if !key.SupportsAlgorithm(algorithm) {
		return nil, fmt.Errorf("key does not support algorithm %s", algorithm)
	}

	normalized, ok := NormalizeTargetURI(htu)
	if !ok {
		return nil, fmt.Errorf("invalid target URI %q", htu)
	}

	o := &ProofOptStruct{issuedAt: time.Now()}
	for _, apply := range opts {
		apply(o)
	}

	header := claims.NewHeader()
	typ := proofType
	header.SetType(&typ)
	header.SetAlgorithm(algorithm)
	header.SetJWK(key.JWK())

	c := NewClaims()
	if o.jti != "" {
		c.SetJTI(&o.jti)
	} else {
		c.SetNewJTI()
	}
	method := htm
	c.SetHTM(&method)
	c.SetHTU(&normalized)
	iat := o.issuedAt
	c.SetIssuedAt(&iat)
	if o.accessToken != "" {
		ath := AccessTokenHash(o.accessToken)
		c.SetAccessTokenHash(&ath)
	}
	if o.nonce != "" {
		c.SetNonce(&o.nonce)
	}

	payload, err := c.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding DPoP claims: %w", err)
	}

	js := jwsig.New(payload)
	if err := js.AddSignature(header.Storage, nil, []jwskey.SigningKey{key}); err != nil {
		return nil, fmt.Errorf("signing DPoP proof: %w", err)
	}
	return js, nil
}

// ExtractClaims decodes js's payload as a DPoP claim set.
func ExtractClaims(js *jwsig.JWS) (*Claims, error) {
	s, err := store.Decode(js.Payload)
	if err != nil {
		return nil, fmt.Errorf("decoding DPoP claims: %w", err)
	}
	return WrapClaims(s), nil
}

// ExtractJWK returns the public JWK embedded in js's sole signature
// slot's protected header.
func ExtractJWK(js *jwsig.JWS) (store.Storage, error) {
	if len(js.Signatures) != 1 {
		return nil, fmt.Errorf("DPoP proof must have exactly one signature, got %d", len(js.Signatures))
	}
	sig := js.Signatures[0]
	if sig.Protected == nil {
		return nil, fmt.Errorf("DPoP proof has no protected header")
	}
	h := claims.WrapHeader(sig.Protected)
	jwk, ok := h.JWK()
	if !ok {
		return nil, fmt.Errorf("DPoP proof protected header has no jwk")
	}
	return jwk, nil
}

// VerifyProof checks that js is a well-formed DPoP proof (exactly
// one signature, typ="dpop+jwt") and that it verifies against
// pubKey. Token-binding, time-window, and replay policy are the
// caller's responsibility (spec §1 Non-goals); callers typically
// follow this with Claims.Matches against the expected htm/htu and
// an application-defined freshness check on IssuedAt.
func VerifyProof(js *jwsig.JWS, pubKey jwskey.ValidatingKey) error {
	if len(js.Signatures) != 1 {
		return fmt.Errorf("DPoP proof must have exactly one signature, got %d", len(js.Signatures))
	}
	sig := js.Signatures[0]
	if sig.Protected == nil {
		return fmt.Errorf("DPoP proof has no protected header")
	}
	h := claims.WrapHeader(sig.Protected)
	typ, ok := h.Type()
	if !ok || typ != proofType {
		return fmt.Errorf("DPoP proof has typ %q, want %q", typ, proofType)
	}
	return js.Verify([]jwskey.ValidatingKey{pubKey})
}
