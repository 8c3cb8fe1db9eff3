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

// Package dpop implements the DPoP Profile (§4.7, RFC 9449): the
// claim schema for a DPoP proof's payload, the htu target-URI
// normalization rule, and proof creation/verification as a JWS
// whose payload is a DPoP claim set. Claims is grounded on the
// teacher's oidc.DpopClaims and its MatchesClaims helper; proof
// construction and verification are new, built on package jwsig.
package dpop

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jozefizso/jwsetkit/claims"
	"github.com/jozefizso/jwsetkit/store"
)

// Table is the registered-parameter table for the DPoP claim set,
// spec §4.5.
var Table = claims.Table{
	"jwtId":   {Wire: "jti"},
	"method":  {Wire: "htm"},
	"uri":     {Wire: "htu"},
	"issued":  {Wire: "iat"},
	"ath":     {Wire: "ath"},
	"nonce":   {Wire: "nonce"},
}

// Claims is a typed view over a store.Storage holding the DPoP
// claim set (RFC 9449 §4).
type Claims struct {
	Storage store.Storage
}

// NewClaims returns a Claims view over a freshly-allocated, empty
// Storage.
func NewClaims() *Claims {
	return &Claims{Storage: store.New()}
}

// WrapClaims returns a Claims view over an existing Storage, for
// example one decoded from a verified proof's payload.
func WrapClaims(s store.Storage) *Claims {
	if s == nil {
		s = store.New()
	}
	return &Claims{Storage: s}
}

func (c *Claims) JTI() (string, bool)  { return store.GetString(c.Storage, Table["jwtId"].Wire) }
func (c *Claims) SetJTI(v *string)     { store.SetString(c.Storage, Table["jwtId"].Wire, v) }

// SetNewJTI generates and stores a fresh random jti.
func (c *Claims) SetNewJTI() string {
	id := uuid.New().String()
	c.SetJTI(&id)
	return id
}

func (c *Claims) HTM() (string, bool) { return store.GetString(c.Storage, Table["method"].Wire) }
func (c *Claims) SetHTM(v *string)    { store.SetString(c.Storage, Table["method"].Wire, v) }

func (c *Claims) HTU() (string, bool) { return store.GetString(c.Storage, Table["uri"].Wire) }
func (c *Claims) SetHTU(v *string)    { store.SetString(c.Storage, Table["uri"].Wire, v) }

func (c *Claims) IssuedAt() (time.Time, bool) { return store.GetTime(c.Storage, Table["issued"].Wire) }
func (c *Claims) SetIssuedAt(v *time.Time)    { store.SetTime(c.Storage, Table["issued"].Wire, v) }

func (c *Claims) AccessTokenHash() (string, bool) { return store.GetString(c.Storage, Table["ath"].Wire) }
func (c *Claims) SetAccessTokenHash(v *string)    { store.SetString(c.Storage, Table["ath"].Wire, v) }

func (c *Claims) Nonce() (string, bool) { return store.GetString(c.Storage, Table["nonce"].Wire) }
func (c *Claims) SetNonce(v *string)    { store.SetString(c.Storage, Table["nonce"].Wire, v) }

// Encode marshals the backing Storage to JSON, the bytes carried as
// a DPoP proof's JWS payload.
func (c *Claims) Encode() ([]byte, error) {
	return c.Storage.Encode()
}

// Matches reports whether every claim named in expected is present
// in c with an equal value, comparing under store canonical-form
// equality so e.g. an "iat" stored as int64 matches one compared as
// float64. It does not care about claims present in c but absent
// from expected. Grounded on the teacher's DpopClaims.MatchesClaims;
// policy decisions like acceptable clock skew stay the caller's
// responsibility (spec §1 Non-goals: "clock synchronization").
func (c *Claims) Matches(expected map[string]any) error {
	for key, want := range expected {
		got, ok := c.Storage.Get(key)
		if !ok {
			return fmt.Errorf("claim %q not present", key)
		}
		single := store.New()
		single.Set("v", got)
		other := store.New()
		other.Set("v", want)
		if !single.Equal(other) {
			return fmt.Errorf("claim %q has unexpected value: got %v, want %v", key, got, want)
		}
	}
	return nil
}
