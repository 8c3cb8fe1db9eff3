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

package claims

import (
	"time"

	"github.com/google/uuid"

	"github.com/jozefizso/jwsetkit/store"
)

// JWTTable is the registered-parameter table for the JWT registered
// claims, §4.5.
var JWTTable = Table{
	"issuer":         {Wire: "iss"},
	"subject":        {Wire: "sub"},
	"audience":       {Wire: "aud"},
	"expirationTime": {Wire: "exp"},
	"notBefore":      {Wire: "nbf"},
	"issuedAt":       {Wire: "iat"},
	"jwtId":          {Wire: "jti"},
}

// JWT is a typed view over a store.Storage holding the RFC 7519
// registered claims. It holds no JSON state of its own; Storage
// returns the backing map so callers can read or write any
// unregistered ("private") claim directly.
type JWT struct {
	Storage store.Storage
}

// NewJWT returns a JWT view over a freshly-allocated, empty Storage.
func NewJWT() *JWT {
	return &JWT{Storage: store.New()}
}

// WrapJWT returns a JWT view over an existing Storage (for example,
// one decoded from a JWS payload).
func WrapJWT(s store.Storage) *JWT {
	if s == nil {
		s = store.New()
	}
	return &JWT{Storage: s}
}

func (c *JWT) Issuer() (string, bool)      { return store.GetString(c.Storage, JWTTable["issuer"].Wire) }
func (c *JWT) SetIssuer(v *string)         { store.SetString(c.Storage, JWTTable["issuer"].Wire, v) }
func (c *JWT) Subject() (string, bool)     { return store.GetString(c.Storage, JWTTable["subject"].Wire) }
func (c *JWT) SetSubject(v *string)        { store.SetString(c.Storage, JWTTable["subject"].Wire, v) }
func (c *JWT) ID() (string, bool)          { return store.GetString(c.Storage, JWTTable["jwtId"].Wire) }
func (c *JWT) SetID(v *string)             { store.SetString(c.Storage, JWTTable["jwtId"].Wire, v) }

// SetNewID generates a fresh random jti using a version-4 UUID
// (lowercase, hyphenated per the JOSE UUID field rule) and stores it.
func (c *JWT) SetNewID() string {
	id := uuid.New().String()
	c.SetID(&id)
	return id
}

// Audience reads "aud", which per RFC 7519 §4.1.3 may be encoded as
// either a single string or a JSON array of strings; both shapes
// come back as a slice here.
func (c *JWT) Audience() ([]string, bool) {
	return store.GetStringList(c.Storage, JWTTable["audience"].Wire)
}

// SetAudience writes "aud": a single-element v is written as a bare
// string, matching the common single-audience JWT convention; two
// or more elements are written as a JSON array.
func (c *JWT) SetAudience(v []string) {
	store.SetStringList(c.Storage, JWTTable["audience"].Wire, v)
}

func (c *JWT) ExpirationTime() (time.Time, bool) {
	return store.GetTime(c.Storage, JWTTable["expirationTime"].Wire)
}
func (c *JWT) SetExpirationTime(v *time.Time) {
	store.SetTime(c.Storage, JWTTable["expirationTime"].Wire, v)
}

func (c *JWT) NotBefore() (time.Time, bool) {
	return store.GetTime(c.Storage, JWTTable["notBefore"].Wire)
}
func (c *JWT) SetNotBefore(v *time.Time) {
	store.SetTime(c.Storage, JWTTable["notBefore"].Wire, v)
}

func (c *JWT) IssuedAt() (time.Time, bool) {
	return store.GetTime(c.Storage, JWTTable["issuedAt"].Wire)
}
func (c *JWT) SetIssuedAt(v *time.Time) {
	store.SetTime(c.Storage, JWTTable["issuedAt"].Wire, v)
}

// Encode marshals the backing Storage to its JSON-object wire form;
// this is the payload bytes a JWS carries for a JWT.
func (c *JWT) Encode() ([]byte, error) {
	return c.Storage.Encode()
}
