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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jozefizso/jwsetkit/store"
)

func TestJWTRegisteredClaimsRoundTrip(t *testing.T) {
	c := NewJWT()
	issuer := "https://issuer.example.com"
	c.SetIssuer(&issuer)
	subject := "user-123"
	c.SetSubject(&subject)
	exp := time.Unix(1700000100, 0)
	c.SetExpirationTime(&exp)
	iat := time.Unix(1700000000, 0)
	c.SetIssuedAt(&iat)
	id := c.SetNewID()
	require.NotEmpty(t, id)

	got, ok := c.Issuer()
	require.True(t, ok)
	require.Equal(t, issuer, got)

	gotSub, ok := c.Subject()
	require.True(t, ok)
	require.Equal(t, subject, gotSub)

	gotExp, ok := c.ExpirationTime()
	require.True(t, ok)
	require.Equal(t, exp.Unix(), gotExp.Unix())

	gotID, ok := c.ID()
	require.True(t, ok)
	require.Equal(t, id, gotID)
}

func TestJWTAudienceSingleAndMultiValued(t *testing.T) {
	c := NewJWT()
	c.SetAudience([]string{"client-a"})
	raw, ok := c.Storage.Get("aud")
	require.True(t, ok)
	require.Equal(t, "client-a", raw, "single audience is written as a bare string")

	aud, ok := c.Audience()
	require.True(t, ok)
	require.Equal(t, []string{"client-a"}, aud)

	c.SetAudience([]string{"client-a", "client-b"})
	raw, ok = c.Storage.Get("aud")
	require.True(t, ok)
	require.Equal(t, []string{"client-a", "client-b"}, raw)

	aud, ok = c.Audience()
	require.True(t, ok)
	require.Equal(t, []string{"client-a", "client-b"}, aud)

	c.SetAudience(nil)
	_, ok = c.Storage.Get("aud")
	require.False(t, ok, "setting an empty audience removes the key")
}

func TestJWTEncodeDecodeRoundTrip(t *testing.T) {
	c := NewJWT()
	issuer := "https://issuer.example.com"
	c.SetIssuer(&issuer)
	c.SetAudience([]string{"a", "b"})
	buf, err := c.Encode()
	require.NoError(t, err)

	s, err := store.Decode(buf)
	require.NoError(t, err)
	decoded := WrapJWT(s)

	got, ok := decoded.Issuer()
	require.True(t, ok)
	require.Equal(t, issuer, got)
	aud, ok := decoded.Audience()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, aud)
}

func TestWrapJWTOnNilStorage(t *testing.T) {
	c := WrapJWT(nil)
	_, ok := c.Issuer()
	require.False(t, ok)
}
