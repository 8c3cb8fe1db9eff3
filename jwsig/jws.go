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

// Package jwsig is the JWS Engine: parsing and serializing the
// compact, flattened-JSON and general-JSON forms of RFC 7515, and
// driving signing/verification through the jwskey/jwa layers below
// it. The shape of JWS (a payload plus a slice of Signature slots,
// each with a protected/unprotected header pair) and the
// AddSignature/GetToken-by-typ operations are grounded on the
// teacher's oidc.Jws, generalized from "append an already-signed
// compact token" to "sign a header over the shared payload with a
// candidate key list", and extended with the flattened/general JSON
// decode path and byte-exact signing-input reconstruction spec
// §4.6.2 requires.
package jwsig

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/jozefizso/jwsetkit/b64"
	"github.com/jozefizso/jwsetkit/joseerr"
	"github.com/jozefizso/jwsetkit/store"
)

// Signature is one (protected, unprotected, signature) triple. Both
// ProtectedB64 and the payload's PayloadB64 on the owning JWS are
// preserved exactly as decoded (or exactly as produced while
// signing) so the signing input can always be reconstructed without
// re-encoding JSON, per spec §4.6.2.
type Signature struct {
	// ProtectedB64 is the exact base64url text of the protected
	// header, or "" if this slot has no protected header.
	ProtectedB64 string
	// Protected is the decoded protected header, or nil if
	// ProtectedB64 is "".
	Protected store.Storage
	// Unprotected is the plain, uncovered header, or nil if absent.
	Unprotected store.Storage
	// SignatureBytes is the raw signature (empty for alg=none).
	SignatureBytes []byte
}

// HasProtected reports whether this slot carries a protected header.
func (s Signature) HasProtected() bool { return s.ProtectedB64 != "" }

// JWS is a payload plus one or more signature slots, per spec §3.
type JWS struct {
	// PayloadB64 is the exact base64url text of the payload.
	PayloadB64 string
	// Payload is the decoded payload bytes.
	Payload []byte
	// Signatures holds one slot per signature, in wire order.
	Signatures []Signature
}

// New returns a JWS over payload with no signatures yet.
func New(payload []byte) *JWS {
	return &JWS{
		PayloadB64: b64.Encode(payload),
		Payload:    payload,
	}
}

// signingInput reconstructs the exact bytes that were (or will be)
// signed for slot: the preserved protected-header base64url text,
// a '.', and the preserved payload base64url text. Never re-encodes
// the decoded JSON, because canonicalization differences would
// invalidate the signature (spec §4.6.2, §9 "Preserving signed
// bytes").
func (j *JWS) signingInput(sig Signature) []byte {
	return []byte(sig.ProtectedB64 + "." + j.PayloadB64)
}

// wireSignature is the JSON shape of one element of a general-form
// "signatures" array, and also the JSON shape a flattened-form
// object reduces to once its payload is split off.
type wireSignature struct {
	Protected *string        `json:"protected,omitempty"`
	Header    map[string]any `json:"header,omitempty"`
	Signature string         `json:"signature"`
}

// wireJWS covers both the flattened and general JSON forms; which
// one a given document uses is told apart by whether "signature" or
// "signatures" is present.
type wireJWS struct {
	Payload    string          `json:"payload"`
	Protected  *string         `json:"protected,omitempty"`
	Header     map[string]any  `json:"header,omitempty"`
	Signature  *string         `json:"signature,omitempty"`
	Signatures []wireSignature `json:"signatures,omitempty"`
}

// Decode parses raw as compact, flattened-JSON, or general-JSON form,
// detected by leading bytes per spec §4.6.2. The decoded protected
// header and payload bytes are preserved exactly for later signing-
// input reconstruction.
func Decode(raw []byte) (*JWS, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) >= 2 && trimmed[0] == 'e' && trimmed[1] == 'y':
		return decodeCompact(trimmed)
	case len(trimmed) > 0 && trimmed[0] == '{':
		return decodeJSON(trimmed)
	default:
		return nil, fmt.Errorf("%w: unrecognized JWS form", joseerr.ErrMalformedInput)
	}
}

func decodeCompact(raw []byte) (*JWS, error) {
	parts := bytes.Split(raw, []byte("."))
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: compact form requires exactly two '.' separators", joseerr.ErrMalformedInput)
	}
	protectedB64, payloadB64, sigB64 := string(parts[0]), string(parts[1]), string(parts[2])

	payload, err := b64.Decode(payloadB64)
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment: %v", joseerr.ErrMalformedInput, err)
	}
	sig, err := decodeSlot(&protectedB64, nil, sigB64)
	if err != nil {
		return nil, err
	}
	return &JWS{
		PayloadB64: payloadB64,
		Payload:    payload,
		Signatures: []Signature{sig},
	}, nil
}

func decodeJSON(raw []byte) (*JWS, error) {
	var w wireJWS
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", joseerr.ErrMalformedInput, err)
	}

	payload, err := b64.Decode(w.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", joseerr.ErrMalformedInput, err)
	}

	js := &JWS{PayloadB64: w.Payload, Payload: payload}

	switch {
	case w.Signature != nil:
		sig, err := decodeSlot(w.Protected, w.Header, *w.Signature)
		if err != nil {
			return nil, err
		}
		js.Signatures = []Signature{sig}
	case w.Signatures != nil:
		js.Signatures = make([]Signature, 0, len(w.Signatures))
		for i, ws := range w.Signatures {
			sig, err := decodeSlot(ws.Protected, ws.Header, ws.Signature)
			if err != nil {
				return nil, fmt.Errorf("signature %d: %w", i, err)
			}
			js.Signatures = append(js.Signatures, sig)
		}
	default:
		return nil, fmt.Errorf("%w: JSON form requires \"signature\" or \"signatures\"", joseerr.ErrMalformedInput)
	}
	return js, nil
}

func decodeSlot(protectedB64 *string, header map[string]any, sigB64 string) (Signature, error) {
	sigBytes, err := b64.Decode(sigB64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: signature segment: %v", joseerr.ErrMalformedInput, err)
	}

	var protStorage store.Storage
	var protB64 string
	if protectedB64 != nil {
		protB64 = *protectedB64
		if protB64 != "" {
			protBytes, err := b64.Decode(protB64)
			if err != nil {
				return Signature{}, fmt.Errorf("%w: protected segment: %v", joseerr.ErrMalformedInput, err)
			}
			protStorage, err = store.Decode(protBytes)
			if err != nil {
				return Signature{}, fmt.Errorf("%w: protected header: %v", joseerr.ErrMalformedInput, err)
			}
		}
	}

	var unprotected store.Storage
	if header != nil {
		unprotected = store.Storage(header)
	}

	return Signature{
		ProtectedB64:   protB64,
		Protected:      protStorage,
		Unprotected:    unprotected,
		SignatureBytes: sigBytes,
	}, nil
}

// CompactSerialize encodes j as the three-segment compact form. It
// fails if j does not have exactly one signature slot, or if that
// slot carries an unprotected header (which compact form cannot
// represent).
func (j *JWS) CompactSerialize() (string, error) {
	if len(j.Signatures) != 1 {
		return "", fmt.Errorf("compact form requires exactly one signature, got %d", len(j.Signatures))
	}
	sig := j.Signatures[0]
	if sig.Unprotected != nil && len(sig.Unprotected) > 0 {
		return "", fmt.Errorf("compact form cannot represent an unprotected header")
	}
	return sig.ProtectedB64 + "." + j.PayloadB64 + "." + b64.Encode(sig.SignatureBytes), nil
}

// FlattenedJSON encodes j as the flattened JSON form. It fails if j
// does not have exactly one signature slot.
func (j *JWS) FlattenedJSON() ([]byte, error) {
	if len(j.Signatures) != 1 {
		return nil, fmt.Errorf("flattened form requires exactly one signature, got %d", len(j.Signatures))
	}
	sig := j.Signatures[0]
	out := map[string]any{
		"payload":   j.PayloadB64,
		"signature": b64.Encode(sig.SignatureBytes),
	}
	if sig.HasProtected() {
		out["protected"] = sig.ProtectedB64
	}
	if len(sig.Unprotected) > 0 {
		out["header"] = map[string]any(sig.Unprotected)
	}
	return json.Marshal(out)
}

// GeneralJSON encodes j as the general JSON form, regardless of how
// many signatures it carries.
func (j *JWS) GeneralJSON() ([]byte, error) {
	sigs := make([]map[string]any, 0, len(j.Signatures))
	for _, sig := range j.Signatures {
		ws := map[string]any{"signature": b64.Encode(sig.SignatureBytes)}
		if sig.HasProtected() {
			ws["protected"] = sig.ProtectedB64
		}
		if len(sig.Unprotected) > 0 {
			ws["header"] = map[string]any(sig.Unprotected)
		}
		sigs = append(sigs, ws)
	}
	return json.Marshal(map[string]any{
		"payload":    j.PayloadB64,
		"signatures": sigs,
	})
}

// Serialize picks the wire form spec §4.6.5 mandates: compact iff
// there is exactly one signature slot and it has no unprotected
// header; flattened JSON for a lone slot with an unprotected header;
// general JSON for two or more slots.
func (j *JWS) Serialize() ([]byte, error) {
	if len(j.Signatures) == 1 && len(j.Signatures[0].Unprotected) == 0 {
		s, err := j.CompactSerialize()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	if len(j.Signatures) == 1 {
		return j.FlattenedJSON()
	}
	return j.GeneralJSON()
}

// GetSignature returns the i'th signature slot serialized as a
// standalone compact token, grounded on the teacher's Jws.GetToken.
func (j *JWS) GetSignature(i int) (string, error) {
	if i < 0 || i >= len(j.Signatures) {
		return "", fmt.Errorf("no signature at index %d, have %d", i, len(j.Signatures))
	}
	sig := j.Signatures[i]
	return sig.ProtectedB64 + "." + j.PayloadB64 + "." + b64.Encode(sig.SignatureBytes), nil
}

// GetSignatureByTyp returns, as a standalone compact token, the one
// signature slot whose protected header carries "typ" == typ. It
// returns ("", nil) if no slot matches, and an error if more than
// one does — grounded on the teacher's Jws.GetTokenByTyp and
// simplejws's identical method (supplemental feature #2).
func (j *JWS) GetSignatureByTyp(typ string) (string, error) {
	var match *Signature
	for i := range j.Signatures {
		sig := &j.Signatures[i]
		if sig.Protected == nil {
			continue
		}
		found, ok := store.GetString(sig.Protected, "typ")
		if !ok || found != typ {
			continue
		}
		if match != nil {
			return "", fmt.Errorf("more than one signature has typ %q", typ)
		}
		match = sig
	}
	if match == nil {
		return "", nil
	}
	return match.ProtectedB64 + "." + j.PayloadB64 + "." + b64.Encode(match.SignatureBytes), nil
}
