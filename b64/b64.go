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

// Package b64 implements the base64url (no padding) encoding used
// throughout JOSE: header, payload and signature segments, and any
// wire parameter whose JOSE field encoding is "bytes".
package b64

import "encoding/base64"

var encoding = base64.RawURLEncoding.Strict()

// Encode returns the base64url (RFC 4648 §5) encoding of decoded,
// without padding.
func Encode(decoded []byte) string {
	return encoding.EncodeToString(decoded)
}

// Decode reverses Encode. It tolerates an encoded value that still
// carries '=' padding (some producers pad anyway) but rejects any
// other departure from the base64url alphabet.
func Decode(encoded string) ([]byte, error) {
	for len(encoded) > 0 && encoded[len(encoded)-1] == '=' {
		encoded = encoded[:len(encoded)-1]
	}
	return encoding.DecodeString(encoded)
}

// EncodeBytes is Encode taking and returning []byte, for call sites
// that already hold encoded segments as bytes (e.g. compact-form
// parsing) and want to avoid a round trip through string.
func EncodeBytes(decoded []byte) []byte {
	buf := make([]byte, encoding.EncodedLen(len(decoded)))
	encoding.Encode(buf, decoded)
	return buf
}

// DecodeBytes is Decode for []byte input/output.
func DecodeBytes(encoded []byte) ([]byte, error) {
	for len(encoded) > 0 && encoded[len(encoded)-1] == '=' {
		encoded = encoded[:len(encoded)-1]
	}
	decoded := make([]byte, encoding.DecodedLen(len(encoded)))
	n, err := encoding.Decode(decoded, encoded)
	if err != nil {
		return nil, err
	}
	return decoded[:n], nil
}
