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

package b64

import "net/url"

// NormalizeDPoPTargetURI implements the "htu" normalization rule
// from RFC 9449 §4.3 via RFC 3986 §6.2.3: drop the query and
// fragment, default an empty path to "/", and keep scheme, userinfo,
// host and port unchanged. The second return is false if uri does
// not parse as an absolute URI.
func NormalizeDPoPTargetURI(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), true
}
