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

import "github.com/jozefizso/jwsetkit/b64"

// NormalizeTargetURI normalizes uri per the "htu" rule (spec §4.2,
// RFC 9449 §4.3): it is a thin re-export of
// b64.NormalizeDPoPTargetURI under the name DPoP callers reach for.
func NormalizeTargetURI(uri string) (string, bool) {
	return b64.NormalizeDPoPTargetURI(uri)
}
