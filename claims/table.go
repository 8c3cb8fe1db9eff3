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

// Package claims implements §4.5 Claim Containers: thin typed views
// over a store.Storage, each keyed by a static registered-parameter
// table that maps a field identifier (e.g. "jwtId") to its wire key
// ("jti"). A subset of fields may be localizable (§3): reading a
// localizable field searches for "base#<locale>" keys and returns
// the best match against the process-wide locale preference;
// writing always uses the bare base key.
package claims

// Param describes one registered parameter: its wire key name, and
// whether it participates in the locale-suffix lookup described in
// spec §3.
type Param struct {
	Wire        string
	Localizable bool
}

// Table is a registered-parameter table: field identifier -> Param.
// Container types declare one of these as a package-level value;
// it never changes at runtime.
type Table map[string]Param
