// Copyright 2026 Fedimint Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transaction defines the federation's transaction format and
// the rules deciding whether a proposed transaction may be accepted: it
// must be self-funding once fees are included, and its single aggregate
// signature must cover every input's authorization keys over the
// transaction's commitment hash.
//
// Both checks are pure functions over an immutable transaction value and
// a read-only fee schedule, so they can run concurrently across any
// number of transactions without coordination.
package transaction
