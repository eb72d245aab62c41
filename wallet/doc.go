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

// Package wallet defines the on-chain side of pegging funds into the
// federation: the proof that Bitcoin was locked into the federation's
// contract output. Checking such a proof against the Bitcoin chain (SPV
// depth, contract key derivation) is the job of the federation's wallet
// module; this package only carries the proof data and its canonical
// encoding.
package wallet
