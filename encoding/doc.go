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

// Package encoding defines the canonical binary encoding used for all
// consensus-critical values of the federation. Every value that is hashed
// or signed goes through this encoding, so two federation members must
// always produce byte-identical output for the same logical value.
//
// The format is deliberately simple: fixed-width integers are
// little-endian, variable-length sequences carry a uint64 element count
// prefix, and sum types carry a single explicit discriminant byte. Types
// borrowed from the Bitcoin ecosystem (block headers, raw transactions,
// scripts, merkle proofs) delegate to the Bitcoin consensus encoding
// implemented by btcd instead of reimplementing it.
package encoding
