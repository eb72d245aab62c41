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

package transaction

import (
	"fmt"

	"github.com/toyota-corolla0/fedimint/mint"
)

// InsufficientlyFundedError indicates a transaction whose inputs do not
// cover its outputs plus fees. It carries the three computed sums so the
// caller can present the shortfall.
type InsufficientlyFundedError struct {
	Inputs  mint.Amount
	Outputs mint.Amount
	Fee     mint.Amount
}

func (e InsufficientlyFundedError) Error() string {
	return fmt.Sprintf(
		"transaction is insufficiently funded (in=%s, out=%s, fee=%s)",
		e.Inputs,
		e.Outputs,
		e.Fee,
	)
}

// InvalidSignatureError indicates a transaction whose aggregate signature
// does not verify. It deliberately carries no further detail so failure
// modes cannot be told apart by a submitter.
type InvalidSignatureError struct{}

func (InvalidSignatureError) Error() string {
	return "transaction signature is invalid"
}
