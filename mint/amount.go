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

package mint

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// MsatPerSat is the number of mint units (millisatoshi) per satoshi.
const MsatPerSat = 1000

// Amount is a quantity of the mint's unit of value, denominated in
// millisatoshi. It is always non-negative and totally ordered by the
// ordinary integer comparison operators.
type Amount uint64

// NewAmountFromMsat builds an Amount from a raw millisatoshi count.
func NewAmountFromMsat(msat uint64) Amount {
	return Amount(msat)
}

// NewAmountFromSat builds an Amount from a satoshi count. The conversion
// is exact for every count the Bitcoin ledger can represent; counts too
// large to scale saturate at the maximum amount.
func NewAmountFromSat(sat uint64) Amount {
	return Amount(sat).Mul(MsatPerSat)
}

// NewAmountFromBitcoin builds an Amount from a Bitcoin-denominated
// amount. The amount must be non-negative.
func NewAmountFromBitcoin(amount btcutil.Amount) Amount {
	if amount < 0 {
		panic(fmt.Sprintf("negative bitcoin amount %d", amount))
	}
	return NewAmountFromSat(uint64(amount))
}

// Msat returns the raw millisatoshi count.
func (a Amount) Msat() uint64 {
	return uint64(a)
}

// Add returns the sum of two amounts, saturating at the maximum amount
// instead of wrapping. Funding sums over attacker-chosen values must
// never wrap back into the small range.
func (a Amount) Add(other Amount) Amount {
	sum := a + other
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

// Mul returns the amount scaled by an integer factor, used for per-unit
// fee calculations. Like Add, the result saturates instead of wrapping.
func (a Amount) Mul(n uint64) Amount {
	if a == 0 || n == 0 {
		return 0
	}
	product := a * Amount(n)
	if product/a != Amount(n) {
		return math.MaxUint64
	}
	return product
}

func (a Amount) String() string {
	return fmt.Sprintf("%d msat", uint64(a))
}

func (a Amount) ConsensusEncode(w io.Writer) (int, error) {
	return encoding.WriteUint64(w, uint64(a))
}

func (a *Amount) ConsensusDecode(r io.Reader) error {
	msat, err := encoding.ReadUint64(r)
	if err != nil {
		return err
	}
	*a = Amount(msat)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(a))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var msat uint64
	if err := json.Unmarshal(data, &msat); err != nil {
		return err
	}
	*a = Amount(msat)
	return nil
}
