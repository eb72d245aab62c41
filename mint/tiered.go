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
	"io"
	"slices"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// Coins is a multiset of items grouped by denomination tier, forming the
// coin bundle of a transaction input or output. The total value is the
// sum over all tiers of tier value times item count.
type Coins[T any] struct {
	coins map[Amount][]T
}

// TieredItem pairs an item with the denomination tier it belongs to.
type TieredItem[T any] struct {
	Tier Amount
	Item T
}

// NewCoins builds an empty coin bundle.
func NewCoins[T any]() Coins[T] {
	return Coins[T]{coins: make(map[Amount][]T)}
}

// Add appends an item to the given tier, preserving insertion order
// within the tier.
func (c *Coins[T]) Add(tier Amount, item T) {
	if c.coins == nil {
		c.coins = make(map[Amount][]T)
	}
	c.coins[tier] = append(c.coins[tier], item)
}

// TotalAmount returns the summed value of the bundle.
func (c Coins[T]) TotalAmount() Amount {
	var total Amount
	for tier, items := range c.coins {
		total = total.Add(tier.Mul(uint64(len(items))))
	}
	return total
}

// Count returns the number of coin units in the bundle across all tiers.
func (c Coins[T]) Count() int {
	count := 0
	for _, items := range c.coins {
		count += len(items)
	}
	return count
}

// Tiers returns the denominations present in the bundle in ascending
// order.
func (c Coins[T]) Tiers() []Amount {
	tiers := make([]Amount, 0, len(c.coins))
	for tier := range c.coins {
		tiers = append(tiers, tier)
	}
	slices.Sort(tiers)
	return tiers
}

// TierItems returns the items in the given tier in insertion order.
func (c Coins[T]) TierItems(tier Amount) []T {
	return c.coins[tier]
}

// Items returns the bundle flattened into (tier, item) pairs, tiers in
// ascending order and insertion order within each tier. This is the
// iteration order used by the consensus encoding.
func (c Coins[T]) Items() []TieredItem[T] {
	items := make([]TieredItem[T], 0, c.Count())
	for _, tier := range c.Tiers() {
		for _, item := range c.coins[tier] {
			items = append(items, TieredItem[T]{Tier: tier, Item: item})
		}
	}
	return items
}

// EncodeCoins writes a coin bundle as a uint64 item count followed by
// each (tier, item) pair in the bundle's canonical iteration order.
func EncodeCoins[T encoding.Encodable](w io.Writer, c Coins[T]) (int, error) {
	items := c.Items()
	written, err := encoding.WriteUint64(w, uint64(len(items)))
	if err != nil {
		return written, err
	}
	for _, item := range items {
		n, err := item.Tier.ConsensusEncode(w)
		written += n
		if err != nil {
			return written, err
		}
		n, err = item.Item.ConsensusEncode(w)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// DecodeCoins reads a coin bundle written by EncodeCoins.
func DecodeCoins[T any, PT encoding.DecodablePtr[T]](r io.Reader) (Coins[T], error) {
	count, err := encoding.ReadUint64(r)
	if err != nil {
		return Coins[T]{}, err
	}
	if count > encoding.MaxSequenceLength {
		return Coins[T]{}, encoding.NewDecodeError(
			"coin count %d exceeds maximum of %d",
			count,
			encoding.MaxSequenceLength,
		)
	}
	coins := NewCoins[T]()
	for i := uint64(0); i < count; i++ {
		var tier Amount
		if err := tier.ConsensusDecode(r); err != nil {
			return Coins[T]{}, err
		}
		var item T
		if err := PT(&item).ConsensusDecode(r); err != nil {
			return Coins[T]{}, err
		}
		coins.Add(tier, item)
	}
	return coins, nil
}

// PowersOfTwoTiers returns the mint's default denomination schedule: n
// power-of-two tiers starting at 1 msat.
func PowersOfTwoTiers(n int) []Amount {
	tiers := make([]Amount, 0, n)
	for i := 0; i < n; i++ {
		tiers = append(tiers, Amount(uint64(1)<<i))
	}
	return tiers
}

// RepresentAmount decomposes an amount into per-tier counts using the
// largest denominations first. The remainder that cannot be represented
// with the given tier schedule is returned alongside the counts.
func RepresentAmount(amount Amount, tiers []Amount) (map[Amount]uint64, Amount) {
	sorted := slices.Clone(tiers)
	slices.Sort(sorted)
	counts := make(map[Amount]uint64)
	remaining := amount
	for i := len(sorted) - 1; i >= 0; i-- {
		tier := sorted[i]
		if tier == 0 {
			continue
		}
		if n := uint64(remaining / tier); n > 0 {
			counts[tier] = n
			remaining -= tier.Mul(n)
		}
	}
	return counts, remaining
}
