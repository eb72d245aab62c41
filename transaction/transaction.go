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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/toyota-corolla0/fedimint/encoding"
	"github.com/toyota-corolla0/fedimint/mint"
	"github.com/toyota-corolla0/fedimint/musig"
	"github.com/toyota-corolla0/fedimint/wallet"
)

// Wire discriminants for the Input and Output variants. They are part of
// the consensus format and must never be renumbered.
const (
	variantTagCoins  byte = 0x00
	variantTagPegIn  byte = 0x01
	variantTagPegOut byte = 0x01
)

// TransactionIdSize is the size of a transaction identifier digest.
const TransactionIdSize = 32

// TransactionId identifies a transaction by the hash of its inputs and
// outputs. The signature is excluded, so the identifier is stable before
// signing.
type TransactionId [TransactionIdSize]byte

func (t TransactionId) String() string {
	return hex.EncodeToString(t[:])
}

func (t TransactionId) Bytes() []byte {
	return t[:]
}

func (t TransactionId) ConsensusEncode(w io.Writer) (int, error) {
	return w.Write(t[:])
}

func (t *TransactionId) ConsensusDecode(r io.Reader) error {
	if _, err := io.ReadFull(r, t[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	return nil
}

func (t TransactionId) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionId) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != TransactionIdSize {
		return fmt.Errorf(
			"invalid transaction id length %d, expected %d",
			len(raw),
			TransactionIdSize,
		)
	}
	copy(t[:], raw)
	return nil
}

// OutPoint references one output of a transaction, used to track coin
// issuance.
type OutPoint struct {
	Txid   TransactionId
	OutIdx uint64
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Txid, o.OutIdx)
}

func (o OutPoint) ConsensusEncode(w io.Writer) (int, error) {
	written, err := o.Txid.ConsensusEncode(w)
	if err != nil {
		return written, err
	}
	n, err := encoding.WriteUint64(w, o.OutIdx)
	return written + n, err
}

func (o *OutPoint) ConsensusDecode(r io.Reader) error {
	if err := o.Txid.ConsensusDecode(r); err != nil {
		return err
	}
	outIdx, err := encoding.ReadUint64(r)
	if err != nil {
		return err
	}
	o.OutIdx = outIdx
	return nil
}

// FeeConsensus is the federation-wide fee schedule. It is agreed
// out-of-band, immutable during validation and shared read-only by all
// validators.
type FeeConsensus struct {
	FeeCoinSpendAbs mint.Amount
	FeePegInAbs     mint.Amount
	FeePegOutAbs    mint.Amount
}

// TransactionItem captures the properties common to transaction inputs
// and outputs: the value they carry before fees and the fee they owe.
type TransactionItem interface {
	Amount() mint.Amount
	Fee(fees *FeeConsensus) mint.Amount
}

// Input is one funding source of a transaction: either a bundle of
// previously issued coins or a peg-in proof. Exactly one variant is set.
type Input struct {
	Coins *mint.Coins[mint.Coin]
	PegIn *wallet.PegInProof
}

// NewCoinsInput builds an input spending a bundle of coins.
func NewCoinsInput(coins mint.Coins[mint.Coin]) Input {
	return Input{Coins: &coins}
}

// NewPegInInput builds an input claiming pegged-in on-chain funds.
func NewPegInInput(proof wallet.PegInProof) Input {
	return Input{PegIn: &proof}
}

// Amount returns the value the input contributes before fees.
func (i Input) Amount() mint.Amount {
	switch {
	case i.Coins != nil:
		return i.Coins.TotalAmount()
	case i.PegIn != nil:
		return mint.NewAmountFromSat(uint64(i.PegIn.TxOutput().Value))
	}
	panic("input has no variant set")
}

// Fee returns the fee the input owes under the given schedule: the
// per-unit coin spend fee times the number of coin units, or the flat
// peg-in fee.
func (i Input) Fee(fees *FeeConsensus) mint.Amount {
	switch {
	case i.Coins != nil:
		return fees.FeeCoinSpendAbs.Mul(uint64(i.Coins.Count()))
	case i.PegIn != nil:
		return fees.FeePegInAbs
	}
	panic("input has no variant set")
}

// AuthorizationKeys returns the public keys that must have co-signed the
// transaction for this input to be spendable: every coin's spend key,
// or the peg-in proof's tweaked contract key.
func (i Input) AuthorizationKeys() []*btcec.PublicKey {
	switch {
	case i.Coins != nil:
		items := i.Coins.Items()
		keys := make([]*btcec.PublicKey, 0, len(items))
		for _, item := range items {
			keys = append(keys, item.Item.SpendKey())
		}
		return keys
	case i.PegIn != nil:
		return []*btcec.PublicKey{i.PegIn.TweakContractKey}
	}
	panic("input has no variant set")
}

func (i Input) ConsensusEncode(w io.Writer) (int, error) {
	switch {
	case i.Coins != nil:
		written, err := encoding.WriteByte(w, variantTagCoins)
		if err != nil {
			return written, err
		}
		n, err := mint.EncodeCoins(w, *i.Coins)
		return written + n, err
	case i.PegIn != nil:
		written, err := encoding.WriteByte(w, variantTagPegIn)
		if err != nil {
			return written, err
		}
		n, err := i.PegIn.ConsensusEncode(w)
		return written + n, err
	}
	panic("input has no variant set")
}

func (i *Input) ConsensusDecode(r io.Reader) error {
	tag, err := encoding.ReadByte(r)
	if err != nil {
		return err
	}
	switch tag {
	case variantTagCoins:
		coins, err := mint.DecodeCoins[mint.Coin](r)
		if err != nil {
			return err
		}
		*i = Input{Coins: &coins}
		return nil
	case variantTagPegIn:
		var proof wallet.PegInProof
		if err := proof.ConsensusDecode(r); err != nil {
			return err
		}
		*i = Input{PegIn: &proof}
		return nil
	}
	return encoding.NewDecodeError("unknown input variant 0x%02x", tag)
}

// Output is one funding destination of a transaction: either a bundle of
// blind tokens to be issued as new coins or a peg-out request. Exactly
// one variant is set.
type Output struct {
	Coins  *mint.Coins[mint.BlindToken]
	PegOut *PegOut
}

// NewCoinsOutput builds an output requesting issuance of new coins.
func NewCoinsOutput(tokens mint.Coins[mint.BlindToken]) Output {
	return Output{Coins: &tokens}
}

// NewPegOutOutput builds an output releasing on-chain funds.
func NewPegOutOutput(pegOut PegOut) Output {
	return Output{PegOut: &pegOut}
}

// Amount returns the value the output consumes before fees.
func (o Output) Amount() mint.Amount {
	switch {
	case o.Coins != nil:
		return o.Coins.TotalAmount()
	case o.PegOut != nil:
		return mint.NewAmountFromBitcoin(o.PegOut.Amount)
	}
	panic("output has no variant set")
}

// Fee returns the fee the output owes under the given schedule,
// symmetric to Input.Fee.
func (o Output) Fee(fees *FeeConsensus) mint.Amount {
	switch {
	case o.Coins != nil:
		return fees.FeeCoinSpendAbs.Mul(uint64(o.Coins.Count()))
	case o.PegOut != nil:
		return fees.FeePegOutAbs
	}
	panic("output has no variant set")
}

func (o Output) ConsensusEncode(w io.Writer) (int, error) {
	switch {
	case o.Coins != nil:
		written, err := encoding.WriteByte(w, variantTagCoins)
		if err != nil {
			return written, err
		}
		n, err := mint.EncodeCoins(w, *o.Coins)
		return written + n, err
	case o.PegOut != nil:
		written, err := encoding.WriteByte(w, variantTagPegOut)
		if err != nil {
			return written, err
		}
		n, err := o.PegOut.ConsensusEncode(w)
		return written + n, err
	}
	panic("output has no variant set")
}

func (o *Output) ConsensusDecode(r io.Reader) error {
	tag, err := encoding.ReadByte(r)
	if err != nil {
		return err
	}
	switch tag {
	case variantTagCoins:
		tokens, err := mint.DecodeCoins[mint.BlindToken](r)
		if err != nil {
			return err
		}
		*o = Output{Coins: &tokens}
		return nil
	case variantTagPegOut:
		var pegOut PegOut
		if err := pegOut.ConsensusDecode(r); err != nil {
			return err
		}
		*o = Output{PegOut: &pegOut}
		return nil
	}
	return encoding.NewDecodeError("unknown output variant 0x%02x", tag)
}

// PegOut requests the release of on-chain funds to a Bitcoin recipient.
// The recipient is committed to the transaction hash as its resolved
// output script, so the same economic destination hashes identically
// regardless of address notation.
type PegOut struct {
	Recipient encoding.Script
	Amount    btcutil.Amount
}

// NewPegOut resolves a Bitcoin address into a peg-out request over its
// output script.
func NewPegOut(recipient btcutil.Address, amount btcutil.Amount) (PegOut, error) {
	script, err := txscript.PayToAddrScript(recipient)
	if err != nil {
		return PegOut{}, fmt.Errorf("resolving recipient script: %w", err)
	}
	return PegOut{Recipient: script, Amount: amount}, nil
}

// RecipientAddress resolves the committed output script back to an
// address on the given network.
func (p PegOut) RecipientAddress(params *chaincfg.Params) (btcutil.Address, error) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(p.Recipient, params)
	if err != nil {
		return nil, err
	}
	if len(addrs) != 1 {
		return nil, fmt.Errorf(
			"recipient script resolves to %d addresses, expected 1",
			len(addrs),
		)
	}
	return addrs[0], nil
}

func (p PegOut) ConsensusEncode(w io.Writer) (int, error) {
	written, err := p.Recipient.ConsensusEncode(w)
	if err != nil {
		return written, err
	}
	n, err := encoding.WriteUint64(w, uint64(p.Amount))
	return written + n, err
}

func (p *PegOut) ConsensusDecode(r io.Reader) error {
	if err := p.Recipient.ConsensusDecode(r); err != nil {
		return err
	}
	sats, err := encoding.ReadUint64(r)
	if err != nil {
		return err
	}
	if sats > uint64(btcutil.MaxSatoshi) {
		return encoding.NewDecodeError(
			"peg-out amount %d exceeds maximum of %d satoshi",
			sats,
			int64(btcutil.MaxSatoshi),
		)
	}
	p.Amount = btcutil.Amount(sats)
	return nil
}

// Transaction is an atomic transfer: a set of funding inputs, a set of
// destination outputs and one aggregate signature covering every input's
// authorization keys.
type Transaction struct {
	Inputs    []Input
	Outputs   []Output
	Signature musig.Signature
}

func (t *Transaction) ConsensusEncode(w io.Writer) (int, error) {
	written, err := encoding.EncodeSlice(w, t.Inputs)
	if err != nil {
		return written, err
	}
	n, err := encoding.EncodeSlice(w, t.Outputs)
	written += n
	if err != nil {
		return written, err
	}
	n, err = t.Signature.ConsensusEncode(w)
	return written + n, err
}

func (t *Transaction) ConsensusDecode(r io.Reader) error {
	inputs, err := encoding.DecodeSlice[Input](r)
	if err != nil {
		return err
	}
	outputs, err := encoding.DecodeSlice[Output](r)
	if err != nil {
		return err
	}
	if err := t.Signature.ConsensusDecode(r); err != nil {
		return err
	}
	t.Inputs = inputs
	t.Outputs = outputs
	return nil
}
