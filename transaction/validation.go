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
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/toyota-corolla0/fedimint/encoding"
	"github.com/toyota-corolla0/fedimint/mint"
	"github.com/toyota-corolla0/fedimint/musig"
)

// ValidateFunding checks that the transaction is self-funding under the
// given fee schedule: total input value must cover total output value
// plus the summed fees of every input and output. A surplus is kept by
// the federation and is not an error.
func (t *Transaction) ValidateFunding(fees *FeeConsensus) error {
	var inAmount, outAmount, feeAmount mint.Amount
	for _, input := range t.Inputs {
		inAmount = inAmount.Add(input.Amount())
		feeAmount = feeAmount.Add(input.Fee(fees))
	}
	for _, output := range t.Outputs {
		outAmount = outAmount.Add(output.Amount())
		feeAmount = feeAmount.Add(output.Fee(fees))
	}

	if inAmount >= outAmount.Add(feeAmount) {
		return nil
	}
	return InsufficientlyFundedError{
		Inputs:  inAmount,
		Outputs: outAmount,
		Fee:     feeAmount,
	}
}

// TxHash returns the hash the transaction's signature commits to. To
// compute it before a signature exists use TxHashFromParts.
func (t *Transaction) TxHash() TransactionId {
	return TxHashFromParts(t.Inputs, t.Outputs)
}

// TxHashFromParts computes the transaction identifier from inputs and
// outputs alone. The signature is never part of this hash: the hash is
// what gets signed, and the ledger references transactions by it.
func TxHashFromParts(inputs []Input, outputs []Output) TransactionId {
	engine := sha256.New()
	if _, err := encoding.EncodeSlice(engine, inputs); err != nil {
		panic(fmt.Sprintf("unexpected error writing to hash engine: %s", err))
	}
	if _, err := encoding.EncodeSlice(engine, outputs); err != nil {
		panic(fmt.Sprintf("unexpected error writing to hash engine: %s", err))
	}
	var id TransactionId
	copy(id[:], engine.Sum(nil))
	return id
}

// AuthorizationKeys returns the full set of public keys that must have
// co-signed the transaction, concatenating every input's contribution.
// The order is deterministic but irrelevant to verification.
func (t *Transaction) AuthorizationKeys() []*btcec.PublicKey {
	var keys []*btcec.PublicKey
	for _, input := range t.Inputs {
		keys = append(keys, input.AuthorizationKeys()...)
	}
	return keys
}

// ValidateSignature verifies the transaction's aggregate signature over
// its commitment hash against the authorization keys of every input. Any
// failure yields the same InvalidSignatureError.
func (t *Transaction) ValidateSignature() error {
	if !musig.Verify(t.TxHash(), t.Signature, t.AuthorizationKeys()) {
		return InvalidSignatureError{}
	}
	return nil
}
