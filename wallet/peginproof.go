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

package wallet

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// TxOutProof commits a Bitcoin transaction into a block: the block
// header plus the partial merkle tree covering the transaction.
type TxOutProof struct {
	encoding.MerkleProof
}

// BlockHash returns the hash of the block the proof commits to.
func (p *TxOutProof) BlockHash() chainhash.Hash {
	return p.Header.BlockHash()
}

// ContainsTx reports whether the proof's partial merkle tree mentions
// the given transaction.
func (p *TxOutProof) ContainsTx(txid chainhash.Hash) bool {
	for _, hash := range p.Hashes {
		if hash != nil && *hash == txid {
			return true
		}
	}
	return false
}

// PegInProof ties a Bitcoin transaction output locked to the
// federation's contract to the key allowed to claim it. The locked
// amount becomes the funding value of a peg-in transaction input, and
// the tweaked contract key must co-sign that transaction.
type PegInProof struct {
	TxOutProof       TxOutProof
	Transaction      encoding.BitcoinTx
	OutputIdx        uint32
	TweakContractKey *btcec.PublicKey
}

// TxOutput returns the locked transaction output the proof refers to.
func (p *PegInProof) TxOutput() *wire.TxOut {
	return p.Transaction.TxOut[p.OutputIdx]
}

func (p *PegInProof) ConsensusEncode(w io.Writer) (int, error) {
	written, err := p.TxOutProof.ConsensusEncode(w)
	if err != nil {
		return written, err
	}
	n, err := p.Transaction.ConsensusEncode(w)
	written += n
	if err != nil {
		return written, err
	}
	n, err = encoding.WriteUint32(w, p.OutputIdx)
	written += n
	if err != nil {
		return written, err
	}
	n, err = encoding.WritePublicKey(w, p.TweakContractKey)
	return written + n, err
}

func (p *PegInProof) ConsensusDecode(r io.Reader) error {
	if err := p.TxOutProof.ConsensusDecode(r); err != nil {
		return err
	}
	if err := p.Transaction.ConsensusDecode(r); err != nil {
		return err
	}
	outputIdx, err := encoding.ReadUint32(r)
	if err != nil {
		return err
	}
	if int(outputIdx) >= len(p.Transaction.TxOut) {
		return encoding.NewDecodeError(
			"output index %d out of range for transaction with %d outputs",
			outputIdx,
			len(p.Transaction.TxOut),
		)
	}
	if value := p.Transaction.TxOut[outputIdx].Value; value < 0 || value > btcutil.MaxSatoshi {
		return encoding.NewDecodeError(
			"locked output value %d outside the valid satoshi range",
			value,
		)
	}
	p.OutputIdx = outputIdx
	key, err := encoding.ReadPublicKey(r)
	if err != nil {
		return err
	}
	p.TweakContractKey = key
	return nil
}
