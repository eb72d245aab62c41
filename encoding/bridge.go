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

package encoding

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// The types below wrap Bitcoin primitives so they can be carried inside
// federation values while keeping the exact byte format the Bitcoin
// network itself uses. Encoding and decoding delegate to btcd's own
// consensus serialization rather than reimplementing it.

// BlockHeader wraps a Bitcoin block header.
type BlockHeader struct {
	wire.BlockHeader
}

func (h *BlockHeader) ConsensusEncode(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	if err := h.Serialize(cw); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (h *BlockHeader) ConsensusDecode(r io.Reader) error {
	if err := h.Deserialize(r); err != nil {
		return WrapDecodeError(err)
	}
	return nil
}

// BitcoinTx wraps a raw Bitcoin transaction.
type BitcoinTx struct {
	wire.MsgTx
}

func (t *BitcoinTx) ConsensusEncode(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	if err := t.Serialize(cw); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (t *BitcoinTx) ConsensusDecode(r io.Reader) error {
	if err := t.Deserialize(r); err != nil {
		return WrapDecodeError(err)
	}
	return nil
}

// Script is a Bitcoin output script, encoded in the Bitcoin consensus
// form of a compact-size length followed by the raw script bytes.
type Script []byte

func (s Script) ConsensusEncode(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	if err := wire.WriteVarBytes(cw, wire.ProtocolVersion, s); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (s *Script) ConsensusDecode(r io.Reader) error {
	script, err := wire.ReadVarBytes(
		r,
		wire.ProtocolVersion,
		txscript.MaxScriptSize,
		"script",
	)
	if err != nil {
		return WrapDecodeError(err)
	}
	*s = script
	return nil
}

// MerkleProof wraps a Bitcoin merkleblock message: a block header plus
// the partial merkle tree committing a transaction into that block.
type MerkleProof struct {
	wire.MsgMerkleBlock
}

func (p *MerkleProof) ConsensusEncode(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	if err := p.BtcEncode(cw, wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (p *MerkleProof) ConsensusDecode(r io.Reader) error {
	if err := p.BtcDecode(r, wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return WrapDecodeError(err)
	}
	return nil
}

// WritePublicKey writes a secp256k1 public key in its 33-byte compressed
// form.
func WritePublicKey(w io.Writer, key *btcec.PublicKey) (int, error) {
	return w.Write(key.SerializeCompressed())
}

// ReadPublicKey reads a 33-byte compressed secp256k1 public key,
// rejecting encodings that are not a valid curve point.
func ReadPublicKey(r io.Reader) (*btcec.PublicKey, error) {
	var compressed [btcec.PubKeyBytesLenCompressed]byte
	if _, err := io.ReadFull(r, compressed[:]); err != nil {
		return nil, WrapDecodeError(err)
	}
	key, err := btcec.ParsePubKey(compressed[:])
	if err != nil {
		return nil, WrapDecodeError(err)
	}
	return key, nil
}
