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

	"github.com/btcsuite/btcd/btcec/v2"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// BlindedMessageSize is the size of a blinded message's canonical
// compressed encoding, a BLS12-381 G1 point.
const BlindedMessageSize = bls12381.SizeOfG1AffineCompressed

// BlindedMessage is the blinded payload of a coin issuance request. The
// mint signs it without learning the underlying nonce. Validation treats
// it as opaque; only its fixed-size canonical encoding matters.
type BlindedMessage struct {
	point bls12381.G1Affine
}

// NewBlindedMessage wraps a G1 point as a blinded message.
func NewBlindedMessage(point bls12381.G1Affine) BlindedMessage {
	return BlindedMessage{point: point}
}

// Point returns the underlying G1 point.
func (m BlindedMessage) Point() bls12381.G1Affine {
	return m.point
}

func (m BlindedMessage) ConsensusEncode(w io.Writer) (int, error) {
	compressed := m.point.Bytes()
	return w.Write(compressed[:])
}

func (m *BlindedMessage) ConsensusDecode(r io.Reader) error {
	var compressed [BlindedMessageSize]byte
	if _, err := io.ReadFull(r, compressed[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	if _, err := m.point.SetBytes(compressed[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	return nil
}

// BlindSignature is the mint's blind signature over a blinded message,
// the same fixed-size G1 form as the message itself.
type BlindSignature struct {
	point bls12381.G1Affine
}

// NewBlindSignature wraps a G1 point as a blind signature.
func NewBlindSignature(point bls12381.G1Affine) BlindSignature {
	return BlindSignature{point: point}
}

// Point returns the underlying G1 point.
func (s BlindSignature) Point() bls12381.G1Affine {
	return s.point
}

func (s BlindSignature) ConsensusEncode(w io.Writer) (int, error) {
	compressed := s.point.Bytes()
	return w.Write(compressed[:])
}

func (s *BlindSignature) ConsensusDecode(r io.Reader) error {
	var compressed [BlindedMessageSize]byte
	if _, err := io.ReadFull(r, compressed[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	if _, err := s.point.SetBytes(compressed[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	return nil
}

// BlindToken is an unsigned, blinded request for a new coin awaiting the
// mint's blind signature.
type BlindToken struct {
	Message BlindedMessage
}

func (t BlindToken) ConsensusEncode(w io.Writer) (int, error) {
	return t.Message.ConsensusEncode(w)
}

func (t *BlindToken) ConsensusDecode(r io.Reader) error {
	return t.Message.ConsensusDecode(r)
}

// Nonce is a coin's spend-authorization key. Spending the coin requires
// a signature under this key.
type Nonce struct {
	Key *btcec.PublicKey
}

func (n Nonce) ConsensusEncode(w io.Writer) (int, error) {
	return encoding.WritePublicKey(w, n.Key)
}

func (n *Nonce) ConsensusDecode(r io.Reader) error {
	key, err := encoding.ReadPublicKey(r)
	if err != nil {
		return err
	}
	n.Key = key
	return nil
}

// Coin is a single issued e-cash note: a spend-authorization nonce plus
// the mint's blind signature over it.
type Coin struct {
	Nonce     Nonce
	Signature BlindSignature
}

// SpendKey returns the key that must co-sign any transaction spending
// this coin.
func (c Coin) SpendKey() *btcec.PublicKey {
	return c.Nonce.Key
}

func (c Coin) ConsensusEncode(w io.Writer) (int, error) {
	written, err := c.Nonce.ConsensusEncode(w)
	if err != nil {
		return written, err
	}
	n, err := c.Signature.ConsensusEncode(w)
	return written + n, err
}

func (c *Coin) ConsensusDecode(r io.Reader) error {
	if err := c.Nonce.ConsensusDecode(r); err != nil {
		return err
	}
	return c.Signature.ConsensusDecode(r)
}
