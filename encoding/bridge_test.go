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

package encoding_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/toyota-corolla0/fedimint/encoding"
)

func testBlockHeader() encoding.BlockHeader {
	return encoding.BlockHeader{
		BlockHeader: wire.BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{0x01},
			MerkleRoot: chainhash.Hash{0x02},
			Timestamp:  time.Unix(1231006505, 0),
			Bits:       0x1d00ffff,
			Nonce:      2083236893,
		},
	}
}

func testBitcoinTx() encoding.BitcoinTx {
	var tx encoding.BitcoinTx
	tx.Version = wire.TxVersion
	tx.AddTxIn(wire.NewTxIn(
		wire.NewOutPoint(&chainhash.Hash{0x0a}, 3),
		[]byte{0x51},
		nil,
	))
	tx.AddTxOut(wire.NewTxOut(150000, []byte{0x76, 0xa9, 0x14}))
	return tx
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	header := testBlockHeader()
	data, err := encoding.Encode(&header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Bitcoin block headers are always 80 bytes
	if len(data) != 80 {
		t.Fatalf("expected 80 byte header encoding, got %d", len(data))
	}
	var decoded encoding.BlockHeader
	if err := encoding.Decode(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(header, decoded) {
		t.Fatalf("round trip mismatch: %+v vs %+v", header, decoded)
	}
}

func TestBitcoinTxRoundTrip(t *testing.T) {
	tx := testBitcoinTx()
	data, err := encoding.Encode(&tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded encoding.BitcoinTx
	if err := encoding.Decode(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TxHash() != decoded.TxHash() {
		t.Fatalf(
			"round trip changed tx hash: %s vs %s",
			tx.TxHash(),
			decoded.TxHash(),
		)
	}
}

func TestBitcoinTxDecodeMalformed(t *testing.T) {
	var decoded encoding.BitcoinTx
	err := encoding.Decode([]byte{0x01, 0x02, 0x03}, &decoded)
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestScriptRoundTrip(t *testing.T) {
	script := encoding.Script{0x76, 0xa9, 0x14, 0x00, 0x11, 0x22}
	data, err := encoding.Encode(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Compact-size length prefix followed by the raw script
	expected := append([]byte{byte(len(script))}, script...)
	if !bytes.Equal(data, expected) {
		t.Fatalf("expected %x, got %x", expected, data)
	}
	var decoded encoding.Script
	if err := encoding.Decode(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(script, decoded) {
		t.Fatalf("round trip mismatch: %x vs %x", script, decoded)
	}
}

func TestMerkleProofRoundTrip(t *testing.T) {
	header := testBlockHeader()
	tx := testBitcoinTx()
	txHash := tx.TxHash()
	proof := encoding.MerkleProof{
		MsgMerkleBlock: wire.MsgMerkleBlock{
			Header:       header.BlockHeader,
			Transactions: 1,
			Hashes:       []*chainhash.Hash{&txHash},
			Flags:        []byte{0x01},
		},
	}
	data, err := encoding.Encode(&proof)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded encoding.MerkleProof
	if err := encoding.Decode(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(proof, decoded) {
		t.Fatalf("round trip mismatch: %+v vs %+v", proof, decoded)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	n, err := encoding.WritePublicKey(&buf, privKey.PubKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != btcec.PubKeyBytesLenCompressed {
		t.Fatalf("expected %d bytes, got %d", btcec.PubKeyBytesLenCompressed, n)
	}
	decoded, err := encoding.ReadPublicKey(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !privKey.PubKey().IsEqual(decoded) {
		t.Fatalf("round trip changed public key")
	}
}

func TestReadPublicKeyInvalid(t *testing.T) {
	raw := make([]byte, btcec.PubKeyBytesLenCompressed)
	raw[0] = 0x05 // not a valid compressed key prefix
	_, err := encoding.ReadPublicKey(bytes.NewReader(raw))
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}
