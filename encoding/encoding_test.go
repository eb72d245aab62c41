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
	"io"
	"reflect"
	"testing"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// testValue is a minimal Encodable/Decodable used to exercise the
// sequence helpers.
type testValue uint64

func (v testValue) ConsensusEncode(w io.Writer) (int, error) {
	return encoding.WriteUint64(w, uint64(v))
}

func (v *testValue) ConsensusDecode(r io.Reader) error {
	raw, err := encoding.ReadUint64(r)
	if err != nil {
		return err
	}
	*v = testValue(raw)
	return nil
}

func TestUint64LittleEndian(t *testing.T) {
	var buf bytes.Buffer
	n, err := encoding.WriteUint64(&buf, 0x0102030405060708)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes written, got %d", n)
	}
	expected := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("expected %x, got %x", expected, buf.Bytes())
	}
	decoded, err := encoding.ReadUint64(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != 0x0102030405060708 {
		t.Fatalf("expected 0x0102030405060708, got 0x%x", decoded)
	}
}

func TestUint32LittleEndian(t *testing.T) {
	var buf bytes.Buffer
	if _, err := encoding.WriteUint32(&buf, 0xdeadbeef); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []byte{0xef, 0xbe, 0xad, 0xde}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("expected %x, got %x", expected, buf.Bytes())
	}
}

func TestReadUint64Truncated(t *testing.T) {
	_, err := encoding.ReadUint64(bytes.NewReader([]byte{0x01, 0x02}))
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestSliceRoundTrip(t *testing.T) {
	items := []testValue{1, 2, 0xffffffffffffffff}
	var buf bytes.Buffer
	n, err := encoding.EncodeSlice(&buf, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8+3*8 {
		t.Fatalf("expected %d bytes written, got %d", 8+3*8, n)
	}
	// Count prefix comes first, little-endian
	if !bytes.Equal(buf.Bytes()[0:8], []byte{0x03, 0, 0, 0, 0, 0, 0, 0}) {
		t.Fatalf("unexpected count prefix: %x", buf.Bytes()[0:8])
	}
	decoded, err := encoding.DecodeSlice[testValue](bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(items, decoded) {
		t.Fatalf("expected %v, got %v", items, decoded)
	}
}

func TestDecodeSliceTruncated(t *testing.T) {
	// Count prefix announces 2 elements but only 1 follows
	var buf bytes.Buffer
	if _, err := encoding.WriteUint64(&buf, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := encoding.WriteUint64(&buf, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := encoding.DecodeSlice[testValue](bytes.NewReader(buf.Bytes()))
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestDecodeSliceCountBound(t *testing.T) {
	var buf bytes.Buffer
	if _, err := encoding.WriteUint64(&buf, encoding.MaxSequenceLength+1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := encoding.DecodeSlice[testValue](bytes.NewReader(buf.Bytes()))
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	var buf bytes.Buffer
	if _, err := encoding.WriteUint64(&buf, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf.WriteByte(0x00)
	var v testValue
	err := encoding.Decode(buf.Bytes(), &v)
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestEncodeDeterminism(t *testing.T) {
	items := []testValue{5, 6, 7}
	first, err := encoding.Encode(encodableSlice(items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := encoding.Encode(encodableSlice(items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("encoding not deterministic: %x vs %x", first, second)
	}
}

// encodableSlice adapts a slice to the Encodable interface for tests.
type encodableSlice []testValue

func (s encodableSlice) ConsensusEncode(w io.Writer) (int, error) {
	return encoding.EncodeSlice(w, s)
}

func TestDecodeErrorMessage(t *testing.T) {
	err := encoding.NewDecodeError("unknown variant 0x%02x", 0x7f)
	if err.Error() != "unknown variant 0x7f" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	wrapped := encoding.WrapDecodeError(io.ErrUnexpectedEOF)
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped cause to unwrap")
	}
	// Wrapping a DecodeError must not nest another layer
	if encoding.WrapDecodeError(wrapped) != wrapped {
		t.Fatalf("expected identical error when wrapping a DecodeError")
	}
}
