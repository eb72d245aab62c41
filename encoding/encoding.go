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
	"bytes"
	"encoding/binary"
	"io"
)

// MaxSequenceLength bounds the element count accepted when decoding a
// length-prefixed sequence, so a corrupt count prefix cannot trigger an
// absurd allocation before the input runs out.
const MaxSequenceLength = 1 << 20

// Encodable is implemented by every value with a canonical consensus
// encoding. ConsensusEncode writes the encoding to w and returns the
// number of bytes written. The only errors returned are errors propagated
// from the writer.
type Encodable interface {
	ConsensusEncode(w io.Writer) (int, error)
}

// Decodable is implemented by every value that can be reconstructed from
// its canonical consensus encoding. ConsensusDecode fails with a
// *DecodeError on malformed or truncated input.
type Decodable interface {
	ConsensusDecode(r io.Reader) error
}

// Encode renders a value's canonical consensus encoding as a byte slice.
func Encode(v Encodable) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := v.ConsensusEncode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a value from its canonical consensus encoding,
// rejecting trailing garbage after the value.
func Decode(data []byte, v Decodable) error {
	r := bytes.NewReader(data)
	if err := v.ConsensusDecode(r); err != nil {
		return err
	}
	if r.Len() > 0 {
		return NewDecodeError("%d trailing bytes after value", r.Len())
	}
	return nil
}

// WriteUint64 writes v as 8 little-endian bytes.
func WriteUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

// ReadUint64 reads 8 little-endian bytes.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, WrapDecodeError(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteUint32 writes v as 4 little-endian bytes.
func WriteUint32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.Write(buf[:])
}

// ReadUint32 reads 4 little-endian bytes.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, WrapDecodeError(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteByte writes a single byte, used for sum type discriminants.
func WriteByte(w io.Writer, b byte) (int, error) {
	return w.Write([]byte{b})
}

// ReadByte reads a single byte.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, WrapDecodeError(err)
	}
	return buf[0], nil
}

// DecodablePtr constrains PT to be a pointer to T implementing Decodable,
// allowing DecodeSlice to decode elements in place.
type DecodablePtr[T any] interface {
	*T
	Decodable
}

// EncodeSlice writes a uint64 element count followed by each element's
// encoding in order.
func EncodeSlice[T Encodable](w io.Writer, items []T) (int, error) {
	written, err := WriteUint64(w, uint64(len(items)))
	if err != nil {
		return written, err
	}
	for _, item := range items {
		n, err := item.ConsensusEncode(w)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// DecodeSlice reads a uint64 element count followed by that many element
// encodings. A count beyond MaxSequenceLength or input running out before
// the announced count is satisfied fails with a *DecodeError.
func DecodeSlice[T any, PT DecodablePtr[T]](r io.Reader) ([]T, error) {
	count, err := ReadUint64(r)
	if err != nil {
		return nil, err
	}
	if count > MaxSequenceLength {
		return nil, NewDecodeError(
			"sequence length %d exceeds maximum of %d",
			count,
			MaxSequenceLength,
		)
	}
	items := make([]T, count)
	for i := range items {
		if err := PT(&items[i]).ConsensusDecode(r); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// countingWriter tracks bytes written through it, used when delegating to
// encoders that do not report a length themselves.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
