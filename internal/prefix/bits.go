// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"
	"strings"

	"github.com/icza/bitio"

	"github.com/dsnet/huffman/internal"
	"github.com/dsnet/huffman/internal/errors"
)

// Bits is an ordered sequence of bits packed into bytes, first bit in the
// most significant position of the first byte. Unused trailing bits of the
// last byte are zero.
//
// The zero value is an empty sequence. A Bits value is never modified after
// construction and may be shared freely between goroutines.
type Bits struct {
	buf []byte
	n   int
}

// MakeBits constructs a sequence of n bits from buf, which must be exactly
// long enough to hold n bits. The returned Bits takes ownership of buf.
func MakeBits(buf []byte, n int) (Bits, error) {
	if n < 0 || len(buf) != internal.NumBytes(n) {
		return Bits{}, errorf(errors.Invalid, "%d bytes cannot hold exactly %d bits", len(buf), n)
	}
	return Bits{buf: buf, n: n}, nil
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(s string) (Bits, error) {
	var w Writer
	for i, c := range s {
		switch c {
		case '0', '1':
			w.WriteBit(c == '1')
		default:
			return Bits{}, errorf(errors.Invalid, "invalid bit %q at offset %d", c, i)
		}
	}
	return w.Bits(), nil
}

// Len reports the number of bits.
func (b Bits) Len() int { return b.n }

// Bit reports the bit at index i.
func (b Bits) Bit(i int) bool { return b.buf[i/8]&(0x80>>uint(i%8)) != 0 }

// Bytes returns the packed representation. It must not be modified.
func (b Bits) Bytes() []byte { return b.buf }

// Append returns a copy of b extended by one bit.
func (b Bits) Append(v bool) Bits {
	var w Writer
	w.WriteBits(b)
	w.WriteBit(v)
	return w.Bits()
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte(byte('0' + btoi(b.Bit(i))))
	}
	return sb.String()
}

// Writer concatenates bits into a growing sequence.
// The zero value is ready for use. A Writer must not be copied.
type Writer struct {
	buf bytes.Buffer
	bw  *bitio.Writer
	n   int
}

// Writes to a bytes.Buffer never fail, so the TryWrite methods of the
// bitio.Writer are used without checking TryError.
func (w *Writer) init() {
	if w.bw == nil {
		w.bw = bitio.NewWriter(&w.buf)
	}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(v bool) {
	w.init()
	w.bw.TryWriteBool(v)
	w.n++
}

// WriteBits appends all bits of b.
func (w *Writer) WriteBits(b Bits) {
	w.init()
	full := b.n / 8
	w.bw.TryWrite(b.buf[:full])
	if r := b.n % 8; r > 0 {
		w.bw.TryWriteBits(uint64(b.buf[full]>>(8-r)), uint8(r))
	}
	w.n += b.n
}

// Len reports the number of bits written so far.
func (w *Writer) Len() int { return w.n }

// Bits returns a copy of the bits written so far.
// Writing may continue afterwards.
func (w *Writer) Bits() Bits {
	w.init()
	w.bw.TryAlign() // Flush the partial byte padded with zeros
	buf := bytes.Clone(w.buf.Bytes())
	if r := w.n % 8; r > 0 {
		// Take the partial byte back so that the next bit lands next to it.
		last := buf[len(buf)-1]
		w.buf.Truncate(w.buf.Len() - 1)
		w.bw = bitio.NewWriter(&w.buf)
		w.bw.TryWriteBits(uint64(last>>(8-r)), uint8(r))
	}
	return Bits{buf: buf, n: w.n}
}

// Reset discards all written bits while retaining the underlying storage.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.bw = bitio.NewWriter(&w.buf)
	w.n = 0
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
