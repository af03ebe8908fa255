// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dsnet/huffman/internal"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Payload is the compressed form of a corpus.
// Lines[i] holds the concatenated token codes of the i-th input line.
type Payload[T Token] struct {
	Codes CodeTable[T]
	Lines []Bits
}

// The serialized payload is a MessagePack map:
//
//	{"code_table": {token: [nbits, bytes], ...}, "lines": [[nbits, bytes], ...]}
//
// Tokens are written in ascending order so that equal payloads always
// serialize to equal bytes.
type wireBits struct {
	_msgpack struct{} `msgpack:",as_array"`
	Len      int      `msgpack:"len"`
	Data     []byte   `msgpack:"data"`
}

type wirePayload[T Token] struct {
	CodeTable map[T]wireBits `msgpack:"code_table"`
	Lines     []wireBits     `msgpack:"lines"`
}

func toWire(b Bits) wireBits { return wireBits{Len: b.Len(), Data: b.Bytes()} }

func fromWire(w wireBits) (Bits, error) {
	b, err := prefix.MakeBits(w.Data, w.Len)
	if err != nil {
		return Bits{}, err
	}
	// Bits past the end must be clear so that a payload has exactly one
	// serialized form.
	if !padClear(w.Data, w.Len) {
		return Bits{}, errorf(errors.Invalid, "non-zero padding after %d bits", w.Len)
	}
	return b, nil
}

// padClear reports whether every bit after the first n bits of buf is zero.
func padClear(buf []byte, n int) bool {
	b, err := prefix.MakeBits(buf, internal.NumBytes(n)*8)
	if err != nil {
		return false
	}
	for i := n; i < b.Len(); i++ {
		if b.Bit(i) {
			return false
		}
	}
	return true
}

// MarshalBinary serializes the payload as MessagePack.
func (p *Payload[T]) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := p.encodeMsgpack(enc); err != nil {
		return nil, errWrap(errors.Serialization, err, "cannot encode payload")
	}
	return buf.Bytes(), nil
}

func (p *Payload[T]) encodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString("code_table"); err != nil {
		return err
	}
	if err := enc.EncodeMapLen(len(p.Codes)); err != nil {
		return err
	}
	for _, tok := range slices.Sorted(maps.Keys(p.Codes)) {
		if err := enc.Encode(tok); err != nil {
			return err
		}
		if err := enc.Encode(toWire(p.Codes[tok])); err != nil {
			return err
		}
	}
	if err := enc.EncodeString("lines"); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(p.Lines)); err != nil {
		return err
	}
	for _, b := range p.Lines {
		if err := enc.Encode(toWire(b)); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalBinary parses a payload produced by MarshalBinary.
// Every bit sequence is checked to be stored in exactly as many bytes as its
// length requires. The code table itself is validated when decoding.
func (p *Payload[T]) UnmarshalBinary(data []byte) error {
	var w wirePayload[T]
	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
		return errWrap(errors.Serialization, err, "cannot parse payload")
	}
	if r.Len() > 0 {
		return errorf(errors.Serialization, "%d trailing bytes after payload", r.Len())
	}
	if len(w.CodeTable) == 0 {
		return errorf(errors.Serialization, "payload has no code table")
	}

	codes := make(CodeTable[T], len(w.CodeTable))
	for _, tok := range slices.Sorted(maps.Keys(w.CodeTable)) {
		b, err := fromWire(w.CodeTable[tok])
		if err != nil {
			return errWrap(errors.Serialization, err, "code of token %s", prefix.FormatToken(tok))
		}
		codes[tok] = b
	}
	lines := make([]Bits, len(w.Lines))
	for i, wb := range w.Lines {
		b, err := fromWire(wb)
		if err != nil {
			return errWrap(errors.Serialization, err, "line %d", i)
		}
		lines[i] = b
	}
	p.Codes, p.Lines = codes, lines
	return nil
}

// UnmarshalPayload parses a serialized payload.
func UnmarshalPayload[T Token](data []byte) (*Payload[T], error) {
	p := new(Payload[T])
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}
