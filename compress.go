// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Encode builds a code table from the frequencies of the whole corpus and
// encodes every line with it. Line i of the payload encodes lines[i].
//
// It fails with ErrEmptyInput if freqs reports no tokens, and with
// ErrMissingCode if split produces a token that freqs did not count.
func Encode[T Token](lines []string, freqs FreqFunc[T], split TokenFunc[T], conf *Config) (*Payload[T], error) {
	if freqs == nil || split == nil {
		return nil, errorf(errors.Invalid, "nil frequency strategy or tokenizer")
	}
	codes, err := BuildCodeTable(freqs(lines))
	if err != nil {
		return nil, err
	}

	out := make([]Bits, len(lines))
	err = forEachLine(conf, len(lines), func() func(int) error {
		var w prefix.Writer
		return func(i int) error {
			w.Reset()
			for tok := range split(lines[i]) {
				c, ok := codes[tok]
				if !ok {
					return errorf(errors.MissingCode, "line %d: token %s", i, prefix.FormatToken(tok))
				}
				w.WriteBits(c)
			}
			out[i] = w.Bits()
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return &Payload[T]{Codes: codes, Lines: out}, nil
}

// Compress encodes lines as in Encode and serializes the payload.
func Compress[T Token](lines []string, freqs FreqFunc[T], split TokenFunc[T], conf *Config) ([]byte, error) {
	p, err := Encode(lines, freqs, split, conf)
	if err != nil {
		return nil, err
	}
	return p.MarshalBinary()
}
