// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Decode reverses Encode. The code table is turned into a decoding trie once,
// then every line is decoded and passed to join.
//
// It fails with ErrInvalidCode if the code table is not a usable prefix code
// or a line contains bits that match no code, and with ErrTruncatedCode if a
// line ends in the middle of a code.
func (p *Payload[T]) Decode(join JoinFunc[T], conf *Config) ([]string, error) {
	if join == nil {
		return nil, errorf(errors.Invalid, "nil inverse tokenizer")
	}
	d, err := prefix.NewDecoder[T](p.Codes)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(p.Lines))
	err = forEachLine(conf, len(p.Lines), func() func(int) error {
		return func(i int) error {
			// Each line gets its own slice since join may keep it.
			toks, err := d.Decode(nil, p.Lines[i])
			if err != nil {
				return lineError(i, err)
			}
			out[i] = join(toks)
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decompress parses a serialized payload and decodes it as in Decode.
func Decompress[T Token](data []byte, join JoinFunc[T], conf *Config) ([]string, error) {
	p, err := UnmarshalPayload[T](data)
	if err != nil {
		return nil, err
	}
	return p.Decode(join, conf)
}
