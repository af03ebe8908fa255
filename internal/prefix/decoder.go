// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"
	"math"

	"github.com/icza/bitio"

	"github.com/dsnet/huffman/internal/errors"
)

// node is a trie node. The root is always at index 0 and is never a child,
// so a zero child index means the child does not exist.
type node struct {
	next [2]int32 // Indexes of the 0 and 1 children
	sym  int32    // Index into Decoder.syms for leaves, otherwise -1
}

// Decoder maps bit sequences back to tokens using a binary trie rebuilt from
// a code table. It is safe for concurrent use once constructed.
type Decoder[T Token] struct {
	nodes []node
	syms  []T
}

// NewDecoder builds the trie for the given code table. It fails if the table
// is empty, if any code is empty, or if the codes are not prefix-free.
func NewDecoder[T Token](codes map[T]Bits) (*Decoder[T], error) {
	if len(codes) == 0 {
		return nil, errorf(errors.InvalidCode, "code table is empty")
	}

	d := &Decoder[T]{nodes: []node{{sym: -1}}}
	for _, tok := range sortedTokens(codes) {
		c := codes[tok]
		if c.Len() == 0 {
			return nil, errorf(errors.InvalidCode, "token %s has an empty code", FormatToken(tok))
		}
		if len(d.nodes)+c.Len() > math.MaxInt32 {
			return nil, errorf(errors.InvalidCode, "code table is too large")
		}

		var cur int32
		for i := 0; i < c.Len(); i++ {
			if d.nodes[cur].sym >= 0 {
				prev := d.syms[d.nodes[cur].sym]
				return nil, errorf(errors.InvalidCode, "code %v for token %s is prefixed by the code for token %s",
					c, FormatToken(tok), FormatToken(prev))
			}
			b := btoi(c.Bit(i))
			if d.nodes[cur].next[b] == 0 {
				d.nodes = append(d.nodes, node{sym: -1})
				d.nodes[cur].next[b] = int32(len(d.nodes) - 1)
			}
			cur = d.nodes[cur].next[b]
		}
		if n := d.nodes[cur]; n.sym >= 0 || n.next != [2]int32{} {
			return nil, errorf(errors.InvalidCode, "code %v for token %s is not prefix-free", c, FormatToken(tok))
		}
		d.nodes[cur].sym = int32(len(d.syms))
		d.syms = append(d.syms, tok)
	}
	return d, nil
}

// Decode appends the tokens encoded by b to dst.
//
// Bits are consumed left to right. Whenever the accumulated bits equal a
// code, its token is emitted and accumulation restarts. If the accumulated
// bits cannot be extended into any code, an InvalidCode error is returned.
// If b ends in the middle of a code, a Truncated error is returned.
func (d *Decoder[T]) Decode(dst []T, b Bits) (_ []T, err error) {
	defer errRecover(&err)

	br := bitio.NewReader(bytes.NewReader(b.Bytes()))
	var cur int32
	var start int // Offset of the first bit of the current code
	for i, n := 0, b.Len(); i < n; i++ {
		cur = d.nodes[cur].next[btoi(br.TryReadBool())]
		if cur == 0 {
			panic(errorf(errors.InvalidCode, "bits %d..%d match no code", start, i))
		}
		if sym := d.nodes[cur].sym; sym >= 0 {
			dst = append(dst, d.syms[sym])
			cur, start = 0, i+1
		}
	}
	if br.TryError != nil {
		return nil, errorf(errors.Internal, "%v", br.TryError)
	}
	if cur != 0 {
		panic(errorf(errors.Truncated, "last %d bits do not complete a code", b.Len()-start))
	}
	return dst, nil
}
