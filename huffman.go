// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a line oriented Huffman codec over caller
// defined tokens.
//
// A corpus of lines is compressed by counting token frequencies across the
// whole corpus, building one optimal prefix-free code from those counts, and
// encoding every line separately as the concatenation of its token codes.
// The resulting Payload carries the code table, so it can be decoded without
// the original frequencies.
//
// How lines are split into tokens and how tokens are joined back into lines
// is supplied by the caller, see FreqFunc, TokenFunc, and JoinFunc. Character,
// word, and byte based strategies are provided.
package huffman

import (
	"iter"

	"github.com/dsnet/huffman/internal/prefix"
)

// DefaultParallelLines is the number of lines at which encoding and decoding
// start to spread lines across multiple goroutines.
const DefaultParallelLines = 64

// Token is the constraint on token types.
type Token = prefix.Token

// Bits is an immutable sequence of bits.
type Bits = prefix.Bits

// FreqFunc counts how often every token occurs in a corpus.
// It must be deterministic for the resulting codes to be reproducible.
type FreqFunc[T Token] func(lines []string) map[T]uint64

// TokenFunc splits a line into a finite sequence of tokens.
// The returned sequence may be iterated more than once.
type TokenFunc[T Token] func(line string) iter.Seq[T]

// JoinFunc joins tokens back into a line. It must invert the TokenFunc it is
// paired with, such that joining the tokens of any line gives back that line.
// The tokens slice belongs to the callee and may be retained.
type JoinFunc[T Token] func(tokens []T) string

// Config configures how lines are processed.
// The zero value (or a nil *Config) selects the defaults.
type Config struct {
	// Workers is the maximum number of goroutines used to encode or decode
	// lines. If zero, runtime.GOMAXPROCS(0) is used.
	Workers int

	// ParallelLines is the minimum number of lines before work is spread
	// across goroutines. If zero, DefaultParallelLines is used.
	ParallelLines int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// CodeTable maps every token to its code.
type CodeTable[T Token] map[T]Bits

// BuildCodeTable builds the Huffman tree for freqs and derives the code of
// every token. A table with a single token yields a 1-bit code.
func BuildCodeTable[T Token](freqs map[T]uint64) (CodeTable[T], error) {
	tree, err := prefix.BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	return CodeTable[T](prefix.DeriveCodes(tree)), nil
}

// ExpectedLength reports the average number of bits per token when coding
// tokens occurring with the given frequencies.
func (ct CodeTable[T]) ExpectedLength(freqs map[T]uint64) float64 {
	return prefix.ExpectedLength[T](ct, freqs)
}

// String formats the table one token per line, shortest codes first.
func (ct CodeTable[T]) String() string {
	return prefix.FormatCodes[T](ct, nil)
}
