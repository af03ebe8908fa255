// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Frequencies returns a FreqFunc that counts the tokens split produces for
// every line. Deriving the counts from the tokenizer guarantees that every
// token produced when encoding has a code.
func Frequencies[T Token](split TokenFunc[T]) FreqFunc[T] {
	return func(lines []string) map[T]uint64 {
		m := make(map[T]uint64)
		for _, line := range lines {
			for tok := range split(line) {
				m[tok]++
			}
		}
		return m
	}
}

// Chars splits a line into its runes. The line must be valid UTF-8, since
// invalid bytes cannot be recovered from utf8.RuneError.
func Chars(line string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range line {
			if !yield(r) {
				return
			}
		}
	}
}

// JoinChars inverts Chars.
func JoinChars(toks []rune) string { return string(toks) }

// CharFreqs counts runes across all lines.
func CharFreqs(lines []string) map[rune]uint64 { return Frequencies[rune](Chars)(lines) }

// Words splits a line into alternating runs of white space and other
// characters. Keeping the white space runs as tokens makes the split lossless.
func Words(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(line) > 0 {
			r, _ := utf8.DecodeRuneInString(line)
			space := unicode.IsSpace(r)
			n := strings.IndexFunc(line, func(r rune) bool { return unicode.IsSpace(r) != space })
			if n < 0 {
				n = len(line)
			}
			if !yield(line[:n]) {
				return
			}
			line = line[n:]
		}
	}
}

// JoinWords inverts Words.
func JoinWords(toks []string) string { return strings.Join(toks, "") }

// WordFreqs counts the tokens of Words across all lines.
func WordFreqs(lines []string) map[string]uint64 { return Frequencies[string](Words)(lines) }

// Bytes splits a line into its bytes. Unlike Chars it accepts any input.
func Bytes(line string) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < len(line); i++ {
			if !yield(line[i]) {
				return
			}
		}
	}
}

// JoinBytes inverts Bytes.
func JoinBytes(toks []byte) string { return string(toks) }

// ByteFreqs counts bytes across all lines.
func ByteFreqs(lines []string) map[byte]uint64 { return Frequencies[byte](Bytes)(lines) }
