// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements Huffman tree construction, code table derivation,
// and trie based decoding of prefix-free codes over arbitrary ordered tokens.
package prefix

import (
	"cmp"
	"fmt"
	"runtime"

	"github.com/dsnet/huffman/internal/errors"
)

// Token is the constraint on symbols that can be prefix encoded.
// Ordering is only used to fix the insertion sequence of leaves so that
// building a tree is deterministic.
type Token interface {
	cmp.Ordered
}

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

// FormatToken formats tokens so that characters and strings are readable.
func FormatToken(v interface{}) string {
	switch v := v.(type) {
	case rune, byte, string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

// errRecover converts a panicked error into a returned error.
// Runtime errors and non-error values continue to panic.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
