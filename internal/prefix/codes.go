// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"maps"
	"slices"
)

// DeriveCodes walks the tree and returns the code of every leaf, where the
// code is the path from the root with left as 0 and right as 1.
//
// A tree that is a single leaf has no path, so its token is assigned the
// 1-bit code 0. Repeated zero-length codes could not be told apart.
func DeriveCodes[T Token](root *Tree[T]) map[T]Bits {
	if root == nil {
		return map[T]Bits{}
	}
	codes := make(map[T]Bits, root.NumLeaves())
	if root.IsLeaf() {
		codes[root.Token] = Bits{}.Append(false)
		return codes
	}

	// Skewed frequencies produce trees as deep as the number of tokens,
	// so walk with an explicit stack.
	type entry struct {
		node *Tree[T]
		path Bits
	}
	stack := []entry{{root, Bits{}}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.node.IsLeaf() {
			codes[e.node.Token] = e.path
			continue
		}
		stack = append(stack,
			entry{e.node.Left, e.path.Append(false)},
			entry{e.node.Right, e.path.Append(true)},
		)
	}
	return codes
}

// ExpectedLength computes the average code length in bits weighted by
// frequency. It returns 0 if the total frequency is 0.
func ExpectedLength[T Token](codes map[T]Bits, freqs map[T]uint64) float64 {
	var sum, total float64
	for tok, f := range freqs {
		sum += float64(f) * float64(codes[tok].Len())
		total += float64(f)
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// sortedTokens returns the tokens of codes ordered by code length, then token.
func sortedTokens[T Token](codes map[T]Bits) []T {
	toks := slices.Sorted(maps.Keys(codes))
	slices.SortStableFunc(toks, func(a, b T) int {
		return codes[a].Len() - codes[b].Len()
	})
	return toks
}
