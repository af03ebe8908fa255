// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of common helpers shared by the
// Huffman codec packages.
package internal

import "runtime"

// DivCeil divides n by m and rounds up.
func DivCeil(n, m int) int {
	return (n + m - 1) / m
}

// NumBytes reports the number of bytes needed to hold n bits.
func NumBytes(n int) int {
	return DivCeil(n, 8)
}

// NumWorkers returns n if positive, otherwise the number of usable CPUs.
func NumWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
