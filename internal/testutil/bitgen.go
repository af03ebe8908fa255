// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string into a string of '0' and '1'
// characters in stream order.
//
// The BitGen format allows bit sequences to be scripted by hand from a series
// of tokens separated by white space of any kind. The '#' character starts a
// comment that runs to the end of the line, which lets a test state what each
// group of bits means.
//
// A token of the pattern "[01]+" is a bit-string whose left-most bit comes
// first in the sequence. A token decorator of the pattern "[*][0-9]+" may
// trail any token and repeats it that many times.
//
// Unlike the byte oriented streams of DEFLATE or BZip2, Huffman coded lines
// are not padded, so the result may have any length.
//
// Example BitGen string:
//
//	0 0 10 10 110  # a a b b c
//	111*2          # d d
//
// Decoded output:
//
//	"001010110111111"
func DecodeBitGen(str string) (string, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var sb strings.Builder
	for _, t := range toks {
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return "", errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}
		if !reBin.MatchString(t) {
			return "", errors.New("testutil: invalid token: " + t)
		}
		sb.WriteString(strings.Repeat(t, rep))
	}
	return sb.String(), nil
}
