// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"
	"strings"
)

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func padLeft(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func padRight(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// FormatCodes renders a code table as text, one token per line, ordered by
// code length. If freqs is non-nil, each line also shows the count and a bar
// scaled to the most frequent token.
func FormatCodes[T Token](codes map[T]Bits, freqs map[T]uint64) string {
	toks := sortedTokens(codes)
	var maxTok, maxLen int
	var maxCnt uint64
	for _, tok := range toks {
		if n := len(FormatToken(tok)); maxTok < n {
			maxTok = n
		}
		if n := codes[tok].Len(); maxLen < n {
			maxLen = n
		}
		if maxCnt < freqs[tok] {
			maxCnt = freqs[tok]
		}
	}
	maxCntStr := lenBase10(int(maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, tok := range toks {
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float64(freqs[tok])/float64(maxCnt) + 0.5)
			cntStr = fmt.Sprintf(",  %s |%s",
				padBase10(freqs[tok], maxCntStr),
				strings.Repeat("#", cnt),
			)
		}
		code := codes[tok].String()
		if cntStr != "" {
			code = padRight(code, maxLen)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s%s", padLeft(FormatToken(tok), maxTok), code, cntStr))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (t *Tree[T]) String() string {
	var ss []string
	type entry struct {
		node  *Tree[T]
		depth int
	}
	stack := []entry{{t, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		indent := strings.Repeat("\t", e.depth)
		if e.node.IsLeaf() {
			ss = append(ss, fmt.Sprintf("%s%d: %s", indent, e.node.Freq, FormatToken(e.node.Token)))
			continue
		}
		ss = append(ss, fmt.Sprintf("%s%d", indent, e.node.Freq))
		stack = append(stack, entry{e.node.Right, e.depth + 1}, entry{e.node.Left, e.depth + 1})
	}
	return strings.Join(ss, "\n")
}
