// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/testutil"
)

func mustParseBits(s string) Bits {
	b, err := ParseBits(testutil.MustDecodeBitGen(s))
	if err != nil {
		panic(err)
	}
	return b
}

// codeStrings flattens a code table for comparison.
func codeStrings[T Token](codes map[T]Bits) map[T]string {
	m := make(map[T]string, len(codes))
	for tok, c := range codes {
		m[tok] = c.String()
	}
	return m
}

func mustCodes[T Token](freqs map[T]uint64) map[T]Bits {
	tree, err := BuildTree(freqs)
	if err != nil {
		panic(err)
	}
	return DeriveCodes(tree)
}

func randFreqs(r *testutil.Rand, n, maxCnt int) map[int]uint64 {
	freqs := make(map[int]uint64, n)
	for i, j := range r.Perm(n) {
		freqs[i] = uint64(1 + (j*7+r.Intn(maxCnt))%maxCnt)
	}
	return freqs
}

func TestBits(t *testing.T) {
	var vectors = []struct {
		input string
		valid bool
	}{
		{"", true},
		{"0", true},
		{"10110", true},
		{"0101010101010101010", true},
		{"01x", false},
	}
	for i, v := range vectors {
		b, err := ParseBits(v.input)
		if v.valid != (err == nil) {
			t.Errorf("test %d, validity mismatch: got %v, want %v", i, err == nil, v.valid)
			continue
		}
		if !v.valid {
			assert.True(t, errors.IsInvalid(err))
			continue
		}
		if got := b.String(); got != v.input {
			t.Errorf("test %d, String mismatch: got %q, want %q", i, got, v.input)
		}
		if got := len(b.Bytes()); got != (len(v.input)+7)/8 {
			t.Errorf("test %d, packed size mismatch: got %d, want %d", i, got, (len(v.input)+7)/8)
		}

		c, err := MakeBits(b.Bytes(), b.Len())
		require.NoError(t, err)
		assert.Equal(t, b.String(), c.String())
		assert.Equal(t, b.Len(), c.Len())
	}

	b := mustParseBits("1101")
	assert.Equal(t, "11010", b.Append(false).String())
	assert.Equal(t, "11011", b.Append(true).String())
	assert.Equal(t, "1101", b.String(), "Append must not modify the receiver")

	// The first bit is packed into the most significant position and
	// unused trailing bits stay zero.
	assert.Equal(t, []byte{0x80}, mustParseBits("1").Bytes())
	assert.Equal(t, []byte{0xd0}, b.Bytes())
	assert.Equal(t, []byte{0xff, 0x40}, mustParseBits("11111111 01").Bytes())
	assert.Equal(t, []byte{0xaa, 0x80}, mustParseBits("10101010 1").Append(false).Bytes())

	_, err := MakeBits([]byte{0, 0}, 3)
	assert.True(t, errors.IsInvalid(err))
	_, err = MakeBits(nil, -1)
	assert.True(t, errors.IsInvalid(err))
}

func TestWriter(t *testing.T) {
	var w Writer
	var want strings.Builder
	r := testutil.NewRand(0)
	for i := 0; i < 200; i++ {
		var code Writer
		for j := 1 + r.Intn(20); j > 0; j-- {
			code.WriteBit(r.Intn(2) == 1)
		}
		c := code.Bits()
		w.WriteBits(c)
		want.WriteString(c.String())
		if w.Len() != want.Len() {
			t.Fatalf("test %d, length mismatch: got %d, want %d", i, w.Len(), want.Len())
		}
	}
	if got := w.Bits().String(); got != want.String() {
		t.Errorf("concatenation mismatch:\ngot  %s\nwant %s", got, want.String())
	}

	b := w.Bits()
	w.Reset()
	w.WriteBits(mustParseBits("1"))
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, want.String(), b.String(), "Bits must not alias the Writer")

	// Writing continues after a partial byte has been snapshot.
	w.Reset()
	for i, s := range []string{"101", "1", "0110", "11", "1010101011"} {
		w.WriteBits(mustParseBits(s))
		b := w.Bits()
		if got, want := len(b.Bytes()), (w.Len()+7)/8; got != want {
			t.Errorf("test %d, packed size mismatch: got %d, want %d", i, got, want)
		}
	}
	assert.Equal(t, "10110110111010101011", w.Bits().String())
	assert.Equal(t, []byte{0xb6, 0xea, 0xb0}, w.Bits().Bytes())
}

func TestBuildTree(t *testing.T) {
	tree, err := BuildTree(map[rune]uint64{'a': 40, 'b': 30, 'c': 20, 'd': 10})
	require.NoError(t, err)

	assert.Equal(t, uint64(100), tree.Freq)
	assert.Equal(t, 4, tree.NumLeaves())

	// Most frequent token is one bit deep.
	assert.True(t, tree.Left.IsLeaf())
	assert.Equal(t, 'a', tree.Left.Token)
	assert.Equal(t, uint64(40), tree.Left.Freq)

	// Second most frequent token is two bits deep.
	assert.Equal(t, 'b', tree.Right.Left.Token)
	assert.Equal(t, uint64(30), tree.Right.Left.Freq)

	// Least frequent tokens are three bits deep, first popped on the left.
	assert.Equal(t, 'd', tree.Right.Right.Left.Token)
	assert.Equal(t, uint64(10), tree.Right.Right.Left.Freq)
	assert.Equal(t, 'c', tree.Right.Right.Right.Token)
	assert.Equal(t, uint64(20), tree.Right.Right.Right.Freq)

	// Every inner node carries the sum of its children.
	stack := []*Tree[rune]{tree}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.IsLeaf() {
			assert.Equal(t, n.Left.Freq+n.Right.Freq, n.Freq)
			stack = append(stack, n.Left, n.Right)
		}
	}
}

func TestBuildTreeErrors(t *testing.T) {
	_, err := BuildTree(map[string]uint64{})
	assert.True(t, errors.IsEmptyInput(err), "got %v", err)

	_, err = BuildTree(map[string]uint64{"x": 1 << 63, "y": 1 << 63})
	assert.True(t, errors.IsInvalid(err), "got %v", err)

	tree, err := BuildTree(map[string]uint64{"only": 7})
	require.NoError(t, err)
	assert.True(t, tree.IsLeaf())
	assert.Equal(t, "only", tree.Token)
	assert.Equal(t, uint64(7), tree.Freq)
}

func TestDeriveCodes(t *testing.T) {
	var vectors = []struct {
		freqs map[rune]uint64
		want  map[rune]string
	}{{
		freqs: map[rune]uint64{'a': 40, 'b': 30, 'c': 20, 'd': 10},
		want:  map[rune]string{'a': "0", 'b': "10", 'd': "110", 'c': "111"},
	}, {
		freqs: map[rune]uint64{'a': 3, 'b': 1},
		want:  map[rune]string{'b': "0", 'a': "1"},
	}, {
		freqs: map[rune]uint64{'z': 5},
		want:  map[rune]string{'z': "0"},
	}, {
		// Ties are broken by token order, then by merge order.
		freqs: map[rune]uint64{'a': 1, 'b': 1, 'c': 1, 'd': 1},
		want:  map[rune]string{'a': "00", 'b': "01", 'c': "10", 'd': "11"},
	}, {
		freqs: map[rune]uint64{'x': 0, 'y': 0, 'z': 0},
		want:  map[rune]string{'z': "0", 'x': "10", 'y': "11"},
	}}

	for i, v := range vectors {
		got := codeStrings(mustCodes(v.freqs))
		if diff := cmp.Diff(v.want, got); diff != "" {
			t.Errorf("test %d, codes mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDeterminism(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 20; i++ {
		freqs := randFreqs(r, 1+r.Intn(300), 4) // Few distinct counts, many ties
		want := codeStrings(mustCodes(freqs))
		for j := 0; j < 5; j++ {
			clone := make(map[int]uint64, len(freqs))
			for k, v := range freqs {
				clone[k] = v
			}
			if diff := cmp.Diff(want, codeStrings(mustCodes(clone))); diff != "" {
				t.Fatalf("test %d, rebuild %d, codes mismatch (-want +got):\n%s", i, j, diff)
			}
		}
	}
}

func TestPrefixFree(t *testing.T) {
	r := testutil.NewRand(1)
	for i := 0; i < 50; i++ {
		freqs := randFreqs(r, 1+r.Intn(500), 1+r.Intn(1000))
		codes := mustCodes(freqs)
		if len(codes) != len(freqs) {
			t.Errorf("test %d, code count mismatch: got %d, want %d", i, len(codes), len(freqs))
		}
		if !isPrefixFree(codes) {
			t.Errorf("test %d, codes are not prefix-free", i)
		}
	}

	assert.False(t, isPrefixFree(map[int]Bits{1: mustParseBits("0"), 2: mustParseBits("01")}))
	assert.False(t, isPrefixFree(map[int]Bits{1: mustParseBits("10"), 2: mustParseBits("10")}))
	assert.False(t, isPrefixFree(map[int]Bits{1: {}}))
	assert.True(t, isPrefixFree(map[int]Bits{1: mustParseBits("0"), 2: mustParseBits("10")}))
}

// minCost finds the least total cost Σ freq·len over all code length
// assignments that satisfy the Kraft inequality, which bounds every
// prefix-free code for the table.
func minCost(freqs []uint64) uint64 {
	n := len(freqs)
	lens := make([]int, n)
	best := ^uint64(0)
	var search func(i int, kraft float64)
	search = func(i int, kraft float64) {
		if kraft > 1 {
			return
		}
		if i == n {
			var cost uint64
			for j, f := range freqs {
				cost += f * uint64(lens[j])
			}
			if cost < best {
				best = cost
			}
			return
		}
		for l := 1; l < n; l++ {
			lens[i] = l
			search(i+1, kraft+1/float64(uint64(1)<<uint(l)))
		}
	}
	search(0, 0)
	return best
}

func TestOptimality(t *testing.T) {
	r := testutil.NewRand(2)
	for i := 0; i < 40; i++ {
		n := 2 + r.Intn(5)
		freqs := make(map[int]uint64, n)
		list := make([]uint64, n)
		for j := range list {
			list[j] = uint64(1 + r.Intn(50))
			freqs[j] = list[j]
		}

		codes := mustCodes(freqs)
		var cost uint64
		for tok, f := range freqs {
			cost += f * uint64(codes[tok].Len())
		}
		if want := minCost(list); cost != want {
			t.Errorf("test %d, cost mismatch for %v: got %d, want %d", i, list, cost, want)
		}
	}

	// Expected length for the worked example: (40*1 + 30*2 + 20*3 + 10*3) / 100.
	freqs := map[rune]uint64{'a': 40, 'b': 30, 'c': 20, 'd': 10}
	assert.InDelta(t, 1.9, ExpectedLength(mustCodes(freqs), freqs), 1e-9)
	assert.Equal(t, 0.0, ExpectedLength(mustCodes(freqs), map[rune]uint64{}))
}

func TestSkewedTree(t *testing.T) {
	// Fibonacci counts give the deepest possible tree, with codes longer than
	// any machine word.
	const n = 80
	freqs := make(map[int]uint64, n)
	a, b := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		freqs[i] = a
		a, b = b, a+b
	}
	codes := mustCodes(freqs)

	var maxLen int
	for _, c := range codes {
		maxLen = max(maxLen, c.Len())
	}
	assert.Equal(t, n-1, maxLen)
	assert.True(t, isPrefixFree(codes))

	d, err := NewDecoder(codes)
	require.NoError(t, err)
	assert.Len(t, d.syms, n)

	var w Writer
	var want []int
	for i := 0; i < n; i += 3 {
		w.WriteBits(codes[i])
		want = append(want, i)
	}
	got, err := d.Decode(nil, w.Bits())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecoder(t *testing.T) {
	codes := mustCodes(map[rune]uint64{'a': 40, 'b': 30, 'c': 20, 'd': 10})
	d, err := NewDecoder(codes)
	require.NoError(t, err)

	var vectors = []struct {
		input  string // BitGen formatted
		output string
		errf   func(error) bool
	}{{
		input:  "",
		output: "",
	}, {
		input:  "0 0 10 10 111 # a a b b c",
		output: "aabbc",
	}, {
		input:  "110*3 0 # d d d a",
		output: "ddda",
	}, {
		input:  "0 10 11 # a b <truncated>",
		output: "ab",
		errf:   errors.IsTruncated,
	}, {
		input: "1",
		errf:  errors.IsTruncated,
	}}

	for i, v := range vectors {
		got, err := d.Decode(nil, mustParseBits(v.input))
		if v.errf != nil {
			if !v.errf(err) {
				t.Errorf("test %d, error mismatch: got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if string(got) != v.output {
			t.Errorf("test %d, output mismatch: got %q, want %q", i, string(got), v.output)
		}
	}

	// An incomplete code table leaves bit paths that match nothing.
	ds, err := NewDecoder(map[string]Bits{"x": mustParseBits("0"), "y": mustParseBits("10")})
	require.NoError(t, err)
	got, err := ds.Decode(nil, mustParseBits("0 10 11"))
	assert.True(t, errors.IsInvalidCode(err), "got %v", err)
	assert.Nil(t, got)

	// Single token tables use a 1-bit code.
	d, err = NewDecoder(mustCodes(map[rune]uint64{'q': 9}))
	require.NoError(t, err)
	got2, err := d.Decode(nil, mustParseBits("0*5"))
	require.NoError(t, err)
	assert.Equal(t, "qqqqq", string(got2))
	_, err = d.Decode(nil, mustParseBits("0 1"))
	assert.True(t, errors.IsInvalidCode(err), "got %v", err)
}

func TestNewDecoderErrors(t *testing.T) {
	var vectors = []map[string]Bits{
		{},
		{"a": {}},
		{"a": mustParseBits("0"), "b": mustParseBits("01")},
		{"a": mustParseBits("011"), "b": mustParseBits("01")},
		{"a": mustParseBits("10"), "b": mustParseBits("10")},
	}
	for i, codes := range vectors {
		if _, err := NewDecoder(codes); !errors.IsInvalidCode(err) {
			t.Errorf("test %d, error mismatch: got %v, want invalid code", i, err)
		}
	}
}

func TestFormatCodes(t *testing.T) {
	freqs := map[rune]uint64{'a': 40, 'b': 30, 'c': 20, 'd': 10}
	codes := mustCodes(freqs)
	got := FormatCodes(codes, freqs)
	want := strings.Join([]string{
		"{",
		"\t'a':  0  ,  40 |################################",
		"\t'b':  10 ,  30 |########################",
		"\t'c':  111,  20 |################",
		"\t'd':  110,  10 |########",
		"}",
	}, "\n")
	if got != want {
		t.Errorf("FormatCodes mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	assert.NotContains(t, FormatCodes(codes, nil), "|")

	tree, err := BuildTree(map[string]uint64{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.Equal(t, "3\n\t1: \"x\"\n\t2: \"y\"", tree.String())
}

// isPrefixFree reports whether no code is empty and no code is a prefix of
// another (or equal to another).
func isPrefixFree[T Token](codes map[T]Bits) bool {
	ss := make([]string, 0, len(codes))
	for _, c := range codes {
		if c.Len() == 0 {
			return false
		}
		ss = append(ss, c.String())
	}
	// In lexical order, a code that prefixes others is immediately
	// followed by one of them.
	slices.Sort(ss)
	for i := 1; i < len(ss); i++ {
		if strings.HasPrefix(ss[i], ss[i-1]) {
			return false
		}
	}
	return true
}
