// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"
	"maps"
	"slices"

	"github.com/dsnet/huffman/internal/errors"
)

// Tree is a Huffman tree. A leaf has no children and carries a single token.
// An inner node has both children and its Freq is the sum of theirs.
type Tree[T Token] struct {
	Freq  uint64
	Token T // Only valid for leaves
	Left  *Tree[T]
	Right *Tree[T]
}

// IsLeaf reports whether t is a leaf.
func (t *Tree[T]) IsLeaf() bool { return t.Left == nil && t.Right == nil }

// NumLeaves reports the number of leaves reachable from t.
func (t *Tree[T]) NumLeaves() (n int) {
	stack := []*Tree[T]{t}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf() {
			n++
			continue
		}
		stack = append(stack, t.Left, t.Right)
	}
	return n
}

// item is a queued subtree. The seq is assigned when the subtree enters the
// queue and breaks ties between equal frequencies.
type item[T Token] struct {
	tree *Tree[T]
	seq  int
}

type queue[T Token] []item[T]

func (q queue[T]) Len() int { return len(q) }
func (q queue[T]) Less(i, j int) bool {
	if q[i].tree.Freq != q[j].tree.Freq {
		return q[i].tree.Freq < q[j].tree.Freq
	}
	return q[i].seq < q[j].seq
}
func (q queue[T]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue[T]) Push(x interface{}) { *q = append(*q, x.(item[T])) }
func (q *queue[T]) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// BuildTree builds a Huffman tree from a frequency table.
//
// Leaves enter the queue in ascending token order, so repeated builds from
// the same table always yield the same tree. When merging, the first subtree
// popped becomes the left child.
func BuildTree[T Token](freqs map[T]uint64) (*Tree[T], error) {
	if len(freqs) == 0 {
		return nil, errorf(errors.EmptyInput, "frequency table has no tokens")
	}

	var total uint64
	q := make(queue[T], 0, len(freqs))
	for _, tok := range slices.Sorted(maps.Keys(freqs)) {
		f := freqs[tok]
		if total+f < total {
			return nil, errorf(errors.Invalid, "total frequency overflows uint64")
		}
		total += f
		q = append(q, item[T]{tree: &Tree[T]{Freq: f, Token: tok}, seq: len(q)})
	}
	heap.Init(&q)

	seq := len(q)
	for q.Len() > 1 {
		left := heap.Pop(&q).(item[T]).tree
		right := heap.Pop(&q).(item[T]).tree
		node := &Tree[T]{Freq: left.Freq + right.Freq, Left: left, Right: right}
		heap.Push(&q, item[T]{tree: node, seq: seq})
		seq++
	}
	return q[0].tree, nil
}
