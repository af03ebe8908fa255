// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"golang.org/x/sync/errgroup"

	"github.com/dsnet/huffman/internal"
)

// forEachLine calls the function returned by newWorker for every index in
// [0, n). Each goroutine obtains its own function from newWorker so that
// scratch buffers are never shared.
//
// Indexes are split into contiguous chunks. Processing a chunk stops at its
// first failure, and the failure with the lowest index is returned, so the
// reported error does not depend on scheduling.
func forEachLine(conf *Config, n int, newWorker func() func(i int) error) error {
	var workers, threshold int
	if conf != nil {
		workers, threshold = conf.Workers, conf.ParallelLines
	}
	if threshold <= 0 {
		threshold = DefaultParallelLines
	}
	workers = internal.NumWorkers(workers)

	if n < threshold || workers == 1 {
		do := newWorker()
		for i := 0; i < n; i++ {
			if err := do(i); err != nil {
				return err
			}
		}
		return nil
	}

	size := internal.DivCeil(n, 4*workers)
	chunkErrs := make([]error, internal.DivCeil(n, size))

	var g errgroup.Group
	g.SetLimit(workers)
	for c := range chunkErrs {
		g.Go(func() error {
			do := newWorker()
			for i := c * size; i < min(n, (c+1)*size); i++ {
				if err := do(i); err != nil {
					chunkErrs[c] = err
					break
				}
			}
			return nil
		})
	}
	_ = g.Wait() // Failures are collected in chunkErrs

	for _, err := range chunkErrs {
		if err != nil {
			return err
		}
	}
	return nil
}
