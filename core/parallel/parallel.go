// Package parallel chunks row-wise work across CPU cores. The WoE transform
// and the scorecard scaler process rows independently, so both hand their
// row ranges to these helpers.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits rows into contiguous chunks, one per available core,
// and runs fn(start, end) for each chunk on its own goroutine. Chunk
// boundaries depend only on the row and core counts; callers that write one
// output cell per row therefore produce the same result regardless of how
// the chunks are scheduled.
func Parallelize(rows int, fn func(start, end int)) {
	if rows == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > rows {
		numWorkers = rows
	}

	// 切り上げ除算で各ワーカーの担当行数を決める
	chunkSize := (rows + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > rows {
			end = rows
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, rows) sequentially when the row count
// does not exceed the threshold, and falls back to Parallelize above it.
// Small datasets stay on the calling goroutine where the fan-out overhead
// would dominate.
func ParallelizeWithThreshold(rows int, threshold int, fn func(start, end int)) {
	if rows <= threshold {
		fn(0, rows)
		return
	}
	Parallelize(rows, fn)
}
