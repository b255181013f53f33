package lupton

import "sync"

// A span is a contiguous, half-open range of pixel indices [start, end).
type span struct {
	start, end int
}

// partition cuts [0,n) into at most `workers` contiguous spans of
// near-equal size. n==0 gives no spans.
func partition(n, workers int) []span {
	if n <= 0 {
		return nil
	}
	if workers < 1 { workers = 1 }
	if workers > n { workers = n }

	chunkSize := (n + workers - 1) / workers
	spans := make([]span, 0, workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n { end = n }
		spans = append(spans, span{start, end})
	}
	return spans
}

// parallelFor runs fn once per span, each on its own goroutine, and
// blocks until all of them are done. A single span runs inline.
func parallelFor(spans []span, fn func(i int, s span)) {
	if len(spans) == 1 {
		fn(0, spans[0])
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(spans))
	for i, s := range spans {
		go func(i int, s span) {
			defer wg.Done()
			fn(i, s)
		}(i, s)
	}
	wg.Wait()
}
