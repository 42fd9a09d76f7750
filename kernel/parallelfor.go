package kernel

import (
	"runtime"
	"sync"
)

// parallelFor splits [0,n) into contiguous chunks across GOMAXPROCS workers
// and runs fn(i) for every index, blocking until all workers finish. This
// is the single-process analog of teacher's MPI rank-parallel element loop
// (fem/solver.go dispatches one domain per rank and waits for all ranks to
// finish a phase before the next): here, one goroutine per chunk plays the
// role of one rank, and the sync.WaitGroup plays the role of the barrier
// teacher achieves via mpi.IntAllReduceMax voting.
func parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= n {
			break
		}
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
