package matrix

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/dscroft/wordnet-blast/quantize"
)

// SimFunc is a pure, reentrant, symmetric similarity function over two
// dense synset ids in [0,N). It must satisfy sim(a,a)=1, sim(a,b)=sim(b,a),
// and return a value in [0,1] or a non-finite/<=0 sentinel for "undefined".
// If it is not a pure function of its inputs, Build's output is undefined.
type SimFunc func(a, b int) float32

// ProgressFunc is invoked at most once per completed row during Phase 1,
// under a single mutex, with done the number of rows finished so far and
// total the row count.
type ProgressFunc func(done, total int)

// BuildOptions configures the parallel triangle builder.
type BuildOptions struct {
	// Concurrency bounds how many rows are computed at once. <= 0 means
	// runtime.GOMAXPROCS(0).
	Concurrency int

	// MaxBand, if > 0, bounds how far past the diagonal the inner scan of
	// Phase 1 will search before giving up on a row; 0 means unbounded
	// (search the full [a+1,N) band, matching the core spec exactly).
	MaxBand int

	// Progress is called from the single progress mutex described above.
	// May be nil.
	Progress ProgressFunc
}

// ErrAllocationFailed is returned (via panic recovery) when allocating the
// Phase 1 scratch buffer or the final value array panics, which happens when
// the requested length is out of range for make().
type ErrAllocationFailed struct {
	RequestedBytes uint64
	cause          error
}

func (e *ErrAllocationFailed) Error() string {
	return fmt.Sprintf("matrix: allocation of %d bytes failed: %v", e.RequestedBytes, e.cause)
}

func (e *ErrAllocationFailed) Unwrap() error { return e.cause }

// pos maps the strictly-upper-triangle pair (a,b), 0<=a<b<n, onto a dense
// row-major index into a scratch buffer of length n*(n-1)/2. The diagonal is
// never materialized (it is implicit, always 1.0) so it is excluded from the
// packing, unlike the reference C++ implementation's pos() which reserves a
// diagonal slot it never writes to; the set of observable outputs is
// unchanged.
func pos(a, b, n int) int {
	return a*n - a*(a+1)/2 + (b - a - 1)
}

// Build computes the upper-triangular similarity matrix for n synsets using
// sim, following the two-phase discipline from the core spec: Phase 1 fills
// a dense scratch buffer in parallel over rows and trims each row's window
// in the same pass; Phase 2 sequentially compacts the surviving spans into
// the final Row index and Values array.
//
// Build respects ctx cancellation cooperatively: a cancelled context stops
// Phase 1 early and Build returns ctx.Err() with a nil Matrix. It never
// changes observable output on a context that is not cancelled.
func Build(ctx context.Context, n int, sim SimFunc, opts BuildOptions) (*Matrix, error) {
	if n <= 0 {
		return &Matrix{}, nil
	}

	scratchLen := uint64(n) * uint64(n-1) / 2
	scratch, err := allocBytes(scratchLen)
	if err != nil {
		return nil, &ErrAllocationFailed{RequestedBytes: scratchLen, cause: err}
	}

	froms := make([]int, n)
	tos := make([]int, n)

	if err := fillTriangle(ctx, n, sim, scratch, froms, tos, opts); err != nil {
		return nil, err
	}

	rows, values, err := compact(n, scratch, froms, tos)
	if err != nil {
		return nil, err
	}

	return &Matrix{Rows: rows, Values: values}, nil
}

// allocBytes allocates n bytes, converting a make() panic (a length out of
// range for the platform) into an error instead of crashing the process.
// A length within range that the runtime cannot satisfy is not recoverable:
// the Go runtime aborts the process with a fatal out-of-memory error, so
// that case is not reported through this error.
func allocBytes(n uint64) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return make([]byte, n), nil
}

// fillTriangle is Phase 1: a bounded worker pool computes each row's
// quantized similarities against every later column, then trims the row to
// its [from,to) window. A single forward pass tracking the first and last
// non-NULLSIM column visited is equivalent to scanning inward from both ends
// of the band (the scan the core spec describes) while avoiding a second
// pass over the row. Rows are disjoint write ranges, so workers never
// contend; a single mutex guards the optional progress callback, matching
// the "at most once per completed block" rule from the core spec.
func fillTriangle(ctx context.Context, n int, sim SimFunc, scratch []byte, froms, tos []int, opts BuildOptions) error {
	numRoutines := runtime.GOMAXPROCS(0)
	if numRoutines > n {
		numRoutines = n
	}
	if numRoutines < 1 {
		numRoutines = 1
	}

	// A semaphore additionally throttles how many rows are in flight at
	// once when the caller asked for fewer than GOMAXPROCS workers; the
	// goroutine count itself stays fixed so queueing happens on the
	// semaphore, not on goroutine creation (grounded on the weighted
	// background-worker cap pattern).
	var sem *semaphore.Weighted
	if opts.Concurrency > 0 && opts.Concurrency < numRoutines {
		sem = semaphore.NewWeighted(int64(opts.Concurrency))
	}

	maxBand := opts.MaxBand

	var progressMu sync.Mutex
	done := 0

	jobs := make(chan int, 1024)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for a := range jobs {
			if ctx.Err() != nil {
				continue
			}

			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					continue
				}
			}

			limit := n
			if maxBand > 0 && a+1+maxBand < limit {
				limit = a + 1 + maxBand
			}

			from, to := a+1, a+1 // collapsed (from==to==a+1) if nothing survives
			firstSet := false
			lastSet := 0

			for b := a + 1; b < limit; b++ {
				code := quantize.Encode(sim(a, b))
				scratch[pos(a, b, n)] = code
				if code != quantize.NULLSIM {
					if !firstSet {
						from = b
						firstSet = true
					}
					lastSet = b
				}
			}

			if firstSet {
				to = lastSet + 1
			}

			froms[a] = from
			tos[a] = to

			if sem != nil {
				sem.Release(1)
			}

			if opts.Progress != nil {
				progressMu.Lock()
				done++
				opts.Progress(done, n)
				progressMu.Unlock()
			}
		}
	}

	for i := 0; i < numRoutines; i++ {
		wg.Add(1)
		go worker()
	}

	for a := 0; a < n; a++ {
		if ctx.Err() != nil {
			break
		}
		jobs <- a
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}

// compact is Phase 2: sequentially, for each row in ascending order, copy
// its trimmed span from the scratch buffer to the running output position
// and record its Row descriptor. Sequential because each row's output
// offset is defined by the running total of all preceding rows' sizes.
func compact(n int, scratch []byte, froms, tos []int) ([]Row, []byte, error) {
	rows := make([]Row, n)

	var total uint64
	for a := 0; a < n; a++ {
		total += uint64(tos[a] - froms[a])
	}

	values, err := allocBytes(total)
	if err != nil {
		return nil, nil, &ErrAllocationFailed{RequestedBytes: total, cause: err}
	}

	var running uint64
	for a := 0; a < n; a++ {
		from, to := froms[a], tos[a]
		size := uint64(to - from)

		rows[a] = Row{Offset: running, From: uint64(from), To: uint64(to)}

		for b := from; b < to; b++ {
			values[running+uint64(b-from)] = scratch[pos(a, b, n)]
		}

		running += size
	}

	return rows, values, nil
}
