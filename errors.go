package simcache

import (
	"errors"
	"fmt"

	"github.com/dscroft/wordnet-blast/matrix"
	"github.com/dscroft/wordnet-blast/persist"
)

var (
	// ErrAllocationFailed is returned by Build when the scratch buffer or
	// the final value array cannot be allocated. The cache is left empty.
	ErrAllocationFailed = errors.New("simcache: allocation failed")

	// ErrIO is returned by Save/Load on any open/read/write/short-read
	// failure. The cache is left empty on a failed Load.
	ErrIO = errors.New("simcache: I/O error")

	// ErrMalformedFile is returned by Load when the file's row count or
	// payload size is inconsistent with a valid cache.
	ErrMalformedFile = errors.New("simcache: malformed file")
)

// translateError maps errors from the matrix and persist packages onto this
// package's sentinels, so callers only ever need to check against
// simcache.Err*.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var alloc *matrix.ErrAllocationFailed
	if errors.As(err, &alloc) {
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	if errors.Is(err, persist.ErrMalformedFile) {
		return fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	if errors.Is(err, persist.ErrIO) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return err
}
