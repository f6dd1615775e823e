// Package persist implements the on-disk binary format for a similarity
// matrix: N as a little-endian u64, followed by N row triples (offset, from,
// to), followed by the raw value bytes. No header, magic number, checksum,
// or compression — the format is intentionally minimal and fixed by the
// core spec, portable across hosts of matching endianness and 64-bit
// size_t width.
//
// Save/Load mechanics (atomic temp-file-then-rename writes, buffered I/O)
// are grounded on the teacher's binary persistence helpers; the wire shape
// itself is not.
package persist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dscroft/wordnet-blast/matrix"
)

// FileName is the canonical file name within a directory path.
const FileName = "similarities"

// MaxReasonableRows bounds the row count accepted by Load so a corrupt or
// malicious N never triggers an attempt to allocate an impossibly large row
// index; exceeding it is treated as a malformed file, per the core spec's
// "N implies a size exceeding available memory" clause.
const MaxReasonableRows = 1 << 32

var (
	// ErrIO wraps any open/read/write/short-read failure during Save/Load.
	ErrIO = errors.New("persist: I/O error")

	// ErrMalformedFile is returned when the file's row count implies an
	// unreasonable allocation, or the value payload is truncated.
	ErrMalformedFile = errors.New("persist: malformed file")
)

// Path joins dir with the canonical similarities file name.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Save writes m to dir/similarities, atomically: it writes to a temp file in
// the same directory, flushes, fsyncs, and renames over the target so a
// crash mid-write never leaves a half-written file in place.
func Save(dir string, m *matrix.Matrix) error {
	if m == nil {
		m = &matrix.Matrix{}
	}

	path := Path(dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0o644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeMatrix(buf, m); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// writeMatrix writes N, then N row triples, then the value bytes, all
// little-endian.
func writeMatrix(w io.Writer, m *matrix.Matrix) error {
	n := uint64(len(m.Rows))
	if err := binary.Write(w, binary.LittleEndian, n); err != nil {
		return err
	}

	for _, r := range m.Rows {
		triple := [3]uint64{r.Offset, r.From, r.To}
		if err := binary.Write(w, binary.LittleEndian, triple); err != nil {
			return err
		}
	}

	if len(m.Values) == 0 {
		return nil
	}
	_, err := w.Write(m.Values)
	return err
}

// Load reads dir/similarities into a fresh Matrix. On any I/O error or
// malformed file, it returns a non-nil error and a nil Matrix. Clearing the
// caller's existing cache on a load error is left to the layer above this
// package (simcache.Cache.Load does so).
func Load(dir string) (*matrix.Matrix, error) {
	path := Path(dir)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 256*1024)
	return readMatrix(r)
}

func readMatrix(r io.Reader) (*matrix.Matrix, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if n > MaxReasonableRows {
		return nil, fmt.Errorf("%w: row count %d exceeds %d", ErrMalformedFile, n, MaxReasonableRows)
	}

	if n == 0 {
		return &matrix.Matrix{}, nil
	}

	rows := make([]matrix.Row, n)
	for i := range rows {
		var triple [3]uint64
		if err := binary.Read(r, binary.LittleEndian, &triple); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrIO, i, err)
		}
		rows[i] = matrix.Row{Offset: triple[0], From: triple[1], To: triple[2]}
	}

	last := rows[n-1]
	length := last.Offset + (last.To - last.From)

	values := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, values); err != nil {
			return nil, fmt.Errorf("%w: value payload: %v", ErrMalformedFile, err)
		}
	}

	return &matrix.Matrix{Rows: rows, Values: values}, nil
}
