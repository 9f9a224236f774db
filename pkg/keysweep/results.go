package keysweep

import (
	"fmt"
	"os"
)

const resultHeader = "PrivateKey,Address\n"

// MatchWriter appends matches to a durable record stream, one line per match
// in the form "hex-key,address". The header line is written once, when the
// stream is newly created or still empty, so interrupted scans can keep
// appending to the same file. Only the scan controller writes to it; workers
// never touch durable state.
type MatchWriter struct {
	f *os.File
}

// OpenMatchWriter opens (or creates) the result file for appending.
func OpenMatchWriter(path string) (*MatchWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat results file: %w", err)
	}

	if info.Size() == 0 {
		if _, err := f.WriteString(resultHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write results header: %w", err)
		}
	}
	return &MatchWriter{f: f}, nil
}

// Append writes one match record and flushes it to disk.
func (w *MatchWriter) Append(m Match) error {
	if _, err := fmt.Fprintf(w.f, "%s,%s\n", m.Hex, m.Address); err != nil {
		return fmt.Errorf("failed to append match: %w", err)
	}
	return w.f.Sync()
}

// Close closes the underlying file.
func (w *MatchWriter) Close() error {
	return w.f.Close()
}
