// Package runlog persists step results as an append-only, human-readable
// TSV log, one line per result. A later run reads nothing back from the
// log; resume works because satisfied steps skip themselves on re-check.
// The log exists for operators and for the history command.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geozeke/shipshape/internal/domain/step"
)

// DefaultPath returns the default run log location,
// ~/.local/state/shipshape/run.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "shipshape", "run.log"), nil
}

// Writer appends step results to a run log file. Each record is written
// and synced before Append returns, so an interrupted run keeps every
// result produced so far.
type Writer struct {
	f     *os.File
	runID string
}

// NewWriter opens (creating if needed) the log at path for appending and
// writes a header line identifying this run.
func NewWriter(path string, dryRun bool) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	w := &Writer{f: f, runID: uuid.New().String()}

	header := fmt.Sprintf("# run %s started %s dry-run=%t\n",
		w.runID, time.Now().Format(time.RFC3339), dryRun)
	if _, err := f.WriteString(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write run log header: %w", err)
	}
	return w, nil
}

// RunID returns the unique identifier for this run.
func (w *Writer) RunID() string {
	return w.runID
}

// Append writes one result record: timestamp, step ID, status, detail,
// tab-separated. The file is synced before returning.
func (w *Writer) Append(r step.Result) error {
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
		r.Timestamp().Format(time.RFC3339),
		r.StepID().String(),
		r.Status().String(),
		sanitize(r.Detail()))
	if _, err := w.f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append run log record: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// sanitize keeps records one line and tab-safe.
func sanitize(detail string) string {
	detail = strings.ReplaceAll(detail, "\t", " ")
	detail = strings.ReplaceAll(detail, "\n", " ")
	return detail
}

// Entry is one parsed run log record.
type Entry struct {
	Timestamp time.Time
	StepID    string
	Status    step.Status
	Detail    string
}

// Header is one parsed run header.
type Header struct {
	Line string
}

// Read parses the log at path. Header lines (starting with '#') and
// malformed records - possible if a previous run died mid-write - are
// skipped. A missing file yields no entries and no error.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}

	entries := make([]Entry, 0)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 3 {
			continue
		}
		ts, err := time.Parse(time.RFC3339, fields[0])
		if err != nil {
			continue
		}
		entry := Entry{
			Timestamp: ts,
			StepID:    fields[1],
			Status:    step.ParseStatus(fields[2]),
		}
		if len(fields) == 4 {
			entry.Detail = fields[3]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Tail returns the last n entries from the log at path.
func Tail(path string, n int) ([]Entry, error) {
	entries, err := Read(path)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(entries) {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}
