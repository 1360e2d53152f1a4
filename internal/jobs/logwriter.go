package jobs

import (
	"fmt"
	"os"
)

// LogWriter appends lines to a job's log file. The file is opened and
// closed per write; concurrent runs may interleave lines, which is an
// accepted limitation.
type LogWriter struct {
	path string
}

// NewLogWriter creates a writer for the given log path
func NewLogWriter(path string) *LogWriter {
	return &LogWriter{path: path}
}

// Append writes one line to the log file
func (w *LogWriter) Append(line string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	_, writeErr := fmt.Fprintln(f, line)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write log line: %w", writeErr)
	}
	return closeErr
}
