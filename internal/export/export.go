// Package export writes report rows to JSONL files.
package export

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"ranked-report/internal/collector"

	"github.com/goccy/go-json"
)

const (
	timestampFormat = "2006-01-02_15-04-05"
	bufferSize      = 64 * 1024
)

var (
	ErrClosed = errors.New("export file already closed")

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// Line is one exported row: a record tagged with the run that produced it
type Line struct {
	RunID  string `json:"run_id"`
	RiotID string `json:"riot_id"`
	Region string `json:"region"`
	collector.MatchStatsRecord
}

// Writer writes JSON lines to a single export file, optionally gzip compressed
type Writer struct {
	mu sync.Mutex

	file   *os.File
	gz     *gzip.Writer
	writer *bufio.Writer
	path   string
	count  int
}

// FileName builds the export file name for a player at the given time
func FileName(riotID string, at time.Time, compress bool) string {
	name := fmt.Sprintf("report_%s_%s.jsonl", unsafeChars.ReplaceAllString(riotID, "_"), at.Format(timestampFormat))
	if compress {
		name += ".gz"
	}

	return name
}

// Create opens a new export file in dir, creating the directory if needed
func Create(dir, name string, compress bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}

	w := &Writer{file: file, path: path}

	var dst io.Writer = file
	if compress {
		w.gz = gzip.NewWriter(file)
		dst = w.gz
	}
	w.writer = bufio.NewWriterSize(dst, bufferSize)

	return w, nil
}

// WriteLine writes a record to the export file
func (w *Writer) WriteLine(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	w.count++

	return nil
}

// Close flushes and closes the file. A file with no lines is removed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	var errs []error
	if err := w.writer.Flush(); err != nil {
		errs = append(errs, err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	w.file = nil

	if w.count == 0 {
		if err := os.Remove(w.path); err != nil {
			errs = append(errs, err)
		}
		w.path = ""
	}

	return errors.Join(errs...)
}

// Path returns the file path, empty when an empty file was removed on Close
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.path
}

// Count returns the number of lines written
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.count
}

// WriteReport exports every record of the report to a new file in dir and
// returns its path. Nothing is written for a report without records.
func WriteReport(dir string, report *collector.Report, compress bool) (string, error) {
	if len(report.Records) == 0 {
		return "", nil
	}

	at := report.StartedAt
	if at.IsZero() {
		at = time.Now()
	}

	riotID := report.Player.Identity.String()

	w, err := Create(dir, FileName(riotID, at, compress), compress)
	if err != nil {
		return "", err
	}

	for _, record := range report.Records {
		if err := w.WriteLine(Line{
			RunID:            report.RunID.String(),
			RiotID:           riotID,
			Region:           report.Region().String(),
			MatchStatsRecord: record,
		}); err != nil {
			return "", errors.Join(err, w.Close())
		}
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	slog.Info("Exported report", slog.String("path", w.Path()), slog.Int("records", w.Count()))

	return w.Path(), nil
}
