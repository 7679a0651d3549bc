// Package telemetry writes per-generation population records as CSV.
package telemetry

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// Record is one CSV row describing a computed generation
type Record struct {
	Generation int     `csv:"generation"`
	Population int     `csv:"population"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	Survivors  int     `csv:"survivors"`
	Density    float64 `csv:"density_pct"`
	Stagnant   bool    `csv:"stagnant"`
	DurationUS int64   `csv:"duration_us"`
}

// Recorder appends records to a writer, emitting the header once
type Recorder struct {
	mu            sync.Mutex
	out           io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewRecorder writes records to w
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{out: w}
}

// Create opens path for writing, creating parent directories as needed.
// An empty path disables recording and returns a nil Recorder.
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "[telemetry.Create] creating directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[telemetry.Create] creating %s", path)
	}
	return &Recorder{out: f, closer: f}, nil
}

// Write appends records. A nil Recorder discards them.
func (r *Recorder) Write(records ...Record) error {
	if r == nil || len(records) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return errors.Wrap(err, "[Recorder.Write] writing records")
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return errors.Wrap(err, "[Recorder.Write] writing records")
	}
	return nil
}

// Close releases the underlying file, if the recorder owns one
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
