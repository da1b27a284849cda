package log

import (
	"encoding/json"
	"io"
	"sync"
)

// Sink defines the interface for log output destinations.
type Sink interface {
	// Write sends a log entry to the destination.
	Write(entry Entry) error
}

// JSONSink writes entries as line-delimited JSON to an io.Writer.
type JSONSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONSink creates a sink writing to w (typically os.Stderr).
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// Write marshals the entry and appends it as one line.
func (s *JSONSink) Write(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}
