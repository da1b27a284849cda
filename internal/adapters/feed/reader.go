// Package feed reads collected tweet feeds stored as newline-delimited
// JSON, one record per line.
package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tweet-collection/internal/domain"
)

// maxLineBytes bounds a single feed line. Records with extended entities
// run well past bufio's 64K default.
const maxLineBytes = 4 * 1024 * 1024

// Reader is a single-pass cursor over a feed file. It decodes one record
// per Next call and never buffers the whole file. A Reader cannot be
// rewound; to read the feed again, Open a new one.
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// Open opens the feed file at path and returns a cursor positioned before
// the first record. The caller owns the cursor and must Close it.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Reader{file: file, scanner: scanner}, nil
}

// Next decodes and returns the next record in file order. It returns
// io.EOF once the feed is exhausted (and on every call after that). A line
// that is not a well-formed JSON object fails with an error wrapping
// domain.ErrMalformedRecord and naming the 1-based line number; field
// presence is not validated here.
func (r *Reader) Next() (*domain.RawTweet, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read feed: %w", err)
		}
		return nil, io.EOF
	}
	r.line++

	var record domain.RawTweet
	if err := json.Unmarshal(r.scanner.Bytes(), &record); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRecord, r.line, err)
	}
	return &record, nil
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Close releases the underlying file. Safe to call after a partial read.
func (r *Reader) Close() error {
	return r.file.Close()
}
