// Package source provides concrete forwardindex.Source implementations.
//
// The builder core only depends on the forwardindex.Source contract; this
// package supplies the one standard backend carried over from the
// reference implementation (a plain line-oriented text format) plus an
// in-memory source used by tests and by callers that already hold their
// records in memory.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/irtools/forward-index-builder/internal/forwardindex"
)

// plaintextRecord is a single "<trecid> <rest of line>" record. It always
// reports an empty URL: the plaintext format carries none.
type plaintextRecord struct {
	trecID  string
	content string
}

func (r plaintextRecord) TrecID() string  { return r.trecID }
func (r plaintextRecord) URL() string     { return "" }
func (r plaintextRecord) Content() string { return r.content }
func (r plaintextRecord) Valid() bool     { return true }

// PlaintextSource reads records of the form "<trecid> <content>\n" from an
// underlying reader, one per line. It is the Go equivalent of the
// reference implementation's Plaintext_Record and its operator>>.
type PlaintextSource struct {
	r *bufio.Reader
}

// NewPlaintextSource wraps r for sequential record reading.
func NewPlaintextSource(r io.Reader) *PlaintextSource {
	return &PlaintextSource{r: bufio.NewReader(r)}
}

// Next reads the next "<trecid> <content>" line. Blank lines and lines
// consisting only of whitespace are skipped (treated as invalid input,
// per the record-source contract's "skip invalid input" responsibility).
func (s *PlaintextSource) Next() (forwardindex.Record, bool, error) {
	for {
		line, err := s.r.ReadString('\n')
		if len(line) == 0 && err != nil {
			if err == io.EOF {
				return nil, false, nil
			}
			return nil, false, err
		}
		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			if err == io.EOF {
				return nil, false, nil
			}
			continue
		}
		sep := strings.IndexAny(trimmed, " \t")
		var trecID, content string
		if sep < 0 {
			trecID = trimmed
			content = ""
		} else {
			trecID = trimmed[:sep]
			content = strings.TrimLeft(trimmed[sep+1:], " \t")
		}
		rec := plaintextRecord{trecID: trecID, content: content}
		if err == io.EOF {
			return rec, true, nil
		}
		return rec, true, nil
	}
}
