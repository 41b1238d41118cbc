package source

import "github.com/irtools/forward-index-builder/internal/forwardindex"

// MemoryRecord is a forwardindex.Record backed by plain fields, used for
// tests and for callers that assemble records without a text format.
type MemoryRecord struct {
	TrecIDValue  string
	URLValue     string
	ContentValue string
	Invalid      bool
}

func (r MemoryRecord) TrecID() string  { return r.TrecIDValue }
func (r MemoryRecord) URL() string     { return r.URLValue }
func (r MemoryRecord) Content() string { return r.ContentValue }
func (r MemoryRecord) Valid() bool     { return !r.Invalid }

// NewRecord builds a valid MemoryRecord with the given trec-id and content.
func NewRecord(trecID, content string) MemoryRecord {
	return MemoryRecord{TrecIDValue: trecID, ContentValue: content}
}

// MemorySource replays a fixed slice of records, skipping any the caller
// marked invalid, matching the record-source contract.
type MemorySource struct {
	records []forwardindex.Record
	pos     int
}

// NewMemorySource wraps recs for sequential, in-order replay.
func NewMemorySource(recs []forwardindex.Record) *MemorySource {
	return &MemorySource{records: recs}
}

func (s *MemorySource) Next() (forwardindex.Record, bool, error) {
	for s.pos < len(s.records) {
		rec := s.records[s.pos]
		s.pos++
		if !rec.Valid() {
			continue
		}
		return rec, true, nil
	}
	return nil, false, nil
}
