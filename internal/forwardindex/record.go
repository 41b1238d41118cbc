// Package forwardindex implements the parallel forward-index builder: the
// streaming, batched pipeline that tokenizes a stream of document records,
// assigns per-batch local term ids, and merges the per-batch dictionaries
// and postings into a single globally-consistent forward index.
package forwardindex

// Record is the capability set the builder needs from a document record: a
// stable external identifier, an optional url, the raw content to
// tokenize, and a validity flag. Record sources are expected to skip
// invalid records themselves; the builder never receives one.
type Record interface {
	TrecID() string
	URL() string
	Content() string
	Valid() bool
}

// Source yields a lazy, finite sequence of document records from an
// underlying byte stream. Next returns ok=false once the stream is
// exhausted. A non-nil error is fatal and aborts the build.
type Source interface {
	Next() (rec Record, ok bool, err error)
}

// ContentFunc tokenizes a document's raw content, invoking emit once per
// produced term in document order. It must not retain content after
// returning.
type ContentFunc func(content string, emit func(term string))

// TermFunc is a pure normalizer mapping a raw term to its canonical form.
type TermFunc func(term string) string
