// Package benchmark contains Go benchmarks for the forward-index builder,
// measuring build throughput and allocation behavior across corpus sizes
// and thread counts, plus HTML tokenizer throughput.
package benchmark

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/irtools/forward-index-builder/internal/forwardindex"
	"github.com/irtools/forward-index-builder/internal/forwardindex/content"
	"github.com/irtools/forward-index-builder/internal/forwardindex/normalize"
	"github.com/irtools/forward-index-builder/internal/forwardindex/source"
)

func syntheticRecords(n int) []forwardindex.Record {
	vocab := []string{"distributed", "search", "analytics", "platform", "indexing", "query", "engine", "ranking"}
	records := make([]forwardindex.Record, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("document about %s and %s covering %s in production systems",
			vocab[i%len(vocab)], vocab[(i+1)%len(vocab)], vocab[(i+3)%len(vocab)])
		records[i] = source.NewRecord(fmt.Sprintf("doc-%d", i), text)
	}
	return records
}

// BenchmarkBuildThroughput measures full-pipeline build throughput at
// various pre-loaded corpus sizes.
func BenchmarkBuildThroughput(b *testing.B) {
	sizes := []int{100, 1000, 5000}
	for _, n := range sizes {
		b.Run(fmt.Sprintf("documents_%d", n), func(b *testing.B) {
			records := syntheticRecords(n)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				prefix := filepath.Join(b.TempDir(), "idx")
				b.StartTimer()

				builder := &forwardindex.Builder{}
				_, err := builder.Build(context.Background(), forwardindex.BuildOptions{
					Source:       source.NewMemorySource(records),
					Content:      content.Whitespace,
					Term:         normalize.Lowercase,
					OutputPrefix: prefix,
					BatchSize:    500,
					Threads:      4,
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildThreadScaling measures how build wall time responds to
// thread count at a fixed corpus size and batch size.
func BenchmarkBuildThreadScaling(b *testing.B) {
	records := syntheticRecords(10000)
	threadCounts := []int{2, 4, 8}
	for _, threads := range threadCounts {
		b.Run(fmt.Sprintf("threads_%d", threads), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				prefix := filepath.Join(b.TempDir(), "idx")
				b.StartTimer()

				builder := &forwardindex.Builder{}
				_, err := builder.Build(context.Background(), forwardindex.BuildOptions{
					Source:       source.NewMemorySource(records),
					Content:      content.Whitespace,
					Term:         normalize.Lowercase,
					OutputPrefix: prefix,
					BatchSize:    137,
					Threads:      threads,
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHTMLTokenize measures HTML-cleaning tokenizer throughput, the
// pack's cost center for markup-heavy corpora.
func BenchmarkHTMLTokenize(b *testing.B) {
	markup := `<html><body><h1>Distributed Search Engines</h1><p>Distributed search
	engines process queries across multiple shards to achieve horizontal
	scalability. Each shard maintains its own <b>inverted index</b> and
	responds to queries independently.</p></body></html>`

	b.ReportAllocs()
	b.SetBytes(int64(len(markup)))
	for i := 0; i < b.N; i++ {
		var terms []string
		content.HTML(markup, func(term string) { terms = append(terms, term) })
	}
}
