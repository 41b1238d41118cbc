package forwardindex_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	fi "github.com/irtools/forward-index-builder/internal/forwardindex"
	"github.com/irtools/forward-index-builder/internal/forwardindex/content"
	"github.com/irtools/forward-index-builder/internal/forwardindex/normalize"
	"github.com/irtools/forward-index-builder/internal/forwardindex/source"
)

func TestDispatcherBatchCount(t *testing.T) {
	tests := []struct {
		name          string
		documentCount int
		batchSize     int64
		wantBatches   int64
	}{
		{"exact multiple", 4, 2, 2},
		{"remainder", 5, 2, 3},
		{"batch size one, many documents", 6, 1, 6},
		{"single document, huge batch size", 1, 1000000, 1},
		{"zero documents", 0, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			prefix := filepath.Join(dir, "idx")

			records := make([]fi.Record, tt.documentCount)
			for i := range records {
				records[i] = source.NewRecord("d", "a b")
			}

			d := &fi.Dispatcher{
				Source:       source.NewMemorySource(records),
				Content:      content.Whitespace,
				Term:         normalize.Identity,
				OutputPrefix: prefix,
				BatchSize:    tt.batchSize,
				Threads:      2,
			}
			result, err := d.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if result.BatchCount != tt.wantBatches {
				t.Errorf("BatchCount = %d, want %d", result.BatchCount, tt.wantBatches)
			}
			if result.DocumentCount != int64(tt.documentCount) {
				t.Errorf("DocumentCount = %d, want %d", result.DocumentCount, tt.documentCount)
			}
		})
	}
}

func TestDispatcherRejectsTooFewThreads(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "idx")
	d := &fi.Dispatcher{
		Source:       source.NewMemorySource(nil),
		Content:      content.Whitespace,
		Term:         normalize.Identity,
		OutputPrefix: prefix,
		BatchSize:    1,
		Threads:      1,
	}
	if _, err := d.Run(context.Background()); err == nil {
		t.Fatal("expected a configuration error for threads=1, got nil")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files created on configuration error, found %v", entries)
	}
}
