package forwardindex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func BenchmarkCollectTerms(b *testing.B) {
	dir := b.TempDir()
	prefix := filepath.Join(dir, "idx")
	const batchCount = 20
	for n := int64(0); n < batchCount; n++ {
		writeBenchTerms(b, prefix, n)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := collectTerms(prefix, batchCount); err != nil {
			b.Fatalf("collectTerms: %v", err)
		}
	}
}

func writeBenchTerms(b *testing.B, prefix string, n int64) {
	b.Helper()
	_, _, _, termsPath := batchPaths(prefix, n)
	terms := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		terms = append(terms, fmt.Sprintf("term%d", (i*7+int(n)*13)%5000))
	}
	if err := os.WriteFile(termsPath, []byte(strings.Join(terms, "\n")+"\n"), 0o644); err != nil {
		b.Fatalf("WriteFile: %v", err)
	}
}
