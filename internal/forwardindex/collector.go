package forwardindex

import (
	"bufio"
	"os"
	"sort"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// termSpan is a descriptor over a contiguous, already-sorted-and-unique
// range of the shared term buffer, tagged with its merge-tree level. Two
// spans at the same level are siblings produced by the same merge round
// and are merged into one span at the next level (spec §4.3 step 2-3).
type termSpan struct {
	first, last int
	level       int
}

// collectTerms reads each batch's terms file in turn and performs the
// stack-balanced tournament merge described in spec §4.3: each batch
// contributes one sorted, deduplicated run of its own terms, and
// runs are merged pairwise whenever the top two stack entries share a
// level, keeping every merge roughly balanced.
func collectTerms(outputPrefix string, batchCount int64) ([]string, error) {
	var terms []string
	var stack []termSpan

	for n := int64(0); n < batchCount; n++ {
		_, _, _, termsPath := batchPaths(outputPrefix, n)
		batchTerms, err := readLines(termsPath)
		if err != nil {
			return nil, errors.WrapBatch(errors.PhaseMerge, n, err)
		}

		first := len(terms)
		terms = append(terms, batchTerms...)
		last := len(terms)
		sort.Strings(terms[first:last])
		last = dedupInPlace(terms, first, last)
		terms = terms[:last]

		stack = append(stack, termSpan{first: first, last: last, level: 0})
		stack = collapseEqualLevels(terms, stack)
	}

	for len(stack) > 1 {
		stack = mergeTopPair(terms, stack)
	}

	if len(stack) == 0 {
		return []string{}, nil
	}
	top := stack[0]
	return terms[top.first:top.last], nil
}

// collapseEqualLevels repeatedly merges the top two spans while they share
// a level, producing a balanced merge tree of depth ceil(log2(batchCount)).
func collapseEqualLevels(terms []string, stack []termSpan) []termSpan {
	for len(stack) >= 2 && stack[len(stack)-1].level == stack[len(stack)-2].level {
		stack = mergeTopPair(terms, stack)
	}
	return stack
}

// mergeTopPair merges the top two stack entries, removing duplicates,
// writes the result back into terms starting at the left span's first
// index, and replaces them with a single span one level higher. The two
// spans need not be adjacent: an earlier deduplicating merge can leave
// unused slots between them, which are simply skipped.
func mergeTopPair(terms []string, stack []termSpan) []termSpan {
	n := len(stack)
	left, right := stack[n-2], stack[n-1]

	merged := mergeUnique(terms[left.first:left.last], terms[right.first:right.last])
	copy(terms[left.first:], merged)
	newLast := left.first + len(merged)

	level := left.level
	if right.level > level {
		level = right.level
	}
	level++

	return append(stack[:n-2], termSpan{first: left.first, last: newLast, level: level})
}

// mergeUnique merges two already-sorted, already-unique slices into a new
// sorted, unique slice, dropping duplicates across the two inputs.
func mergeUnique(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return dedupAdjacent(out)
}

// dedupAdjacent removes adjacent duplicate strings from an already-sorted
// slice, compacting in place.
func dedupAdjacent(s []string) []string {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// dedupInPlace removes adjacent duplicates from terms[first:last], which
// must already be sorted, returning the new end index.
func dedupInPlace(terms []string, first, last int) int {
	if last-first <= 1 {
		return last
	}
	write := first + 1
	for read := first + 1; read < last; read++ {
		if terms[read] != terms[write-1] {
			terms[write] = terms[read]
			write++
		}
	}
	return write
}

// readLines reads a newline-delimited text file into a slice of lines,
// dropping the trailing empty line produced by a final newline.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOf(err, "opening %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IOf(err, "reading %s", path)
	}
	return lines, nil
}
