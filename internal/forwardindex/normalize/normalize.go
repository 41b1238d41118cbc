// Package normalize provides the standard process_term strategies: the
// identity function, lowercasing, and a light suffix-stripping stemmer.
// All three satisfy forwardindex.TermFunc.
package normalize

import "strings"

// Identity returns term unchanged.
func Identity(term string) string { return term }

// Lowercase returns the lowercased form of term.
func Lowercase(term string) string { return strings.ToLower(term) }

// suffixRule is one entry of the stemming table: strip suffix, append
// replacement, but only if the result is at least minLen characters long.
type suffixRule struct {
	suffix      string
	replacement string
	minLen      int
}

var suffixRules = []suffixRule{
	{"ational", "ate", 2},
	{"tional", "tion", 2},
	{"encies", "ence", 2},
	{"ances", "ance", 2},
	{"ments", "ment", 2},
	{"izing", "ize", 2},
	{"ating", "ate", 2},
	{"iness", "y", 2},
	{"ously", "ous", 2},
	{"ively", "ive", 2},
	{"eness", "ene", 2},
	{"tion", "t", 3},
	{"sion", "s", 3},
	{"ying", "y", 2},
	{"ling", "l", 3},
	{"ies", "y", 2},
	{"ing", "", 3},
	{"ers", "er", 2},
	{"est", "", 3},
	{"ful", "", 3},
	{"ous", "", 3},
	{"ess", "", 3},
	{"ble", "", 3},
	{"ed", "", 3},
	{"er", "", 3},
	{"ly", "", 3},
	{"es", "", 3},
	{"s", "", 3},
}

// Stem lowercases term and applies a single suffix-stripping pass, adapted
// from the teacher platform's tokenizer.stem(). It is deliberately not a
// full Porter stemmer: one rule fires per term, the first whose suffix
// matches and whose result meets the minimum length.
func Stem(term string) string {
	word := strings.ToLower(term)
	for _, rule := range suffixRules {
		if strings.HasSuffix(word, rule.suffix) {
			stemmed := word[:len(word)-len(rule.suffix)] + rule.replacement
			if len(stemmed) >= rule.minLen {
				return stemmed
			}
		}
	}
	return word
}
