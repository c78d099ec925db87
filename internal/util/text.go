package util

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// NormalizeText lowercases, strips punctuation and collapses whitespace.
// This is the deduplication key used throughout question assembly: generated
// and curated content can express the same question under different ids, so
// identity comparison is always on normalized text.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// DeterministicQuestionID derives a stable id from normalized question text,
// category and difficulty using FNV-1a. Repeated generation of the same
// content converges to the same identity, which makes persisting generated
// questions an idempotent upsert.
func DeterministicQuestionID(text, category, difficulty string) string {
	h := fnv.New64a()
	h.Write([]byte(NormalizeText(text)))
	h.Write([]byte{'|'})
	h.Write([]byte(category))
	h.Write([]byte{'|'})
	h.Write([]byte(difficulty))
	return fmt.Sprintf("genq-%016x", h.Sum64())
}

// ExtractKeywords returns the distinct words longer than three characters
// with stop-words removed, lowercased. Used by the rubric scorer for
// explanation/question overlap checks.
func ExtractKeywords(s string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range strings.Fields(NormalizeText(s)) {
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "also": true,
	"because": true, "been": true, "before": true, "being": true, "between": true,
	"both": true, "could": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "from": true, "further": true, "have": true,
	"having": true, "here": true, "into": true, "itself": true, "just": true,
	"more": true, "most": true, "only": true, "other": true, "over": true,
	"same": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"under": true, "until": true, "very": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true,
}
