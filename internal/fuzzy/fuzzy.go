// Package fuzzy implements approximate (typo-tolerant) substring matching
// with match spans, using the bitap bit-parallel algorithm. Scores are
// normalized edit distances: 0.0 requires an exact match, 1.0 matches
// anything. Matching is case-insensitive and operates on runes, so span
// indices address characters of the searched text, not bytes.
package fuzzy

import (
	"sort"
	"strings"
)

// Config tunes the matcher.
type Config struct {
	// Threshold is the maximum normalized score a per-field match may
	// have and still be accepted.
	Threshold float64

	// MinMatchCharLength discards matched character runs shorter than
	// this from the span output; a field with no surviving span is not
	// a match.
	MinMatchCharLength int

	// IgnoreLocation disables the positional penalty, so a match deep
	// inside a long field scores the same as one at the start.
	IgnoreLocation bool

	// Location and Distance configure the positional penalty when
	// IgnoreLocation is false: score grows by proximity/Distance.
	Location int
	Distance int
}

// DefaultConfig returns the matcher defaults used by the search path.
func DefaultConfig() Config {
	return Config{
		Threshold:          0.35,
		MinMatchCharLength: 2,
		IgnoreLocation:     true,
		Location:           0,
		Distance:           100,
	}
}

// Field is one searchable text field of a document.
type Field struct {
	Key  string
	Text string
}

// Document is one member of the search corpus. Field order is the order
// fields are matched and reported in.
type Document struct {
	Fields []Field
}

// Match is an accepted per-field match with its character spans.
type Match struct {
	Key string `json:"key"`
	// Indices are inclusive [start, end] rune spans into the field text.
	Indices [][2]int `json:"indices"`
}

// Result is a matched document with its relevance score. Lower is better.
type Result struct {
	Index   int     `json:"-"`
	Score   float64 `json:"score"`
	Matches []Match `json:"matches"`
}

// Search matches query against every document and returns accepted
// results ordered ascending by score, ties kept in corpus order. The
// same corpus, query, and config always produce identical output.
func Search(docs []Document, query string, cfg Config) []Result {
	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(pattern) == 0 || len(docs) == 0 {
		return nil
	}

	var results []Result
	for idx, doc := range docs {
		var matches []Match
		best := 1.0
		accepted := false

		for _, field := range doc.Fields {
			ok, score, spans := MatchPattern(field.Text, string(pattern), cfg)
			if !ok || len(spans) == 0 {
				continue
			}
			matches = append(matches, Match{Key: field.Key, Indices: spans})
			if !accepted || score < best {
				best = score
			}
			accepted = true
		}

		if accepted {
			results = append(results, Result{Index: idx, Score: best, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// MatchPattern matches pattern against a single text field. Patterns
// wider than one bitap word are split into chunks; the reported score is
// the chunk average and the spans are the union of chunk spans.
func MatchPattern(text, pattern string, cfg Config) (bool, float64, [][2]int) {
	textRunes := []rune(strings.ToLower(text))
	patternRunes := []rune(strings.ToLower(pattern))

	if len(patternRunes) == 0 || len(textRunes) == 0 {
		return false, 1, nil
	}

	mask := make([]bool, len(textRunes))
	totalScore := 0.0
	chunks := 0
	anyMatch := false

	for start := 0; start < len(patternRunes); start += patternChunkSize {
		end := start + patternChunkSize
		if end > len(patternRunes) {
			end = len(patternRunes)
		}

		ok, score, chunkMask := bitapSearch(textRunes, patternRunes[start:end], cfg)
		if ok {
			anyMatch = true
		}
		totalScore += score
		chunks++
		for i, m := range chunkMask {
			if m {
				mask[i] = true
			}
		}
	}

	if !anyMatch {
		return false, 1, nil
	}

	score := totalScore / float64(chunks)
	if score > cfg.Threshold {
		return false, score, nil
	}
	return true, score, maskToSpans(mask, cfg.MinMatchCharLength)
}
