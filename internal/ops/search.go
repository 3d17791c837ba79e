package ops

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/fuzzy"
)

// MinQueryLength is the shortest query that reaches the matcher. Anything
// shorter short-circuits to an empty result before any store access.
const MinQueryLength = 2

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string
}

// SearchResult is the projection of one matched entry. IsLocked is
// carried through so the consumer can gate the full content behind its
// secondary access check.
type SearchResult struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category entry.Category `json:"category"`
	IsLocked bool           `json:"isLocked"`
	Matches  []fuzzy.Match  `json:"matches"`
}

// Search runs a fuzzy full-text search over titles and normalized
// content. The corpus is read fresh from the store on every call and
// discarded after the response; stale search results would be worse
// than the repeated normalization cost.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]SearchResult, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []SearchResult{}, nil
	}

	entries, err := db.List(ctx, s.db, nil)
	if err != nil {
		return nil, err
	}

	docs := make([]fuzzy.Document, len(entries))
	for i, e := range entries {
		docs[i] = fuzzy.Document{Fields: []fuzzy.Field{
			{Key: "title", Text: e.Title},
			// StripHTML degrades to "" on malformed markup, so one bad
			// document never sinks the whole search.
			{Key: "content", Text: entry.StripHTML(e.Content)},
		}}
	}

	ranked := fuzzy.Search(docs, query, s.matcherConfig())
	if limit := s.searchLimit(); len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]SearchResult, len(ranked))
	for i, r := range ranked {
		e := entries[r.Index]
		results[i] = SearchResult{
			ID:       e.ID,
			Title:    e.Title,
			Category: e.Category,
			IsLocked: e.IsLocked,
			Matches:  r.Matches,
		}
	}

	return results, nil
}
