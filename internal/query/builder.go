package query

import (
	"errors"
	"strings"

	"github.com/csheth/docquery/internal/api"
)

const (
	// MinResults and MaxResults bound the result-count control.
	MinResults = 1
	MaxResults = 20
	// DefaultMaxResults matches the backend's default.
	DefaultMaxResults = 5
)

// ErrEmptyQuestion rejects questions that are empty after trimming. It is the
// only way Build can fail.
var ErrEmptyQuestion = errors.New("question text is empty")

// Build assembles a validated query request from user-controlled inputs.
//
// An empty selection means "search everything" and produces a nil filter,
// which serializes as null on the wire. Out-of-range result counts are
// clamped rather than rejected; the UI control already enforces the bounds,
// this just keeps the invariant when it doesn't.
func Build(questionText string, selectedIDs []string, includeImages bool, maxResults int) (api.QueryRequest, error) {
	question := strings.TrimSpace(questionText)
	if question == "" {
		return api.QueryRequest{}, ErrEmptyQuestion
	}

	return api.QueryRequest{
		Query:         question,
		DocumentIDs:   normalizeFilter(selectedIDs),
		IncludeImages: includeImages,
		MaxResults:    clampResults(maxResults),
	}, nil
}

func clampResults(n int) int {
	if n < MinResults {
		return MinResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

// normalizeFilter drops duplicates while keeping first-seen order, and maps
// an empty selection to nil ("all").
func normalizeFilter(selectedIDs []string) []string {
	if len(selectedIDs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(selectedIDs))
	filter := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		filter = append(filter, id)
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}
