package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildTrimsQuestion(t *testing.T) {
	t.Parallel()

	req, err := Build("  What is backpropagation?  ", nil, true, 5)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if req.Query != "What is backpropagation?" {
		t.Fatalf("question not trimmed: %q", req.Query)
	}
	if req.DocumentIDs != nil {
		t.Fatalf("empty selection must map to the nil filter, got %#v", req.DocumentIDs)
	}
	if !req.IncludeImages || req.MaxResults != 5 {
		t.Fatalf("options not carried: %#v", req)
	}
}

func TestBuildRejectsEmptyQuestion(t *testing.T) {
	t.Parallel()

	for _, question := range []string{"", "   ", "\n\t "} {
		if _, err := Build(question, nil, false, 5); !errors.Is(err, ErrEmptyQuestion) {
			t.Fatalf("Build(%q) err = %v, want ErrEmptyQuestion", question, err)
		}
	}
}

func TestBuildClampsMaxResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{7, 7},
		{20, 20},
		{21, 20},
		{1000, 20},
	}
	for _, tt := range tests {
		req, err := Build("q", nil, false, tt.in)
		if err != nil {
			t.Fatalf("Build with maxResults=%d failed: %v", tt.in, err)
		}
		if req.MaxResults != tt.want {
			t.Fatalf("maxResults %d clamped to %d, want %d", tt.in, req.MaxResults, tt.want)
		}
	}
}

func TestBuildDeduplicatesFilter(t *testing.T) {
	t.Parallel()

	req, err := Build("q", []string{"b", "a", "b", "", "a"}, false, 5)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !reflect.DeepEqual(req.DocumentIDs, []string{"b", "a"}) {
		t.Fatalf("filter = %#v, want deduplicated first-seen order", req.DocumentIDs)
	}
}

func TestBuildAllBlankSelectionMeansAll(t *testing.T) {
	t.Parallel()

	req, err := Build("q", []string{"", ""}, false, 5)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if req.DocumentIDs != nil {
		t.Fatalf("blank-only selection should collapse to the nil filter, got %#v", req.DocumentIDs)
	}
}
