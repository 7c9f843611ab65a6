package tui

import (
	"context"
	"time"

	"github.com/csheth/docquery/internal/api"
	"github.com/csheth/docquery/internal/catalog"
)

// QueryService is the slice of the backend the model needs for questions.
// *api.Client satisfies it; tests substitute a double.
type QueryService interface {
	SubmitQuery(ctx context.Context, request api.QueryRequest) (*api.QueryResult, error)
	ResolveURL(ref string) string
}

// CatalogService supplies the selectable document catalog.
type CatalogService interface {
	Refresh(ctx context.Context) ([]catalog.DocumentRef, error)
	Snapshot() []catalog.DocumentRef
}

// Config wires runtime options into the TUI program.
type Config struct {
	Service        QueryService
	Catalog        CatalogService
	RequestTimeout time.Duration
}

type focusArea int

const (
	focusComposer focusArea = iota
	focusDocuments
)

const (
	anchorDocuments = "documents"
	anchorAnswer    = "answer"
	anchorSources   = "sources"
)

var sectionSequence = []string{
	anchorDocuments,
	anchorAnswer,
	anchorSources,
}

const heroTagline = "Ask your documents anything with DocQuery."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	questionPreviewLimit      = 72
)

const (
	defaultRequestTimeout = 60 * time.Second
	catalogTimeout        = 30 * time.Second
)

const composerPlaceholder = "Ask a question about the selected documents…"

type catalogResultMsg struct {
	refs []catalog.DocumentRef
	err  error
}

type queryResultMsg struct {
	seq    uint64
	result *api.QueryResult
	err    error
}
