package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/csheth/docquery/internal/api"
)

// DocumentRef is one selectable entry in the catalog. MetadataMissing marks
// entries whose display name had to be fabricated from the identifier.
type DocumentRef struct {
	ID              string
	DisplayName     string
	MetadataMissing bool
}

// Source is the slice of the backend the catalog needs. *api.Client
// satisfies it.
type Source interface {
	ListDocumentIDs(ctx context.Context) ([]string, error)
	DocumentMetadata(ctx context.Context, documentID string) (api.DocumentMetadata, error)
}

// Cache holds the most recent catalog snapshot. Refresh replaces the whole
// snapshot at once; readers keep iterating whatever slice they already hold.
// Overlapping refreshes are not deduplicated; the caller sequences them.
type Cache struct {
	source Source

	mu       sync.RWMutex
	snapshot []DocumentRef
}

func New(source Source) *Cache {
	return &Cache{source: source}
}

// Snapshot returns the current catalog. The returned slice is never mutated
// after publication; callers must not modify it.
func (c *Cache) Snapshot() []DocumentRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Refresh fetches the document listing and per-document metadata, then
// replaces the snapshot. A failure to list identifiers is fatal; a failure
// to fetch any single document's metadata is not: the entry is kept with a
// placeholder display name and the soft-failure flag set.
func (c *Cache) Refresh(ctx context.Context) ([]DocumentRef, error) {
	ids, err := c.source.ListDocumentIDs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ids))
	refs := make([]DocumentRef, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, c.describe(ctx, id))
	}

	c.mu.Lock()
	c.snapshot = refs
	c.mu.Unlock()
	return refs, nil
}

func (c *Cache) describe(ctx context.Context, id string) DocumentRef {
	meta, err := c.source.DocumentMetadata(ctx, id)
	if err != nil || strings.TrimSpace(meta.Filename) == "" {
		return DocumentRef{
			ID:              id,
			DisplayName:     placeholderName(id),
			MetadataMissing: true,
		}
	}
	return DocumentRef{ID: id, DisplayName: meta.Filename}
}

// placeholderName fabricates a display name from the identifier prefix. The
// backend's metadata endpoint is not fully implemented yet, so this path is
// expected, not exceptional.
func placeholderName(id string) string {
	const prefixLen = 8
	runes := []rune(id)
	if len(runes) <= prefixLen {
		return fmt.Sprintf("Document %s", id)
	}
	return fmt.Sprintf("Document %s…", string(runes[:prefixLen]))
}
