package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 90 * time.Second
	maxErrorBodyBytes  = 4096
)

// QueryRequest is the validated payload handed to SubmitQuery. A nil
// DocumentIDs slice means "search every document" and serializes as null on
// the wire; callers build it through query.Build rather than by hand.
type QueryRequest struct {
	Query         string   `json:"query"`
	DocumentIDs   []string `json:"document_ids"`
	IncludeImages bool     `json:"include_images"`
	MaxResults    int      `json:"max_results"`
}

// Citation attributes part of a generated answer to a source excerpt.
type Citation struct {
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	Text         string  `json:"text,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	PageNumber   *int    `json:"page_number,omitempty"`
	Confidence   float64 `json:"confidence"`
}

// QueryResult is the successful response to a submitted query. Citations keep
// the server-determined order.
type QueryResult struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	ProcessingTime float64    `json:"processing_time"`
}

// DocumentMetadata is the descriptive record for one ingested document. The
// backend's metadata endpoint is still partially implemented; callers must
// treat failures here as soft (see catalog).
type DocumentMetadata struct {
	DocumentID   string `json:"document_id"`
	Filename     string `json:"filename"`
	DocumentType string `json:"document_type"`
	PageCount    int    `json:"page_count"`
	ChunkCount   int    `json:"chunk_count"`
}

// Client is a typed wrapper over the document QA backend. It holds no mutable
// state beyond the base address and the injected HTTP client.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the given base URL. A nil httpClient falls back to
// a default with a generous timeout; per-request deadlines come from the
// caller's context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.base
}

// ListDocumentIDs fetches the identifiers of every ingested document.
func (c *Client) ListDocumentIDs(ctx context.Context) ([]string, error) {
	var payload struct {
		DocumentIDs []string `json:"document_ids"`
	}
	if err := c.getJSON(ctx, "/documents", &payload); err != nil {
		return nil, err
	}
	if payload.DocumentIDs == nil {
		return nil, &Error{Kind: KindServer, Message: "document listing missing document_ids field"}
	}
	return payload.DocumentIDs, nil
}

// DocumentMetadata fetches the descriptive record for a single document.
func (c *Client) DocumentMetadata(ctx context.Context, documentID string) (DocumentMetadata, error) {
	var meta DocumentMetadata
	path := fmt.Sprintf("/documents/%s/metadata", url.PathEscape(documentID))
	if err := c.getJSON(ctx, path, &meta); err != nil {
		return DocumentMetadata{}, err
	}
	return meta, nil
}

// SubmitQuery posts a question to the backend and decodes the answer. A nil
// request filter serializes as document_ids: null, which the backend reads
// as "search everything".
func (c *Client) SubmitQuery(ctx context.Context, request QueryRequest) (*QueryResult, error) {
	buf, err := json.Marshal(request)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/query", bytes.NewReader(buf))
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, classifyStatus(resp, body)
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, decodeError(err)
	}
	return &result, nil
}

// RawAssetURL builds the address of a server-hosted binary asset. It never
// performs network I/O; callers hand the URL to whatever displays the asset.
func (c *Client) RawAssetURL(documentID, filename string) string {
	return fmt.Sprintf("%s/documents/%s/raw/%s", c.base, url.PathEscape(documentID), url.PathEscape(filename))
}

// ResolveURL turns a server-relative reference (such as a citation image
// path) into an absolute URL against the backend base. Absolute references
// pass through untouched.
func (c *Client) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.base + ref
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return networkError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return classifyStatus(resp, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}
