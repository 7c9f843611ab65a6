package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListDocumentIDs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"document_ids":["doc-a","doc-b"]}`))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	ids, err := client.ListDocumentIDs(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "doc-a" || ids[1] != "doc-b" {
		t.Fatalf("unexpected ids: %#v", ids)
	}
}

func TestListDocumentIDsServerFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"vector store offline"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	_, err := client.ListDocumentIDs(context.Background())
	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatal("expected an error")
	}
	if apiErr.Kind != KindServer {
		t.Fatalf("expected server kind, got %v", apiErr.Kind)
	}
	if apiErr.Message != "vector store offline" {
		t.Fatalf("detail not propagated: %q", apiErr.Message)
	}
}

func TestSubmitQuerySerializesAllFilterAsNull(t *testing.T) {
	t.Parallel()

	var rawBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"Backpropagation is gradient descent through the chain rule.","citations":[],"processing_time":1.5}`))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	result, err := client.SubmitQuery(context.Background(), QueryRequest{
		Query:         "What is backpropagation?",
		DocumentIDs:   nil,
		IncludeImages: true,
		MaxResults:    5,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Answer == "" {
		t.Fatal("answer missing")
	}

	if string(rawBody["document_ids"]) != "null" {
		t.Fatalf("document_ids should serialize as null, got %s", rawBody["document_ids"])
	}
	if string(rawBody["query"]) != `"What is backpropagation?"` {
		t.Fatalf("unexpected query field: %s", rawBody["query"])
	}
	if string(rawBody["include_images"]) != "true" {
		t.Fatalf("unexpected include_images field: %s", rawBody["include_images"])
	}
	if string(rawBody["max_results"]) != "5" {
		t.Fatalf("unexpected max_results field: %s", rawBody["max_results"])
	}
}

func TestSubmitQueryExplicitFilterPassesThrough(t *testing.T) {
	t.Parallel()

	var rawBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"ok","citations":[],"processing_time":0.1}`))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	if _, err := client.SubmitQuery(context.Background(), QueryRequest{
		Query:       "anything",
		DocumentIDs: []string{"doc-a", "doc-b"},
		MaxResults:  3,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var ids []string
	if err := json.Unmarshal(rawBody["document_ids"], &ids); err != nil {
		t.Fatalf("document_ids not a list: %s", rawBody["document_ids"])
	}
	if len(ids) != 2 || ids[0] != "doc-a" || ids[1] != "doc-b" {
		t.Fatalf("unexpected filter: %#v", ids)
	}
}

func TestSubmitQueryClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"bad request", http.StatusBadRequest, `{"detail":"query must not be empty"}`, KindValidation, "query must not be empty"},
		{"missing document", http.StatusNotFound, `{"detail":"document not found"}`, KindNotFound, "document not found"},
		{"backend crash", http.StatusInternalServerError, `{"detail":"llm unavailable"}`, KindServer, "llm unavailable"},
		{"opaque failure", http.StatusBadGateway, `upstream timeout`, KindServer, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}))
			defer server.Close()

			client := New(server.URL, server.Client())
			_, err := client.SubmitQuery(context.Background(), QueryRequest{Query: "q", MaxResults: 1})
			apiErr := AsError(err)
			if apiErr == nil {
				t.Fatal("expected an error")
			}
			if apiErr.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", apiErr.Kind, tt.wantKind)
			}
			if apiErr.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if tt.wantMsg != "" && apiErr.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestSubmitQueryNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := New(server.URL, nil)
	_, err := client.SubmitQuery(context.Background(), QueryRequest{Query: "q", MaxResults: 1})
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("network errors carry no status, got %d", apiErr.StatusCode)
	}
}

func TestSubmitQueryTimeoutIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := New(server.URL, server.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SubmitQuery(ctx, QueryRequest{Query: "q", MaxResults: 1})
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network error on timeout, got %v", err)
	}
}

func TestSubmitQueryRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": 42}`))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	_, err := client.SubmitQuery(context.Background(), QueryRequest{Query: "q", MaxResults: 1})
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Kind != KindServer {
		t.Fatalf("shape mismatch should classify as server error, got %v", err)
	}
}

func TestDocumentMetadataNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"document not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	_, err := client.DocumentMetadata(context.Background(), "missing-doc")
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Kind != KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRawAssetURL(t *testing.T) {
	t.Parallel()

	client := New("http://localhost:8000/", nil)
	got := client.RawAssetURL("doc 1", "fig ure.png")
	want := "http://localhost:8000/documents/doc%201/raw/fig%20ure.png"
	if got != want {
		t.Fatalf("RawAssetURL = %q, want %q", got, want)
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	client := New("http://localhost:8000", nil)
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/documents/doc-1/raw/fig.png", "http://localhost:8000/documents/doc-1/raw/fig.png"},
		{"documents/doc-1/raw/fig.png", "http://localhost:8000/documents/doc-1/raw/fig.png"},
		{"https://cdn.example.com/fig.png", "https://cdn.example.com/fig.png"},
	}
	for _, tt := range tests {
		if got := client.ResolveURL(tt.in); got != tt.want {
			t.Fatalf("ResolveURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
