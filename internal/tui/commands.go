package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docquery/internal/api"
)

func refreshCatalogCmd(catalogService CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()

		refs, err := catalogService.Refresh(ctx)
		if err != nil {
			log.Printf("catalog refresh failed: %v", err)
			return catalogResultMsg{err: err}
		}
		return catalogResultMsg{refs: refs}
	}
}

// submitQueryCmd runs one query round trip. The sequence number rides along
// so the model can discard responses that no submission is waiting for.
func submitQueryCmd(service QueryService, request api.QueryRequest, seq uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started := time.Now()
		result, err := service.SubmitQuery(ctx, request)
		if err != nil {
			log.Printf("query %d failed after %s: %v", seq, time.Since(started).Round(time.Millisecond), err)
			return queryResultMsg{seq: seq, err: err}
		}
		log.Printf("query %d answered in %.2fs (%d citations)", seq, result.ProcessingTime, len(result.Citations))
		return queryResultMsg{seq: seq, result: result}
	}
}
