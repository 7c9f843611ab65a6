package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docquery/internal/api"
	"github.com/csheth/docquery/internal/catalog"
	"github.com/csheth/docquery/internal/tui"
)

const defaultServer = "http://localhost:8000"

func main() {
	server := flag.String("server", defaultServerURL(), "base URL of the DocQuery backend")
	timeout := flag.Duration("timeout", 60*time.Second, "per-query request timeout")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	if _, err := url.ParseRequestURI(*server); err != nil {
		fmt.Println("invalid server URL:", err)
		os.Exit(1)
	}

	client := api.New(*server, nil)

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Service:        client,
			Catalog:        catalog.New(client),
			RequestTimeout: *timeout,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

func defaultServerURL() string {
	if fromEnv := os.Getenv("DOCQUERY_SERVER"); fromEnv != "" {
		return fromEnv
	}
	return defaultServer
}
