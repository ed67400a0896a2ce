// indus - a terminal chat client for the DeepSeek API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/indus-tui/internal/config"
	"github.com/jeranaias/indus-tui/internal/deepseek"
	"github.com/jeranaias/indus-tui/internal/session"
	"github.com/jeranaias/indus-tui/internal/store"
	"github.com/jeranaias/indus-tui/internal/ui/chat"
	"github.com/jeranaias/indus-tui/internal/ui/styles"
	"github.com/jeranaias/indus-tui/internal/upload"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Global program reference for async event delivery
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "indus: %v\n", err)
		os.Exit(1)
	}

	closeLog := setupLogging()
	defer closeLog()
	log.Printf("indus %s (%s) starting", Version, GitCommit)

	if cfg.API.Key == "" {
		fmt.Fprintln(os.Stderr, "indus: no API key configured")
		fmt.Fprintln(os.Stderr, "Set INDUS_API_KEY or add it to ~/.indus/config.toml:")
		fmt.Fprintln(os.Stderr, "\n  [api]\n  key = \"sk-...\"")
		os.Exit(1)
	}

	client := deepseek.NewClient(cfg.API.Key).
		WithBaseURL(cfg.API.BaseURL).
		WithTimeout(cfg.Timeout())

	uploads := upload.NewOrchestrator(upload.NewHTTPUploader(cfg.Upload.URL))
	gateway := deepseek.NewGateway(client, uploads)

	exportDir, err := cfg.ExportDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "indus: %v\n", err)
		os.Exit(1)
	}

	// The sink forwards controller events into the bubbletea loop. Events
	// can fire before Run; the nil check drops those (startup only).
	sink := func(ev session.Event) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			if msg := chat.FromEvent(ev); msg != nil {
				p.Send(msg)
			}
		}
	}

	ctrl := session.NewController(store.New(), gateway, sink, session.Config{
		Model:          cfg.DefaultModel,
		Stream:         cfg.UI.Stream,
		ExportDir:      exportDir,
		WelcomeMessage: cfg.UI.WelcomeMessage,
	})

	theme := styles.NewTheme(cfg.UI.Theme)
	p := tea.NewProgram(
		chat.New(ctrl, theme),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running indus: %v\n", err)
		os.Exit(1)
	}
	log.Printf("indus exiting")
}

// setupLogging sends the standard logger to ~/.indus/indus.log. Logging to
// stderr would corrupt the alternate screen.
func setupLogging() func() {
	dir, err := config.Dir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	path := filepath.Join(dir, "indus.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { _ = f.Close() }
}
