// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to files in portable formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/indus-tui/internal/model"
	"github.com/jeranaias/indus-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for conversation exporters.
type Exporter interface {
	// Export converts a conversation to the target format and returns the content.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory.
	OutputDir string

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a conversation using the given exporter and writes it
// under opts.OutputDir, named after the conversation title. Returns the
// output file path.
func ExportToFile(exporter Exporter, conv *model.Conversation, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := SanitizeFilename(conv.GetTitle()) + exporter.FileExtension()
	path := filepath.Join(opts.OutputDir, filename)

	if err := util.AtomicWriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// SanitizeFilename strips characters that are unsafe in file names and
// collapses whitespace to single underscores.
func SanitizeFilename(name string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r < 0x20:
			// dropped
		case r == ' ' || r == '\t':
			if !lastUnderscore {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		default:
			sb.WriteRune(r)
			lastUnderscore = false
		}
	}
	out := strings.Trim(sb.String(), "._")
	if out == "" {
		return "conversation"
	}
	return out
}
