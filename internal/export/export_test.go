// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/indus-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.CreatedAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	user := model.NewUserMessage("How do I size a relief valve?", []model.Attachment{
		model.NewAttachment("datasheet.pdf", "application/pdf", make([]byte, 1024*1024)),
	})
	answer := model.NewAssistantMessage()
	answer.Content = "Start from the required relieving capacity."
	answer.Open = false

	failed := model.NewAssistantMessage()
	failed.Content = "Error: request timed out"
	failed.IsError = true
	failed.Open = false

	conv.Messages = []*model.Message{user, answer, failed}
	conv.Title = "Relief valve sizing"
	return conv
}

func TestMarkdownExport(t *testing.T) {
	exporter := NewMarkdownExporter(nil)
	out, err := exporter.Export(sampleConversation())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Relief valve sizing")
	assert.Contains(t, text, "## You — ")
	assert.Contains(t, text, "## Assistant — ")
	assert.Contains(t, text, "## Assistant (error) — ")
	assert.Contains(t, text, "Error: request timed out")
	assert.Contains(t, text, "- datasheet.pdf (1.00 MB)")
}

func TestMarkdownExportWithoutTimestamps(t *testing.T) {
	exporter := NewMarkdownExporter(&Options{IncludeTimestamps: false})
	out, err := exporter.Export(sampleConversation())
	require.NoError(t, err)

	assert.Contains(t, string(out), "## You\n")
	assert.NotContains(t, string(out), "## You — ")
}

func TestMarkdownExportRejectsEmpty(t *testing.T) {
	exporter := NewMarkdownExporter(nil)

	_, err := exporter.Export(nil)
	assert.Error(t, err)

	_, err = exporter.Export(model.NewConversation())
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	conv := sampleConversation()

	path, err := ExportToFile(NewMarkdownExporter(nil), conv, &Options{
		OutputDir:         filepath.Join(dir, "exports"),
		IncludeTimestamps: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Relief_valve_sizing.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Relief valve sizing")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Relief valve sizing", "Relief_valve_sizing"},
		{`bad/name:with*chars?`, "badnamewithchars"},
		{"  spaced   out  ", "spaced_out"},
		{"///", "conversation"},
		{"", "conversation"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
