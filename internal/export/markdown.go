// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/indus-tui/internal/model"
	"github.com/jeranaias/indus-tui/internal/util"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown format. Error messages are
// included and flagged; they are part of the transcript.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", conv.GetTitle()))
	if !conv.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("_Started %s, %d messages._\n\n",
			formatTimestamp(conv.CreatedAt), len(conv.Messages)))
	}

	for i, msg := range conv.Messages {
		heading := msg.Role.DisplayName()
		if msg.IsError {
			heading += " (error)"
		}
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("## %s — %s\n\n", heading, formatTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("## %s\n\n", heading))
		}

		sb.WriteString(strings.TrimRight(msg.Content, "\n"))
		sb.WriteString("\n")

		if len(msg.Attachments) > 0 {
			sb.WriteString("\nAttached files:\n")
			for _, att := range msg.Attachments {
				sb.WriteString(fmt.Sprintf("- %s (%s MB)\n", att.Name, util.BytesToMB(att.Size())))
			}
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// formatTimestamp renders a timestamp in the local timezone.
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
