// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/indus-tui/internal/model"
	"github.com/jeranaias/indus-tui/internal/util"
)

// View renders the full interface.
func (m Model) View() string {
	if !m.ready {
		return "Starting indus..."
	}

	header := m.theme.Header.Render("indus — DeepSeek chat")

	sidebar := m.renderSidebar()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())

	var sections []string
	sections = append(sections, header, body)

	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	}
	if m.toast.Visible() {
		sections = append(sections, m.toast.View())
	}

	sections = append(sections, m.renderInput(), m.renderStatus())
	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// =============================================================================
// SIDEBAR
// =============================================================================

// renderSidebar lists conversations, newest first.
func (m Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	sb.WriteString("\n\n")

	active := m.ctrl.ActiveID()
	for _, conv := range m.ctrl.Conversations() {
		title := util.TruncateWidth(conv.GetTitle(), sidebarWidth-4)
		if conv.ID == active {
			sb.WriteString(m.theme.SidebarItemActive.Render("> " + title))
		} else {
			sb.WriteString(m.theme.SidebarItem.Render("  " + title))
		}
		sb.WriteString("\n")
		if conv.Preview != "" {
			preview := util.TruncateWidth(conv.Preview, sidebarWidth-4)
			sb.WriteString(m.theme.SidebarItemPreview.Render("  " + preview))
			sb.WriteString("\n")
		}
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(sb.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the active conversation's messages.
func (m Model) renderTranscript() string {
	conv := m.ctrl.Active()
	if conv == nil || conv.IsEmpty() {
		return m.theme.MessageMeta.Render("No messages yet. Say hello!")
	}

	var sb strings.Builder
	for i, msg := range conv.Messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderMessage(msg))
	}
	return sb.String()
}

// renderMessage renders one message with its role label.
func (m Model) renderMessage(msg *model.Message) string {
	var sb strings.Builder

	timestamp := m.theme.MessageMeta.Render(msg.Timestamp.Local().Format("15:04"))
	switch {
	case msg.IsError:
		sb.WriteString(m.theme.ErrorLabel.Render(msg.Role.DisplayName()) + " " + timestamp + "\n")
		sb.WriteString(m.theme.ErrorText.Render(msg.Content))
		sb.WriteString("\n")
	case msg.Role == model.RoleUser:
		sb.WriteString(m.theme.UserLabel.Render(msg.Role.DisplayName()) + " " + timestamp + "\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	default:
		sb.WriteString(m.theme.AssistantLabel.Render(msg.Role.DisplayName()) + " " + timestamp + "\n")
		if msg.Open && msg.Content == "" {
			sb.WriteString(m.spin.View() + m.theme.MessageMeta.Render(" thinking..."))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.renderMarkdown(msg.Content))
		}
	}

	for _, att := range msg.Attachments {
		sb.WriteString(m.theme.Attachment.Render(
			fmt.Sprintf("  [file] %s (%s MB)", att.Name, util.BytesToMB(att.Size()))))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderMarkdown renders assistant content through glamour, falling back to
// plain text when the renderer is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil || content == "" {
		return content + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

// renderInput renders the text area with staged attachment count.
func (m Model) renderInput() string {
	view := m.input.View()
	if len(m.pending) > 0 {
		note := m.theme.Attachment.Render(fmt.Sprintf("%d file(s) staged", len(m.pending)))
		view = lipgloss.JoinVertical(lipgloss.Left, note, view)
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(view)
}

// renderStatus renders the status bar: model, streaming state, activity.
func (m Model) renderStatus() string {
	parts := []string{
		m.theme.StatusModel.Render(m.ctrl.Model()),
	}
	if m.ctrl.Streaming() {
		parts = append(parts, m.theme.StatusStream.Render("stream"))
	} else {
		parts = append(parts, m.theme.ShortcutDesc.Render("buffered"))
	}
	if m.ctrl.Busy(m.ctrl.ActiveID()) {
		parts = append(parts, m.theme.StatusBusy.Render(m.spin.View()+"waiting"))
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}
