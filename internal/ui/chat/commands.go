// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/indus-tui/internal/ui/components"
	"github.com/jeranaias/indus-tui/internal/upload"
	"github.com/jeranaias/indus-tui/internal/util"
)

// submit interprets the input line: slash commands run locally, anything
// else is sent to the model.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.runCommand(text)
	}

	return m.send(text)
}

// runCommand executes a slash command.
func (m *Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "/attach":
		if len(args) == 0 {
			return m.toast.Show("Usage: /attach <path>", components.ToastInfo)
		}
		return m.attach(strings.Join(args, " "))

	case "/detach":
		n := len(m.pending)
		m.pending = nil
		return m.toast.Show(fmt.Sprintf("Removed %d staged file(s)", n), components.ToastInfo)

	case "/new":
		m.ctrl.NewConversation()
		m.pending = nil
		m.refreshViewport(true)
		return nil

	case "/delete":
		return m.deleteActive()

	case "/retry":
		return m.retry()

	case "/export":
		return m.export()

	case "/model":
		return m.toast.Show("Model: "+m.ctrl.ToggleModel(), components.ToastInfo)

	case "/stream":
		if m.ctrl.ToggleStreaming() {
			return m.toast.Show("Streaming on", components.ToastInfo)
		}
		return m.toast.Show("Streaming off", components.ToastInfo)

	case "/help":
		m.showHelp = !m.showHelp
		return nil

	case "/quit":
		return tea.Quit

	default:
		return m.toast.Show("Unknown command: "+command, components.ToastError)
	}
}

// attach stages a file for the next send. Validation happens here so the
// user hears about an unsupported file before dispatch.
func (m *Model) attach(path string) tea.Cmd {
	data, err := os.ReadFile(path)
	if err != nil {
		return m.toast.Show("Cannot read "+path+": "+err.Error(), components.ToastError)
	}

	name := filepath.Base(path)
	payload := upload.Payload{
		Name:     name,
		MimeType: mimeTypeFor(name),
		Data:     data,
	}
	if err := upload.Validate(payload); err != nil {
		return m.toast.Show(err.Error(), components.ToastError)
	}

	m.pending = append(m.pending, payload)
	return m.toast.Show(
		fmt.Sprintf("Staged %s (%s MB), %d file(s) pending", name, util.BytesToMB(int64(len(data))), len(m.pending)),
		components.ToastInfo,
	)
}

// mimeTypeFor guesses a MIME type from the file extension.
func mimeTypeFor(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
