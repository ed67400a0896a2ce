// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view, the main component of the
// indus TUI.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/indus-tui/internal/session"
	"github.com/jeranaias/indus-tui/internal/ui/components"
	"github.com/jeranaias/indus-tui/internal/ui/styles"
	"github.com/jeranaias/indus-tui/internal/upload"
)

// Layout constants.
const (
	sidebarWidth = 28
	inputHeight  = 3
)

// Model is the bubbletea model for the chat interface.
type Model struct {
	ctrl  *session.Controller
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	help     help.Model
	toast    *components.Toast
	renderer *glamour.TermRenderer

	// pending holds file payloads staged with /attach for the next send.
	pending []upload.Payload

	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates the chat model over a session controller.
func New(ctrl *session.Controller, theme *styles.Theme) Model {
	input := textarea.New()
	input.Placeholder = "Type a message, or /help for commands..."
	input.Prompt = "> "
	input.CharLimit = 0
	input.SetHeight(inputHeight)
	input.ShowLineNumbers = false
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Spinner

	return Model{
		ctrl:  ctrl,
		theme: theme,
		keys:  DefaultKeyMap(),
		input: input,
		spin:  spin,
		help:  help.New(),
		toast: components.NewToast(theme),
	}
}

// Init starts cursor blinking and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamDeltaMsg:
		if msg.ConversationID == m.ctrl.ActiveID() {
			m.refreshViewport(true)
		}
		return m, nil

	case ResponseSettledMsg:
		if msg.ConversationID == m.ctrl.ActiveID() {
			m.refreshViewport(true)
		}
		return m, nil

	case ResponseFailedMsg:
		if msg.ConversationID == m.ctrl.ActiveID() {
			m.refreshViewport(true)
		}
		return m, nil

	case NoticeMsg:
		return m, m.toast.Show(msg.Text, components.ToastError)

	case components.ToastExpiredMsg:
		m.toast.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Submit):
		cmd := m.submit()
		return m, cmd

	case key.Matches(msg, keys.NewConversation):
		m.ctrl.NewConversation()
		m.pending = nil
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, keys.NextConversation):
		m.cycleConversation(1)
		return m, nil

	case key.Matches(msg, keys.PrevConversation):
		m.cycleConversation(-1)
		return m, nil

	case key.Matches(msg, keys.Delete):
		cmd := m.deleteActive()
		return m, cmd

	case key.Matches(msg, keys.Retry):
		cmd := m.retry()
		return m, cmd

	case key.Matches(msg, keys.Export):
		cmd := m.export()
		return m, cmd

	case key.Matches(msg, keys.ToggleModel):
		model := m.ctrl.ToggleModel()
		return m, m.toast.Show("Model: "+model, components.ToastInfo)

	case key.Matches(msg, keys.ToggleStream):
		if m.ctrl.ToggleStreaming() {
			return m, m.toast.Show("Streaming on", components.ToastInfo)
		}
		return m, m.toast.Show("Streaming off", components.ToastInfo)

	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycleConversation moves the active conversation by offset in the list.
func (m *Model) cycleConversation(offset int) {
	convs := m.ctrl.Conversations()
	if len(convs) < 2 {
		return
	}
	active := m.ctrl.ActiveID()
	for i, conv := range convs {
		if conv.ID == active {
			next := (i + offset + len(convs)) % len(convs)
			_ = m.ctrl.SetActive(convs[next].ID)
			break
		}
	}
	m.pending = nil
	m.refreshViewport(true)
}

// deleteActive removes the current conversation.
func (m *Model) deleteActive() tea.Cmd {
	if err := m.ctrl.DeleteConversation(m.ctrl.ActiveID()); err != nil {
		return m.toast.Show(err.Error(), components.ToastError)
	}
	m.pending = nil
	m.refreshViewport(true)
	return m.toast.Show("Conversation deleted", components.ToastInfo)
}

// retry re-dispatches the last failed exchange.
func (m *Model) retry() tea.Cmd {
	switch err := m.ctrl.Retry(context.Background()); err {
	case nil:
		m.refreshViewport(true)
		return nil
	case session.ErrBusy:
		return m.toast.Show("A response is already in flight", components.ToastError)
	case session.ErrNothingToRetry:
		return m.toast.Show("Nothing to retry", components.ToastInfo)
	default:
		return m.toast.Show(err.Error(), components.ToastError)
	}
}

// export writes the active conversation to a Markdown file.
func (m *Model) export() tea.Cmd {
	path, err := m.ctrl.Export()
	if err != nil {
		return m.toast.Show("Export failed: "+err.Error(), components.ToastError)
	}
	return m.toast.Show("Exported to "+path, components.ToastInfo)
}

// send dispatches the typed message with any staged attachments.
func (m *Model) send(text string) tea.Cmd {
	payloads := m.pending

	switch err := m.ctrl.Send(context.Background(), text, payloads); err {
	case nil:
		m.pending = nil
		m.input.Reset()
		m.refreshViewport(true)
		return nil
	case session.ErrEmptyMessage:
		return m.toast.Show("Nothing to send", components.ToastInfo)
	case session.ErrBusy:
		return m.toast.Show("Wait for the current response to finish", components.ToastError)
	default:
		return m.toast.Show(err.Error(), components.ToastError)
	}
}

// resize applies a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - sidebarWidth - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := height - inputHeight - 5
	if contentHeight < 3 {
		contentHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}
	m.input.SetWidth(width - 4)
	m.help.Width = width

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(contentWidth-2),
	)
	if err == nil {
		m.renderer = renderer
	}
}

// refreshViewport re-renders the transcript. When follow is true, the view
// sticks to the bottom so streamed content stays visible.
func (m *Model) refreshViewport(follow bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}
