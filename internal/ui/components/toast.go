// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable TUI widgets.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/indus-tui/internal/ui/styles"
)

// ToastLevel classifies a notification.
type ToastLevel int

// Toast levels.
const (
	ToastInfo ToastLevel = iota
	ToastError
)

// toastDuration is how long a toast stays visible.
const toastDuration = 4 * time.Second

// ToastExpiredMsg signals that a toast should be dismissed.
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient notification shown above the status bar.
type Toast struct {
	theme   *styles.Theme
	message string
	level   ToastLevel
	id      int
	visible bool
}

// NewToast creates a toast component.
func NewToast(theme *styles.Theme) *Toast {
	return &Toast{theme: theme}
}

// Show displays a message and returns the command that expires it. A new
// toast replaces the current one; the stale expiry is ignored by ID.
func (t *Toast) Show(message string, level ToastLevel) tea.Cmd {
	t.id++
	t.message = message
	t.level = level
	t.visible = true

	id := t.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Update handles expiry messages.
func (t *Toast) Update(msg tea.Msg) {
	if expired, ok := msg.(ToastExpiredMsg); ok && expired.ID == t.id {
		t.visible = false
	}
}

// Visible reports whether the toast is currently shown.
func (t *Toast) Visible() bool {
	return t.visible
}

// View renders the toast, or an empty string when hidden.
func (t *Toast) View() string {
	if !t.visible {
		return ""
	}
	style := t.theme.Toast
	if t.level == ToastError {
		style = t.theme.ToastError
	}
	return style.Render(t.message)
}
