// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the indus TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the raw colors a theme is built from.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Surface   lipgloss.Color
}

// darkPalette is the default color set.
var darkPalette = Palette{
	Primary:   lipgloss.Color("39"),  // blue
	Secondary: lipgloss.Color("213"), // pink
	Text:      lipgloss.Color("252"),
	Muted:     lipgloss.Color("241"),
	Error:     lipgloss.Color("196"),
	Success:   lipgloss.Color("42"),
	Surface:   lipgloss.Color("236"),
}

var lightPalette = Palette{
	Primary:   lipgloss.Color("27"),
	Secondary: lipgloss.Color("127"),
	Text:      lipgloss.Color("235"),
	Muted:     lipgloss.Color("245"),
	Error:     lipgloss.Color("160"),
	Success:   lipgloss.Color("28"),
	Surface:   lipgloss.Color("254"),
}

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile
	Palette      Palette

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style

	// Sidebar (conversation list)
	Sidebar            lipgloss.Style
	SidebarTitle       lipgloss.Style
	SidebarItem        lipgloss.Style
	SidebarItemActive  lipgloss.Style
	SidebarItemPreview lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ErrorLabel     lipgloss.Style
	ErrorText      lipgloss.Style
	MessageMeta    lipgloss.Style
	Attachment     lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusModel  lipgloss.Style
	StatusStream lipgloss.Style
	StatusBusy   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Notifications
	Toast      lipgloss.Style
	ToastError lipgloss.Style

	Spinner lipgloss.Style
}

// NewTheme builds a theme for the given name ("dark" or "light").
func NewTheme(name string) *Theme {
	p := darkPalette
	isDark := true
	if name == "light" {
		p = lightPalette
		isDark = false
	}

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}

	t.App = lipgloss.NewStyle().Foreground(p.Text)
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Padding(0, 1)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Muted).
		PaddingRight(1)
	t.SidebarTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	t.SidebarItem = lipgloss.NewStyle().Foreground(p.Text)
	t.SidebarItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)
	t.SidebarItemPreview = lipgloss.NewStyle().Foreground(p.Muted)

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	t.ErrorLabel = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	t.ErrorText = lipgloss.NewStyle().Foreground(p.Error)
	t.MessageMeta = lipgloss.NewStyle().Foreground(p.Muted)
	t.Attachment = lipgloss.NewStyle().Italic(true).Foreground(p.Muted)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Text).
		Padding(0, 1)
	t.StatusModel = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	t.StatusStream = lipgloss.NewStyle().Foreground(p.Success)
	t.StatusBusy = lipgloss.NewStyle().Foreground(p.Secondary)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(p.Muted)

	t.Toast = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Success).
		Padding(0, 1)
	t.ToastError = t.Toast.BorderForeground(p.Error)

	t.Spinner = lipgloss.NewStyle().Foreground(p.Secondary)

	return t
}
