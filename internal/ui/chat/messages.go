// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/indus-tui/internal/session"
)

// =============================================================================
// SESSION EVENT MESSAGES
// =============================================================================

// StreamDeltaMsg carries one streamed content fragment.
type StreamDeltaMsg struct {
	ConversationID string
	MessageID      string
	Delta          string
}

// ResponseSettledMsg signals the in-flight response completed.
type ResponseSettledMsg struct {
	ConversationID string
	MessageID      string
}

// ResponseFailedMsg signals the in-flight response failed.
type ResponseFailedMsg struct {
	ConversationID string
	MessageID      string
	Err            error
}

// NoticeMsg carries a user-facing notification.
type NoticeMsg struct {
	Text string
}

// FromEvent converts a controller event into the bubbletea message the chat
// model consumes. The sink side calls program.Send(FromEvent(ev)).
func FromEvent(ev session.Event) tea.Msg {
	switch ev.Kind {
	case session.EventDelta:
		return StreamDeltaMsg{ConversationID: ev.ConversationID, MessageID: ev.MessageID, Delta: ev.Delta}
	case session.EventSettled:
		return ResponseSettledMsg{ConversationID: ev.ConversationID, MessageID: ev.MessageID}
	case session.EventFailed:
		return ResponseFailedMsg{ConversationID: ev.ConversationID, MessageID: ev.MessageID, Err: ev.Err}
	case session.EventNotice:
		return NoticeMsg{Text: ev.Notice}
	default:
		return nil
	}
}
