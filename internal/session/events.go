// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// EventKind identifies what happened during a dispatch.
type EventKind int

// Event kinds emitted by the controller.
const (
	// EventDelta signals one streamed content fragment was appended.
	EventDelta EventKind = iota

	// EventSettled signals the in-flight response completed successfully.
	EventSettled

	// EventFailed signals the in-flight response failed; the message is
	// frozen with error text.
	EventFailed

	// EventNotice carries a user-facing notification outside the transcript.
	EventNotice
)

// Event is pushed to the sink as a dispatch progresses. Events for a
// conversation arrive in the order the store applied them.
type Event struct {
	Kind           EventKind
	ConversationID string
	MessageID      string

	// Delta is set for EventDelta.
	Delta string

	// Err is set for EventFailed.
	Err error

	// Notice is set for EventNotice.
	Notice string
}

// Sink receives controller events. It must be safe to call from the
// dispatch goroutine; a bubbletea program's Send method qualifies.
type Sink func(Event)
