// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// An assistant message starts in an open state (Open=true) with empty
// content and is filled either incrementally from stream deltas or wholesale
// from a buffered completion. Once IsError is set the content is the
// user-facing failure text and deltas no longer apply. User content is
// immutable after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Open marks an assistant message whose generation is still in flight.
	Open bool `json:"-"`

	// IsError marks a failed generation; the content is the error text.
	IsError bool `json:"is_error,omitempty"`

	// Attachments are the files sent with a user message, in pick order.
	Attachments []Attachment `json:"attachments,omitempty"`
}

// NewUserMessage creates a user message with optional attachments.
func NewUserMessage(content string, attachments []Attachment) *Message {
	return &Message{
		ID:          generateID(),
		Role:        RoleUser,
		Content:     content,
		Timestamp:   time.Now(),
		Attachments: attachments,
	}
}

// NewAssistantMessage creates an empty, open assistant placeholder.
func NewAssistantMessage() *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Open:      true,
	}
}

// Clone returns a copy of the message. The attachment slice is copied so a
// mutation never aliases a previously returned snapshot.
func (m *Message) Clone() *Message {
	cp := *m
	if len(m.Attachments) > 0 {
		cp.Attachments = make([]Attachment, len(m.Attachments))
		copy(cp.Attachments, m.Attachments)
	}
	return &cp
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
