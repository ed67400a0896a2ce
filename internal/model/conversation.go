// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jeranaias/indus-tui/internal/deepseek"
	"github.com/jeranaias/indus-tui/internal/util"
)

// TitleLimit is the maximum number of runes in a derived title before the
// ellipsis is appended.
const TitleLimit = 30

// PreviewLimit is the maximum number of runes in a sidebar preview before
// the ellipsis is appended.
const PreviewLimit = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one chat thread with its metadata.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        generateConversationID(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// DERIVATION RULES
// =============================================================================

// DeriveTitle builds a conversation title from user content: the first line,
// clipped to TitleLimit runes plus "...".
func DeriveTitle(content string) string {
	return util.ClipRunes(util.FirstLine(content), TitleLimit)
}

// DerivePreview builds a sidebar preview from user content, flattened to one
// line and clipped to PreviewLimit runes plus "...".
func DerivePreview(content string) string {
	return util.ClipRunes(util.CollapseSpace(content), PreviewLimit)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastUserMessage returns the most recent user message, scanning backward.
func (c *Conversation) LastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageByID returns a message by its ID, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// API CONVERSION
// =============================================================================

// ToChatMessages converts the conversation into the wire format replayed to
// the model. Error messages are excluded: they are UI state, not dialogue.
// Empty messages (an unfilled placeholder) are skipped as well.
func (c *Conversation) ToChatMessages() []deepseek.ChatMessage {
	return ChatHistory(c.Messages)
}

// ChatHistory converts a message slice into wire format under the same
// filtering rules as ToChatMessages. Replayed dialogue starts at the first
// user turn; a seeded greeting before it is display-only and never sent.
func ChatHistory(msgs []*Message) []deepseek.ChatMessage {
	messages := make([]deepseek.ChatMessage, 0, len(msgs))
	seenUser := false
	for _, msg := range msgs {
		if msg.IsError {
			continue
		}
		if !seenUser {
			if msg.Role != RoleUser {
				continue
			}
			seenUser = true
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		messages = append(messages, deepseek.ChatMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}
	return messages
}

// =============================================================================
// COPY SEMANTICS
// =============================================================================

// Clone creates a copy of the conversation with a fresh message slice.
// Message values themselves are shared until individually rewritten; the
// store clones a message before mutating it.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	clone.Messages = make([]*Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	return &clone
}

// generateConversationID creates a unique conversation ID.
func generateConversationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "conv_" + hex.EncodeToString(bytes)
}
