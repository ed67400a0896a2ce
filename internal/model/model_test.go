// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"first line only", "Hello\nworld", "Hello"},
		{"long first line clipped", strings.Repeat("a", 35), strings.Repeat("a", 30) + "..."},
		{"exactly thirty", strings.Repeat("b", 30), strings.Repeat("b", 30)},
		{"whitespace trimmed", "  Hello there  \nmore", "Hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.content))
		})
	}
}

func TestDerivePreview(t *testing.T) {
	assert.Equal(t, "Hello world", DerivePreview("Hello\nworld"))

	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", DerivePreview(long))
}

func TestNewUserMessage(t *testing.T) {
	att := NewAttachment("report.pdf", "application/pdf", []byte("PDFDATA"))
	msg := NewUserMessage("see attached", []Attachment{att})

	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "see attached", msg.Content)
	assert.False(t, msg.Open)
	assert.False(t, msg.IsError)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "report.pdf", msg.Attachments[0].Name)
	assert.Equal(t, int64(7), msg.Attachments[0].Size())
	assert.NotEmpty(t, msg.Attachments[0].BlobRef)
	assert.True(t, strings.HasPrefix(msg.ID, "msg_"))
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage()

	assert.Equal(t, RoleAssistant, msg.Role)
	assert.True(t, msg.Open)
	assert.True(t, msg.IsEmpty())
}

func TestMessageClone(t *testing.T) {
	msg := NewUserMessage("hi", []Attachment{NewAttachment("a.txt", "text/plain", nil)})
	cp := msg.Clone()

	require.NotSame(t, msg, cp)
	cp.Attachments[0].Name = "changed"
	assert.Equal(t, "a.txt", msg.Attachments[0].Name)
}

func TestConversationAccessors(t *testing.T) {
	conv := NewConversation()
	assert.True(t, conv.IsEmpty())
	assert.Nil(t, conv.LastMessage())
	assert.Nil(t, conv.LastUserMessage())
	assert.Equal(t, "New Conversation", conv.GetTitle())
	assert.True(t, strings.HasPrefix(conv.ID, "conv_"))

	user := NewUserMessage("question", nil)
	asst := NewAssistantMessage()
	conv.Messages = append(conv.Messages, user, asst)

	assert.Same(t, asst, conv.LastMessage())
	assert.Same(t, user, conv.LastUserMessage())
	assert.Same(t, user, conv.MessageByID(user.ID))
	assert.Nil(t, conv.MessageByID("msg_missing"))
	assert.Equal(t, 2, conv.MessageCount())
}

func TestToChatMessages(t *testing.T) {
	conv := NewConversation()

	user := NewUserMessage("Explain X", nil)
	answered := NewAssistantMessage()
	answered.Content = "X is ..."
	answered.Open = false

	failed := NewAssistantMessage()
	failed.Content = "Request failed: timeout"
	failed.IsError = true
	failed.Open = false

	empty := NewAssistantMessage()

	conv.Messages = append(conv.Messages, user, answered, failed, empty)

	history := conv.ToChatMessages()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "Explain X", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestChatHistorySkipsLeadingGreeting(t *testing.T) {
	greeting := NewAssistantMessage()
	greeting.Content = "Hello! How can I help?"
	greeting.Open = false

	user := NewUserMessage("Explain X", nil)
	answer := NewAssistantMessage()
	answer.Content = "X is ..."
	answer.Open = false

	history := ChatHistory([]*Message{greeting, user, answer})
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestConversationClone(t *testing.T) {
	conv := NewConversation()
	conv.Messages = append(conv.Messages, NewUserMessage("hi", nil))

	cp := conv.Clone()
	require.NotSame(t, conv, cp)

	cp.Messages = append(cp.Messages, NewAssistantMessage())
	assert.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, 2, cp.MessageCount())
}
