// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/indus-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

// ConversationError represents a conversation-related error.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// STORE
// =============================================================================

// Store is the in-memory conversation registry. Newest conversations sit at
// the front of the list.
type Store struct {
	mu            sync.RWMutex
	conversations []*model.Conversation
	version       uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		conversations: make([]*model.Conversation, 0),
	}
}

// =============================================================================
// READ SIDE
// =============================================================================

// Get returns the current value of a conversation, or nil if absent.
// The returned value is a snapshot: mutations replace it rather than
// changing it in place.
func (s *Store) Get(id string) *model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.conversations[i]
	}
	return nil
}

// Snapshot returns the conversation list, newest first.
func (s *Store) Snapshot() []*model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Version returns a counter bumped by every mutation, for cheap change
// detection by the render loop.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// =============================================================================
// REGISTRY MUTATIONS
// =============================================================================

// NewConversation creates an empty conversation and prepends it.
func (s *Store) NewConversation() *model.Conversation {
	conv := model.NewConversation()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.version++
	return conv
}

// RemoveConversation deletes a conversation. The store has no notion of an
// active conversation; selecting a replacement is the caller's job.
func (s *Store) RemoveConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrConversationNotFound
	}
	s.conversations = append(s.conversations[:i:i], s.conversations[i+1:]...)
	s.version++
	return nil
}

// =============================================================================
// MESSAGE MUTATIONS
// =============================================================================

// AppendMessage appends a message to a conversation. The first non-blank
// user message sets the title (first line, clipped), at most once; a seeded
// greeting before it does not count. The preview follows every appended
// user message.
func (s *Store) AppendMessage(id string, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrConversationNotFound
	}

	conv := s.conversations[i].Clone()
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now()

	if msg.Role == model.RoleUser && strings.TrimSpace(msg.Content) != "" {
		if conv.Title == "" {
			conv.Title = model.DeriveTitle(msg.Content)
		}
		conv.Preview = model.DerivePreview(msg.Content)
	}

	s.conversations[i] = conv
	s.version++
	return nil
}

// AppendDelta concatenates a text fragment onto an open assistant message.
// A missing conversation or message is a silent no-op: the conversation may
// have been deleted while the stream was in flight, and a stray completion
// must be tolerated. Error-flagged or settled messages ignore deltas.
func (s *Store) AppendDelta(id, messageID, fragment string) {
	if fragment == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}

	conv := s.conversations[i]
	j := messageIndex(conv, messageID)
	if j < 0 {
		return
	}

	msg := conv.Messages[j]
	if msg.Role != model.RoleAssistant || !msg.Open || msg.IsError {
		return
	}

	conv = conv.Clone()
	msg = msg.Clone()
	msg.Content += fragment
	conv.Messages[j] = msg
	conv.UpdatedAt = time.Now()

	s.conversations[i] = conv
	s.version++
}

// ReplaceContent overwrites a message's content wholesale and settles it.
// Used for buffered completions and to finalize a fully streamed message.
// Idempotent; a missing target is a silent no-op like AppendDelta.
func (s *Store) ReplaceContent(id, messageID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}

	conv := s.conversations[i]
	j := messageIndex(conv, messageID)
	if j < 0 {
		return
	}

	conv = conv.Clone()
	msg := conv.Messages[j].Clone()
	msg.Content = text
	msg.Open = false
	conv.Messages[j] = msg
	conv.UpdatedAt = time.Now()

	s.conversations[i] = conv
	s.version++
}

// MarkError overwrites a message's content with the failure text and sets
// the error flag, after which the message is immutable to deltas.
func (s *Store) MarkError(id, messageID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}

	conv := s.conversations[i]
	j := messageIndex(conv, messageID)
	if j < 0 {
		return
	}

	conv = conv.Clone()
	msg := conv.Messages[j].Clone()
	msg.Content = text
	msg.IsError = true
	msg.Open = false
	conv.Messages[j] = msg
	conv.UpdatedAt = time.Now()

	s.conversations[i] = conv
	s.version++
}

// DropLastMessage removes the tail message of a conversation. Used by retry
// to discard a prior error before resubmitting. No-op on an empty
// conversation.
func (s *Store) DropLastMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}

	conv := s.conversations[i]
	if len(conv.Messages) == 0 {
		return
	}

	conv = conv.Clone()
	conv.Messages = conv.Messages[:len(conv.Messages)-1]
	conv.UpdatedAt = time.Now()

	s.conversations[i] = conv
	s.version++
}

// =============================================================================
// HELPERS
// =============================================================================

// indexLocked returns the index of a conversation, or -1. Caller holds the
// lock.
func (s *Store) indexLocked(id string) int {
	for i, conv := range s.conversations {
		if conv.ID == id {
			return i
		}
	}
	return -1
}

// messageIndex returns the index of a message within a conversation, or -1.
func messageIndex(conv *model.Conversation, messageID string) int {
	for i, msg := range conv.Messages {
		if msg.ID == messageID {
			return i
		}
	}
	return -1
}
