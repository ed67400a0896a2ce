// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/indus-tui/internal/model"
)

func newStoreWithConversation(t *testing.T) (*Store, *model.Conversation) {
	t.Helper()
	s := New()
	conv := s.NewConversation()
	return s, conv
}

func TestNewConversationPrepends(t *testing.T) {
	s := New()
	first := s.NewConversation()
	second := s.NewConversation()

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, second.ID, snap[0].ID)
	assert.Equal(t, first.ID, snap[1].ID)
}

func TestAppendMessageSetsTitleAndPreview(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage("Hello\nworld", nil)))

	got := s.Get(conv.ID)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Hello world", got.Preview)
}

func TestTitleSetOnlyOnce(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage("First question", nil)))
	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage("Second question", nil)))

	got := s.Get(conv.ID)
	assert.Equal(t, "First question", got.Title)
	// Preview follows the latest user content.
	assert.Equal(t, "Second question", got.Preview)
}

func TestTitleClippedAtThirtyRunes(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	long := strings.Repeat("a", 35)
	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage(long, nil)))

	assert.Equal(t, strings.Repeat("a", 30)+"...", s.Get(conv.ID).Title)
}

func TestPreviewIgnoresAssistantContent(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage("ask", nil)))
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))
	s.ReplaceContent(conv.ID, asst.ID, "a long assistant answer")

	assert.Equal(t, "ask", s.Get(conv.ID).Preview)
}

func TestAppendDeltaOrderPreservation(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))

	fragments := []string{"Expla", "nation of ", "X follows."}
	for _, f := range fragments {
		s.AppendDelta(conv.ID, asst.ID, f)
	}

	got := s.Get(conv.ID).MessageByID(asst.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Explanation of X follows.", got.Content)
	assert.False(t, got.IsError)
}

func TestAppendDeltaMissingTargetsNoOp(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	// Unknown conversation and unknown message are both tolerated.
	s.AppendDelta("conv_missing", "msg_missing", "x")
	s.AppendDelta(conv.ID, "msg_missing", "x")

	assert.True(t, s.Get(conv.ID).IsEmpty())
}

func TestAppendDeltaAfterConversationDeleted(t *testing.T) {
	s, conv := newStoreWithConversation(t)
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))

	require.NoError(t, s.RemoveConversation(conv.ID))

	// A stray completion callback for the deleted conversation is a no-op.
	s.AppendDelta(conv.ID, asst.ID, "late delta")
	assert.Equal(t, 0, s.Len())
}

func TestMarkErrorFreezesMessage(t *testing.T) {
	s, conv := newStoreWithConversation(t)
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))

	s.AppendDelta(conv.ID, asst.ID, "partial ")
	s.MarkError(conv.ID, asst.ID, "Request failed: timeout")
	s.AppendDelta(conv.ID, asst.ID, "ignored")

	got := s.Get(conv.ID).MessageByID(asst.ID)
	assert.True(t, got.IsError)
	assert.Equal(t, "Request failed: timeout", got.Content)
	assert.False(t, got.Open)
}

func TestReplaceContentIdempotent(t *testing.T) {
	s, conv := newStoreWithConversation(t)
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))

	s.ReplaceContent(conv.ID, asst.ID, "final answer")
	once := s.Get(conv.ID).MessageByID(asst.ID)

	s.ReplaceContent(conv.ID, asst.ID, "final answer")
	twice := s.Get(conv.ID).MessageByID(asst.ID)

	assert.Equal(t, once.Content, twice.Content)
	assert.Equal(t, once.IsError, twice.IsError)
	assert.Equal(t, once.Open, twice.Open)
	assert.Equal(t, "final answer", twice.Content)
}

func TestDropLastMessageRoundTrip(t *testing.T) {
	s, conv := newStoreWithConversation(t)

	require.NoError(t, s.AppendMessage(conv.ID, model.NewUserMessage("question", nil)))
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))
	before := s.Get(conv.ID).MessageCount()

	s.DropLastMessage(conv.ID)
	assert.Equal(t, before-1, s.Get(conv.ID).MessageCount())

	require.NoError(t, s.AppendMessage(conv.ID, model.NewAssistantMessage()))
	assert.Equal(t, before, s.Get(conv.ID).MessageCount())
}

func TestDropLastMessageEmptyConversation(t *testing.T) {
	s, conv := newStoreWithConversation(t)
	s.DropLastMessage(conv.ID)
	assert.Equal(t, 0, s.Get(conv.ID).MessageCount())
}

func TestRemoveConversationNotFound(t *testing.T) {
	s := New()
	err := s.RemoveConversation("conv_missing")
	assert.True(t, errors.Is(err, ErrConversationNotFound))
}

func TestCopyOnWriteSnapshots(t *testing.T) {
	s, conv := newStoreWithConversation(t)
	asst := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(conv.ID, asst))

	before := s.Get(conv.ID)
	v1 := s.Version()

	s.AppendDelta(conv.ID, asst.ID, "delta")

	after := s.Get(conv.ID)
	assert.NotSame(t, before, after, "mutation must yield a new conversation value")
	assert.Greater(t, s.Version(), v1)

	// The old snapshot still shows the pre-mutation state.
	assert.Empty(t, before.MessageByID(asst.ID).Content)
	assert.Equal(t, "delta", after.MessageByID(asst.ID).Content)
}

func TestMutationsKeyedByConversation(t *testing.T) {
	s := New()
	a := s.NewConversation()
	b := s.NewConversation()

	asstA := model.NewAssistantMessage()
	asstB := model.NewAssistantMessage()
	require.NoError(t, s.AppendMessage(a.ID, asstA))
	require.NoError(t, s.AppendMessage(b.ID, asstB))

	// Interleaved sends against different conversations stay isolated.
	s.AppendDelta(a.ID, asstA.ID, "alpha ")
	s.AppendDelta(b.ID, asstB.ID, "beta ")
	s.AppendDelta(a.ID, asstA.ID, "one")
	s.AppendDelta(b.ID, asstB.ID, "two")

	assert.Equal(t, "alpha one", s.Get(a.ID).MessageByID(asstA.ID).Content)
	assert.Equal(t, "beta two", s.Get(b.ID).MessageByID(asstB.ID).Content)
}
