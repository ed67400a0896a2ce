// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/indus-tui/internal/deepseek"
	"github.com/jeranaias/indus-tui/internal/session"
	"github.com/jeranaias/indus-tui/internal/store"
	"github.com/jeranaias/indus-tui/internal/ui/styles"
	"github.com/jeranaias/indus-tui/internal/upload"
)

type noopGateway struct{}

func (noopGateway) Send(context.Context, []deepseek.ChatMessage, string, []upload.Payload, bool, func(string)) (string, error) {
	return "ok", nil
}

func (noopGateway) SetModel(string) {}

func newTestModel() Model {
	ctrl := session.NewController(store.New(), noopGateway{}, nil, session.Config{})
	return New(ctrl, styles.NewTheme("dark"))
}

func TestFromEvent(t *testing.T) {
	delta := FromEvent(session.Event{Kind: session.EventDelta, ConversationID: "c1", MessageID: "m1", Delta: "tok"})
	require.IsType(t, StreamDeltaMsg{}, delta)
	assert.Equal(t, "tok", delta.(StreamDeltaMsg).Delta)

	settled := FromEvent(session.Event{Kind: session.EventSettled, ConversationID: "c1", MessageID: "m1"})
	require.IsType(t, ResponseSettledMsg{}, settled)

	failErr := errors.New("boom")
	failed := FromEvent(session.Event{Kind: session.EventFailed, Err: failErr})
	require.IsType(t, ResponseFailedMsg{}, failed)
	assert.Equal(t, failErr, failed.(ResponseFailedMsg).Err)

	notice := FromEvent(session.Event{Kind: session.EventNotice, Notice: "hi"})
	require.IsType(t, NoticeMsg{}, notice)
	assert.Equal(t, "hi", notice.(NoticeMsg).Text)
}

func TestAttachStagesValidFile(t *testing.T) {
	m := newTestModel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0o600))

	cmd := m.attach(path)
	require.NotNil(t, cmd)
	require.Len(t, m.pending, 1)
	assert.Equal(t, "notes.txt", m.pending[0].Name)
	assert.Equal(t, []byte("some notes"), m.pending[0].Data)
	assert.True(t, m.toast.Visible())
}

func TestAttachRejectsUnsupportedFile(t *testing.T) {
	m := newTestModel()

	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh"), 0o600))

	m.attach(path)
	assert.Empty(t, m.pending)
}

func TestRunCommandUnknown(t *testing.T) {
	m := newTestModel()
	cmd := m.runCommand("/frobnicate")
	require.NotNil(t, cmd)
	assert.Contains(t, m.toast.View(), "Unknown command")
}

func TestRunCommandDetach(t *testing.T) {
	m := newTestModel()
	m.pending = []upload.Payload{{Name: "a.txt"}, {Name: "b.txt"}}

	m.runCommand("/detach")
	assert.Empty(t, m.pending)
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeTypeFor("report.pdf"))
	assert.Equal(t, "application/octet-stream", mimeTypeFor("blob.quux"))
}
