// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the chat lifecycle: it owns the active
// conversation, dispatches sends and retries through the gateway, applies
// streamed deltas to the store, and pushes events to the UI.
package session
