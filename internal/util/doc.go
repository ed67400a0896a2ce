// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the indus TUI.
//
// String helpers are rune-aware so that titles and previews derived from
// user content never split a multi-byte UTF-8 character. File helpers
// write atomically so an interrupted export never leaves a half-written
// artifact behind.
package util
