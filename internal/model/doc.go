// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// Values in this package are plain state: all mutation rules (append,
// delta accumulation, error conversion, truncation) live in the store
// package, which applies them copy-on-write so the UI can detect change
// by comparing pointers.
package model
