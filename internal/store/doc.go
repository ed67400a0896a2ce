// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory conversation registry and owns every
// mutation rule: append, delta accumulation, wholesale replacement, error
// conversion, tail truncation, and removal.
//
// Mutations are copy-on-write. Each operation clones the touched
// conversation (and the touched message) before applying the change, so a
// snapshot handed to the UI is never mutated underneath it and change
// detection is a pointer comparison. Each operation is a single synchronous
// transition behind one mutex; deltas for a given stream therefore land in
// strict arrival order.
package store
