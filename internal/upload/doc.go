// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload submits file payloads to the upload service and condenses
// the results into a textual context fragment for the model request.
//
// Uploads fan out concurrently and are joined before the chat call is made.
// A failed upload never fails the send: the orchestrator degrades to a
// fragment telling the model to answer without file context.
package upload
