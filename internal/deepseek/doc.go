// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the client for the DeepSeek chat API.
//
// The package covers both request styles the UI uses: a single buffered
// completion and an incrementally streamed one. Streaming responses arrive
// as Server-Sent Events carrying JSON chunk fragments; SSEReader frames the
// events and ChatStream turns them into ordered content deltas. The Gateway
// type sits above the raw client and assembles the full outbound request
// (system preamble, uploaded-file context, history, new turn).
package deepseek
