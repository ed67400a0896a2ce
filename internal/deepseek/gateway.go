// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package deepseek

import (
	"context"

	"github.com/jeranaias/indus-tui/internal/upload"
)

// systemPreamble is the fixed instruction prepended to every request. The
// uploaded-file context fragment, when present, is appended to it.
const systemPreamble = "You are Indus, an AI assistant for industrial and engineering questions. " +
	"Answer accurately and concisely. Format answers in Markdown and reply in the language the user writes in."

// FallbackResponse is returned when a buffered completion carries no choices.
const FallbackResponse = "No response received from the model."

// Gateway assembles and dispatches chat requests: upload context first, then
// system preamble, prior history, and the new user turn.
type Gateway struct {
	client  *Client
	uploads *upload.Orchestrator
}

// NewGateway creates a gateway over the client and upload orchestrator.
func NewGateway(client *Client, uploads *upload.Orchestrator) *Gateway {
	return &Gateway{client: client, uploads: uploads}
}

// Client returns the underlying API client.
func (g *Gateway) Client() *Client {
	return g.client
}

// SetModel switches the model used for subsequent requests.
func (g *Gateway) SetModel(model string) {
	g.client.SetModel(model)
}

// Send performs one chat call. history holds the prior user/assistant turns;
// content is the new user turn; payloads are uploaded first and folded into
// the system message. When stream is true, onDelta is invoked once per
// non-empty delta in arrival order and the returned string equals their
// concatenation; otherwise the buffered response content (or
// FallbackResponse) is returned.
func (g *Gateway) Send(ctx context.Context, history []ChatMessage, content string, payloads []upload.Payload, stream bool, onDelta func(string)) (string, error) {
	system := systemPreamble
	if fragment := g.uploads.BuildFragment(ctx, payloads); fragment != "" {
		system += "\n\n" + fragment
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, NewSystemMessage(system))
	messages = append(messages, history...)
	messages = append(messages, NewUserMessage(content))

	if stream {
		return g.client.ChatStream(ctx, messages, onDelta)
	}

	resp, err := g.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	if answer := resp.GetContent(); answer != "" {
		return answer, nil
	}
	return FallbackResponse, nil
}
