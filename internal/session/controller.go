// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/indus-tui/internal/deepseek"
	"github.com/jeranaias/indus-tui/internal/export"
	"github.com/jeranaias/indus-tui/internal/model"
	"github.com/jeranaias/indus-tui/internal/store"
	"github.com/jeranaias/indus-tui/internal/upload"
)

// Error variables for controller operations.
var (
	// ErrBusy indicates a response is already in flight for the conversation.
	ErrBusy = errors.New("a response is already in flight for this conversation")

	// ErrNothingToRetry indicates the conversation has no failed exchange.
	ErrNothingToRetry = errors.New("no failed response to retry")

	// ErrEmptyMessage indicates a send with no content and no files.
	ErrEmptyMessage = errors.New("nothing to send")
)

// Gateway dispatches one chat round trip. history holds prior turns in wire
// format; the returned string is the final assistant content.
type Gateway interface {
	Send(ctx context.Context, history []deepseek.ChatMessage, content string, payloads []upload.Payload, stream bool, onDelta func(string)) (string, error)
	SetModel(model string)
}

// Config holds controller configuration.
type Config struct {
	// Model is the initial model ID. Default: deepseek-chat.
	Model string

	// Stream enables streamed responses.
	Stream bool

	// ExportDir is where exported conversations are written.
	ExportDir string

	// WelcomeMessage, when non-empty, seeds each new conversation with an
	// assistant greeting. Greetings are display-only; they are excluded
	// from the history replayed to the model (they carry no user turn).
	WelcomeMessage string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the conversation lifecycle. All exported methods are safe
// for concurrent use; dispatches run on their own goroutine and report back
// through the event sink.
type Controller struct {
	mu sync.Mutex

	store   *store.Store
	gateway Gateway
	sink    Sink
	cfg     Config

	model    string
	stream   bool
	activeID string
	inflight map[string]bool
}

// NewController creates a controller and seeds the first conversation.
func NewController(st *store.Store, gw Gateway, sink Sink, cfg Config) *Controller {
	if cfg.Model == "" {
		cfg.Model = deepseek.ModelChat
	}
	c := &Controller{
		store:    st,
		gateway:  gw,
		sink:     sink,
		cfg:      cfg,
		model:    cfg.Model,
		stream:   cfg.Stream,
		inflight: make(map[string]bool),
	}
	gw.SetModel(cfg.Model)
	conv := c.seedConversation()
	c.activeID = conv.ID
	return c
}

// seedConversation creates a conversation, adding the welcome greeting when
// configured.
func (c *Controller) seedConversation() *model.Conversation {
	conv := c.store.NewConversation()
	if c.cfg.WelcomeMessage != "" {
		greeting := model.NewAssistantMessage()
		greeting.Content = c.cfg.WelcomeMessage
		greeting.Open = false
		_ = c.store.AppendMessage(conv.ID, greeting)
	}
	return conv
}

// =============================================================================
// CONVERSATION REGISTRY
// =============================================================================

// Active returns the current conversation state.
func (c *Controller) Active() *model.Conversation {
	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()
	return c.store.Get(id)
}

// ActiveID returns the active conversation's ID.
func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// SetActive switches the active conversation.
func (c *Controller) SetActive(id string) error {
	if c.store.Get(id) == nil {
		return store.ErrConversationNotFound
	}
	c.mu.Lock()
	c.activeID = id
	c.mu.Unlock()
	return nil
}

// NewConversation creates a fresh conversation and makes it active.
func (c *Controller) NewConversation() *model.Conversation {
	conv := c.seedConversation()
	c.mu.Lock()
	c.activeID = conv.ID
	c.mu.Unlock()
	return conv
}

// DeleteConversation removes a conversation. When the active one is removed
// the most recent remaining conversation becomes active; removing the last
// conversation creates a fresh one, so there is always an active target.
func (c *Controller) DeleteConversation(id string) error {
	if err := c.store.RemoveConversation(id); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.inflight, id)
	wasActive := c.activeID == id
	c.mu.Unlock()

	if !wasActive {
		return nil
	}

	if remaining := c.store.Snapshot(); len(remaining) > 0 {
		c.mu.Lock()
		c.activeID = remaining[0].ID
		c.mu.Unlock()
		return nil
	}

	conv := c.seedConversation()
	c.mu.Lock()
	c.activeID = conv.ID
	c.mu.Unlock()
	return nil
}

// Conversations returns all conversations, newest first.
func (c *Controller) Conversations() []*model.Conversation {
	return c.store.Snapshot()
}

// Busy reports whether a response is in flight for the conversation.
func (c *Controller) Busy(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[id]
}

// =============================================================================
// SETTINGS
// =============================================================================

// Model returns the current model ID.
func (c *Controller) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// ToggleModel switches between the chat and coder models and returns the
// new model ID.
func (c *Controller) ToggleModel() string {
	c.mu.Lock()
	if c.model == deepseek.ModelChat {
		c.model = deepseek.ModelCoder
	} else {
		c.model = deepseek.ModelChat
	}
	next := c.model
	c.mu.Unlock()

	c.gateway.SetModel(next)
	return next
}

// Streaming reports whether responses are streamed.
func (c *Controller) Streaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream
}

// ToggleStreaming flips the streaming flag and returns the new value.
func (c *Controller) ToggleStreaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stream = !c.stream
	return c.stream
}

// =============================================================================
// SEND / RETRY
// =============================================================================

// Send submits a user turn on the active conversation. The user message and
// an open assistant placeholder are appended before this returns; the round
// trip itself runs on a goroutine and reports through the sink. A send with
// neither content nor files returns ErrEmptyMessage; a conversation with a
// response already in flight returns ErrBusy.
func (c *Controller) Send(ctx context.Context, content string, payloads []upload.Payload) error {
	if strings.TrimSpace(content) == "" && len(payloads) == 0 {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	convID := c.activeID
	if c.inflight[convID] {
		c.mu.Unlock()
		return ErrBusy
	}
	conv := c.store.Get(convID)
	if conv == nil {
		c.mu.Unlock()
		return store.ErrConversationNotFound
	}
	// History is captured before the new turn: the gateway appends the
	// user content itself.
	history := conv.ToChatMessages()
	stream := c.stream
	c.inflight[convID] = true
	c.mu.Unlock()

	attachments := make([]model.Attachment, len(payloads))
	for i, p := range payloads {
		attachments[i] = model.NewAttachment(p.Name, p.MimeType, p.Data)
	}

	if err := c.store.AppendMessage(convID, model.NewUserMessage(content, attachments)); err != nil {
		c.clearInflight(convID)
		return err
	}

	placeholder := model.NewAssistantMessage()
	if err := c.store.AppendMessage(convID, placeholder); err != nil {
		c.clearInflight(convID)
		return err
	}

	go c.dispatch(ctx, convID, placeholder.ID, history, content, payloads, stream)
	return nil
}

// Retry re-dispatches the last user turn after a failed response. The failed
// assistant message is dropped; the user message, including its original
// file payloads, is sent again unchanged.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	convID := c.activeID
	if c.inflight[convID] {
		c.mu.Unlock()
		return ErrBusy
	}
	conv := c.store.Get(convID)
	if conv == nil {
		c.mu.Unlock()
		return store.ErrConversationNotFound
	}

	last := conv.LastMessage()
	if last == nil || !last.IsError {
		c.mu.Unlock()
		return ErrNothingToRetry
	}
	userMsg := conv.LastUserMessage()
	if userMsg == nil {
		c.mu.Unlock()
		return ErrNothingToRetry
	}
	stream := c.stream
	c.inflight[convID] = true
	c.mu.Unlock()

	c.store.DropLastMessage(convID)

	// The retried turn is the tail of the conversation now; everything
	// before it is history.
	conv = c.store.Get(convID)
	history := model.ChatHistory(conv.Messages[:len(conv.Messages)-1])

	payloads := make([]upload.Payload, len(userMsg.Attachments))
	for i, att := range userMsg.Attachments {
		payloads[i] = upload.Payload{Name: att.Name, MimeType: att.MimeType, Data: att.Payload}
	}

	placeholder := model.NewAssistantMessage()
	if err := c.store.AppendMessage(convID, placeholder); err != nil {
		c.clearInflight(convID)
		return err
	}

	go c.dispatch(ctx, convID, placeholder.ID, history, userMsg.Content, payloads, stream)
	return nil
}

// dispatch performs the round trip and settles the placeholder.
func (c *Controller) dispatch(ctx context.Context, convID, messageID string, history []deepseek.ChatMessage, content string, payloads []upload.Payload, stream bool) {
	defer c.clearInflight(convID)

	final, err := c.gateway.Send(ctx, history, content, payloads, stream, func(delta string) {
		c.store.AppendDelta(convID, messageID, delta)
		c.emit(Event{Kind: EventDelta, ConversationID: convID, MessageID: messageID, Delta: delta})
	})
	if err != nil {
		c.store.MarkError(convID, messageID, errorText(err))
		c.emit(Event{Kind: EventFailed, ConversationID: convID, MessageID: messageID, Err: err})
		c.emit(Event{Kind: EventNotice, ConversationID: convID, Notice: "Request failed: " + err.Error()})
		return
	}

	c.store.ReplaceContent(convID, messageID, final)
	c.emit(Event{Kind: EventSettled, ConversationID: convID, MessageID: messageID})
}

func (c *Controller) clearInflight(convID string) {
	c.mu.Lock()
	delete(c.inflight, convID)
	c.mu.Unlock()
}

func (c *Controller) emit(ev Event) {
	if c.sink != nil {
		c.sink(ev)
	}
}

// errorText renders the frozen transcript content for a failed response.
func errorText(err error) string {
	var streamErr *deepseek.StreamError
	if errors.As(err, &streamErr) && streamErr.Partial != "" {
		return fmt.Sprintf("Error: %s (response interrupted)", streamErr.Err)
	}
	return fmt.Sprintf("Error: %s", err)
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes the active conversation to a Markdown file in the configured
// export directory and returns the file path.
func (c *Controller) Export() (string, error) {
	conv := c.Active()
	if conv == nil {
		return "", store.ErrConversationNotFound
	}
	opts := export.DefaultOptions()
	if c.cfg.ExportDir != "" {
		opts.OutputDir = c.cfg.ExportDir
	}
	return export.ExportToFile(export.NewMarkdownExporter(opts), conv, opts)
}
