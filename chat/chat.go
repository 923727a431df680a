// Package chat implements an ordered conversational session over a content
// generation service. A Chat serializes concurrent sends through a pending
// chain: each send waits for its predecessor's bookkeeping to finish before
// building its request, so every request carries the turns its predecessor
// admitted, and a failed send never wedges the sends queued behind it.
//
// History admission is all or nothing. A send whose response is admissible
// appends exactly two turns (the sent turn and the model reply); any other
// outcome appends nothing. Inadmissible-but-successful sends are reported
// through the observer, since the caller still receives a response and has
// no error to inspect.
package chat

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/generate"
	"github.com/strandworks/genchat/core/response"
	"github.com/strandworks/genchat/observability"
)

// Generator is the service boundary a session drives. *client.Client
// implements it; tests substitute their own.
type Generator interface {
	GenerateContent(ctx context.Context, model string, req *generate.Request, opts *generate.RequestOptions) (*response.Response, error)
	GenerateContentStream(ctx context.Context, model string, req *generate.Request, opts *generate.RequestOptions) (*response.Stream, error)
}

// Option configures a Chat after config-driven initialization.
type Option func(*Chat)

// WithObserver overrides the default slog observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Chat) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithID overrides the generated session identifier, e.g. when resuming a
// persisted transcript under its original ID.
func WithID(id string) Option {
	return func(c *Chat) {
		if id != "" {
			c.id = id
		}
	}
}

// Chat is an ordered conversational session. Safe for concurrent use; sends
// issued concurrently are serialized in arrival order.
type Chat struct {
	id       string
	model    string
	gen      Generator
	params   Config
	observer observability.Observer

	mu   sync.Mutex // guards tail
	tail chan struct{}

	histMu  sync.Mutex
	history []*content.Content
}

// New creates a Chat over gen for the given model. cfg seeds the session and
// may be nil; a seeded history must be well formed or construction fails.
// The session owns its history exclusively from here on.
func New(gen Generator, model string, cfg *Config, opts ...Option) (*Chat, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	if model == "" {
		return nil, ErrNoModel
	}

	params := DefaultConfig()
	params.Merge(cfg)
	if err := content.ValidateHistory(params.History); err != nil {
		return nil, fmt.Errorf("failed to seed history: %w", err)
	}

	// A resolved chain is a closed channel: the first send must not wait.
	resolved := make(chan struct{})
	close(resolved)

	c := &Chat{
		id:       uuid.Must(uuid.NewV7()).String(),
		model:    model,
		gen:      gen,
		params:   params,
		observer: observability.Default(),
		tail:     resolved,
		history:  slices.Clone(params.History),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ID returns the unique session identifier.
func (c *Chat) ID() string {
	return c.id
}

// Model returns the model name the session generates with.
func (c *Chat) Model() string {
	return c.model
}

// SendMessage sends one message and blocks until the model's full response
// is in. message accepts anything content.Format does. On an admissible
// response the sent turn and the reply are appended to history before
// return; the response is returned to the caller either way.
//
// Concurrent calls are serialized: each send observes the history of every
// send issued before it.
func (c *Chat) SendMessage(ctx context.Context, message any, opts ...*generate.RequestOptions) (*response.Response, error) {
	sent, err := content.Format(message)
	if err != nil {
		return nil, err
	}

	prev, done := c.attach()
	if err := c.awaitTurn(ctx, prev, done); err != nil {
		return nil, err
	}
	defer done()

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventSendStart,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "chat.SendMessage",
		Data: map[string]any{
			"chat_id": c.id,
			"parts":   len(sent.Parts),
		},
	})

	resp, err := c.gen.GenerateContent(ctx, c.model, c.buildRequest(sent), c.callOptions(opts))
	if err != nil {
		return nil, err
	}

	c.admit(ctx, "chat.SendMessage", sent, resp)
	return resp, nil
}

// SendMessageStream sends one message and returns a live stream as soon as
// the service starts answering. History bookkeeping continues on a
// background goroutine once the final response is known, and the next queued
// send waits for that bookkeeping, not just for the stream dispatch.
//
// A stream that fails mid-flight admits nothing and is not re-reported
// through the observer; the caller holds the same stream and sees the error
// directly.
func (c *Chat) SendMessageStream(ctx context.Context, message any, opts ...*generate.RequestOptions) (*response.Stream, error) {
	sent, err := content.Format(message)
	if err != nil {
		return nil, err
	}

	prev, done := c.attach()
	if err := c.awaitTurn(ctx, prev, done); err != nil {
		return nil, err
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventSendStart,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "chat.SendMessageStream",
		Data: map[string]any{
			"chat_id": c.id,
			"parts":   len(sent.Parts),
		},
	})

	stream, err := c.gen.GenerateContentStream(ctx, c.model, c.buildRequest(sent), c.callOptions(opts))
	if err != nil {
		done()
		return nil, err
	}

	go c.finishSend(ctx, sent, stream, done)
	return stream, nil
}

// History returns a copy of the conversation history once all sends issued
// before the call have finished their bookkeeping. The returned slice is the
// caller's to keep; the turns themselves are shared and treated as
// immutable.
func (c *Chat) History(ctx context.Context) ([]*content.Content, error) {
	c.mu.Lock()
	tail := c.tail
	c.mu.Unlock()

	select {
	case <-tail:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.histMu.Lock()
	defer c.histMu.Unlock()
	return slices.Clone(c.history), nil
}

// Len returns the number of turns currently admitted to history without
// waiting on in-flight sends.
func (c *Chat) Len() int {
	c.histMu.Lock()
	defer c.histMu.Unlock()
	return len(c.history)
}

// attach appends a fresh unit to the pending chain and returns the previous
// tail plus this unit's completion. The swap happens under the lock before
// any work for the send starts, so concurrent senders acquire a total order.
// done is idempotent.
func (c *Chat) attach() (prev <-chan struct{}, done func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	unit := make(chan struct{})
	prev = c.tail
	c.tail = unit

	var once sync.Once
	return prev, func() { once.Do(func() { close(unit) }) }
}

// awaitTurn blocks until prev resolves. If ctx expires first, the abandoned
// unit's completion is handed to a forwarder that resolves it when prev
// does, so successors still cannot run ahead of the predecessor.
func (c *Chat) awaitTurn(ctx context.Context, prev <-chan struct{}, done func()) error {
	select {
	case <-prev:
		return nil
	case <-ctx.Done():
		go func() {
			<-prev
			done()
		}()
		return ctx.Err()
	}
}

// buildRequest assembles the generation request for one send: the admitted
// history plus the new turn, under the session's fixed parameters. Called
// inside the chain step, after the predecessor resolved.
func (c *Chat) buildRequest(sent *content.Content) *generate.Request {
	c.histMu.Lock()
	contents := make([]*content.Content, 0, len(c.history)+1)
	contents = append(contents, c.history...)
	c.histMu.Unlock()
	contents = append(contents, sent)

	return &generate.Request{
		Contents:          contents,
		SystemInstruction: c.params.SystemInstruction,
		SafetySettings:    c.params.SafetySettings,
		GenerationConfig:  c.params.GenerationConfig,
		Tools:             c.params.Tools,
		ToolConfig:        c.params.ToolConfig,
		CachedContent:     c.params.CachedContent,
	}
}

// callOptions resolves per-send request options: session base first, then
// the caller's overrides in order.
func (c *Chat) callOptions(opts []*generate.RequestOptions) *generate.RequestOptions {
	merged := &generate.RequestOptions{}
	merged.Merge(c.params.RequestOptions)
	for _, o := range opts {
		merged.Merge(o)
	}
	return merged
}

// admit runs the admission step for a completed send. An admissible response
// appends the sent turn and the derived model turn as one unit; anything
// else leaves history untouched and, when the service reported a block,
// emits the warning diagnostic.
func (c *Chat) admit(ctx context.Context, source string, sent *content.Content, resp *response.Response) {
	if response.Valid(resp) {
		reply := modelTurn(resp)

		c.histMu.Lock()
		c.history = append(c.history, sent, reply)
		n := len(c.history)
		c.histMu.Unlock()

		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventTurnsAdmitted,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    source,
			Data: map[string]any{
				"chat_id":     c.id,
				"history_len": n,
			},
		})
		return
	}

	if msg := response.BlockMessage(resp); msg != "" {
		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventSendBlocked,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    source,
			Data: map[string]any{
				"chat_id": c.id,
				"reason":  msg,
			},
		})
	}
}

// finishSend is the background half of a streaming send: wait for the final
// response, run admission, resolve the chain. Transport failures admit
// nothing and stay silent here because the caller sees them on the stream.
// Faults inside the bookkeeping itself have no caller-facing channel, so
// they are recovered and emitted as error events instead of crashing the
// process.
func (c *Chat) finishSend(ctx context.Context, sent *content.Content, stream *response.Stream, done func()) {
	defer done()
	defer func() {
		if r := recover(); r != nil {
			c.observer.OnEvent(ctx, observability.Event{
				Type:      EventChainFault,
				Level:     observability.LevelError,
				Timestamp: time.Now(),
				Source:    "chat.SendMessageStream",
				Data:      map[string]any{"chat_id": c.id},
				Err:       fmt.Errorf("stream admission panicked: %v", r),
			})
		}
	}()

	// The caller abandoning its context must not abandon the bookkeeping.
	final, err := stream.Response(context.Background())
	if err != nil {
		return
	}
	c.admit(ctx, "chat.SendMessageStream", sent, final)
}

// modelTurn derives the history entry for an admitted response. A candidate
// turn missing its role is recorded as model-authored.
func modelTurn(resp *response.Response) *content.Content {
	reply := &content.Content{Role: content.RoleModel}
	if cand := resp.Candidate(); cand != nil && cand.Content != nil {
		if cand.Content.Role != "" {
			reply.Role = cand.Content.Role
		}
		reply.Parts = cand.Content.Parts
	}
	return reply
}
