// Package agent implements the tool-calling loop that drives a chat session
// until the model produces a final answer.
//
// Each cycle sends the pending message, inspects the response for function
// calls, executes them against the tool registry, and feeds the results back
// as the next message. The loop ends when a response carries no function
// calls or the turn budget runs out.
//
//	runner, err := agent.New(session, registry)
//	result, err := runner.Run(ctx, "What's the weather in Boston?")
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/strandworks/genchat/chat"
	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/response"
	"github.com/strandworks/genchat/observability"
	"github.com/strandworks/genchat/tools"
)

const defaultMaxTurns = 10

// Result holds the outcome of a Run invocation.
type Result struct {
	Response  *response.Response // Final model response.
	Text      string             // Text of the final response.
	Turns     int                // Number of send cycles completed.
	ToolCalls []ToolCallRecord   // Log of all tool invocations.
}

// ToolCallRecord captures one tool invocation made during a run.
type ToolCallRecord struct {
	Name     string         // Tool name from the model's function call.
	Args     map[string]any // Arguments the model supplied.
	Response map[string]any // Value returned to the model.
	IsError  bool           // Whether execution returned an error.
	Turn     int            // Send cycle in which the call occurred.
}

// Option configures a Runner beyond its required collaborators.
type Option func(*Runner)

// WithObserver replaces the default observer.
func WithObserver(o observability.Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithMaxTurns sets the send-cycle budget. Zero means unbounded.
func WithMaxTurns(n int) Option {
	return func(r *Runner) { r.maxTurns = n }
}

// Runner drives a chat session through tool-calling cycles.
//
// The session must advertise the registry's declarations for the model to
// call them; configure the chat with Tools set to registry.Tools().
type Runner struct {
	chat     *chat.Chat
	tools    *tools.Registry
	observer observability.Observer
	maxTurns int
}

// New creates a Runner over an existing chat session and tool registry.
func New(session *chat.Chat, registry *tools.Registry, opts ...Option) (*Runner, error) {
	if session == nil {
		return nil, ErrNilChat
	}
	if registry == nil {
		return nil, ErrNilRegistry
	}

	r := &Runner{
		chat:     session,
		tools:    registry,
		observer: observability.Default(),
		maxTurns: defaultMaxTurns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the tool-calling loop for the given message.
// Returns a Result with the final response, turn count, and tool call log.
// When the turn budget is zero the loop runs until the model produces a
// final response or the context is cancelled. Returns ErrMaxTurns if a
// non-zero budget is exhausted.
func (r *Runner) Run(ctx context.Context, message any) (*Result, error) {
	result := &Result{}

	r.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "agent.Run",
		Data: map[string]any{
			"chat_id":   r.chat.ID(),
			"max_turns": r.maxTurns,
			"tools":     len(r.tools.Declarations()),
		},
	})

	next := message
	for turn := 0; r.maxTurns == 0 || turn < r.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r.observer.OnEvent(ctx, observability.Event{
			Type:      EventTurnStart,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "agent.Run",
			Data:      map[string]any{"turn": turn + 1},
		})

		resp, err := r.chat.SendMessage(ctx, next)
		if err != nil {
			return result, fmt.Errorf("model call failed: %w", err)
		}
		result.Response = resp
		result.Turns = turn + 1

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			result.Text = resp.Text()

			r.observer.OnEvent(ctx, observability.Event{
				Type:      EventRunComplete,
				Level:     observability.LevelInfo,
				Timestamp: time.Now(),
				Source:    "agent.Run",
				Data: map[string]any{
					"turns":           result.Turns,
					"tool_calls":      len(result.ToolCalls),
					"response_length": len(result.Text),
				},
			})

			return result, nil
		}

		parts := make([]content.Part, 0, len(calls))
		for _, call := range calls {
			r.observer.OnEvent(ctx, observability.Event{
				Type:      EventToolCall,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "agent.Run",
				Data: map[string]any{
					"turn": turn + 1,
					"name": call.Name,
				},
			})

			record := ToolCallRecord{
				Name: call.Name,
				Args: call.Args,
				Turn: turn + 1,
			}

			value, callErr := r.tools.Call(ctx, call.Name, call.Args)
			if callErr != nil {
				value = map[string]any{"error": callErr.Error()}
				record.IsError = true
			}
			record.Response = value
			parts = append(parts, content.FunctionResult(call.Name, value))

			r.observer.OnEvent(ctx, observability.Event{
				Type:      EventToolComplete,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "agent.Run",
				Data: map[string]any{
					"turn":  turn + 1,
					"name":  call.Name,
					"error": record.IsError,
				},
			})

			result.ToolCalls = append(result.ToolCalls, record)
		}

		next = parts
	}

	r.observer.OnEvent(ctx, observability.Event{
		Type:      EventError,
		Level:     observability.LevelWarning,
		Timestamp: time.Now(),
		Source:    "agent.Run",
		Data: map[string]any{
			"error": "max turns reached",
			"turns": r.maxTurns,
		},
	})

	return result, ErrMaxTurns
}
