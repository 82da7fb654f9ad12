package provider

import (
	"context"

	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/tool"
)

// ResponseParams carries everything one model call needs.
type ResponseParams struct {
	// Transcript is the full conversation history, oldest first.
	Transcript []messages.Message

	// Tools are the definitions advertised to the model for this call.
	Tools []tool.Definition

	// ContextSuffix is appended to the system prompt for this call only.
	// The agent uses it to inject the current open-task block without
	// growing the stored prompt.
	ContextSuffix string

	// Prevents unkeyed literals
	_ struct{}
}

// Client adapts a concrete model backend.
type Client interface {
	// Startup performs one-time backend initialization and stores the
	// system prompt.
	Startup(ctx context.Context, systemPrompt string) error

	// GetResponse produces exactly one new Message for the given
	// transcript: a terminal reply or a tool-call request.
	GetResponse(ctx context.Context, params ResponseParams) (messages.Message, error)

	// GetTextResponse is a stateless one-shot completion that bypasses
	// tool calling and the stored system prompt.
	GetTextResponse(ctx context.Context, prompt, systemPrompt string) (string, error)

	// AppendToSystemPrompt extends the active system prompt. It is the
	// only supported mutation of the prompt and never replaces it.
	AppendToSystemPrompt(text string)

	// SystemPrompt returns the currently active system prompt.
	SystemPrompt() string
}
