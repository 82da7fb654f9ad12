package openai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pkg/jsonx"
	"github.com/simmyhq/simmy/provider"
	"github.com/simmyhq/simmy/tool"
)

// DefaultModel is the chat model used when none is specified.
const DefaultModel = openai.ChatModelGPT4oMini

// Client implements provider.Client on top of the OpenAI chat completions
// API.
type Client struct {
	client *openai.Client
	model  string

	mu           sync.Mutex
	systemPrompt string
}

var _ provider.Client = (*Client)(nil)

// New creates an adapter for the given chat model. Request options follow
// the SDK's conventions (api key from OPENAI_API_KEY unless overridden).
func New(model string, options ...option.RequestOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: openai.NewClient(options...),
		model:  model,
	}
}

// Startup stores the system prompt. The chat completions API needs no
// capability negotiation.
func (c *Client) Startup(_ context.Context, systemPrompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.systemPrompt = systemPrompt
	return nil
}

// AppendToSystemPrompt extends the active prompt.
func (c *Client) AppendToSystemPrompt(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.systemPrompt += "\n" + text
}

// SystemPrompt returns the currently active system prompt.
func (c *Client) SystemPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.systemPrompt
}

// GetResponse performs one chat completion and maps the result back into a
// transcript Message: a tool-call request when the model asked for tools,
// a terminal reply otherwise.
func (c *Client) GetResponse(ctx context.Context, params provider.ResponseParams) (messages.Message, error) {
	instructions := c.SystemPrompt()
	if params.ContextSuffix != "" {
		instructions += "\n" + params.ContextSuffix
	}

	req, err := buildRequest(c.model, instructions, params.Transcript, params.Tools)
	if err != nil {
		return messages.Message{}, err
	}

	chat, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return messages.Message{}, fmt.Errorf("chat completion failed: %w", err)
	}
	return completionToMessage(chat)
}

// GetTextResponse performs a one-shot completion with its own system prompt
// and no tools.
func (c *Client) GetTextResponse(ctx context.Context, prompt, systemPrompt string) (string, error) {
	req, err := buildRequest(c.model, systemPrompt, []messages.Message{messages.User(prompt)}, nil)
	if err != nil {
		return "", err
	}

	chat, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	msg, err := completionToMessage(chat)
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func buildRequest(model, instructions string, transcript []messages.Message, tools []tool.Definition) (openai.ChatCompletionNewParams, error) {
	oaiTools := make([]openai.ChatCompletionToolParam, len(tools))
	for i, def := range tools {
		jv, err := jsonx.ToDynamicJSON(def.Parameters)
		if err != nil {
			return openai.ChatCompletionNewParams{}, fmt.Errorf("failed to convert schema for tool %s: %w", def.Name, err)
		}

		fd := openai.FunctionDefinitionParam{
			Name:       openai.String(def.Name),
			Parameters: openai.F(shared.FunctionParameters(jv)),
		}
		if strings.TrimSpace(def.Description) != "" {
			fd.Description = openai.String(def.Description)
		}

		oaiTools[i] = openai.ChatCompletionToolParam{
			Type:     openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(fd),
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F(transcriptToOpenAI(instructions, transcript)),
		Model:       openai.F(model),
		N:           openai.Int(1),
		Temperature: openai.Float(0.1),
	}
	if len(oaiTools) > 0 {
		params.Tools = openai.F(oaiTools)
		params.ParallelToolCalls = openai.Bool(true)
	}
	return params, nil
}

func transcriptToOpenAI(instructions string, transcript []messages.Message) []openai.ChatCompletionMessageParamUnion {
	result := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(instructions),
	}

	for _, msg := range transcript {
		switch {
		case msg.Role == messages.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case msg.Role == messages.RoleUser:
			result = append(result, openai.UserMessageParts(openai.TextPart(msg.Content)))
		case msg.Role == messages.RoleTool:
			result = append(result, openai.ToolMessage(msg.ToolCallID, msg.Content))
		case msg.HasToolCalls():
			tcd := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
			for i, tc := range msg.ToolCalls {
				tcd[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   openai.String(tc.ID),
					Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
					Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      openai.String(tc.Name),
						Arguments: openai.String(tc.Arguments),
					}),
				}
			}
			result = append(result, openai.ChatCompletionMessageParam{
				Role:      openai.F(openai.ChatCompletionMessageParamRoleAssistant),
				ToolCalls: openai.F[any](tcd),
			})
		default:
			am := openai.ChatCompletionAssistantMessageParam{
				Role: openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
			}
			if msg.Content != "" {
				am.Content.Value = append(am.Content.Value, openai.TextPart(msg.Content))
			}
			result = append(result, am)
		}
	}
	return result
}

func completionToMessage(chat *openai.ChatCompletion) (messages.Message, error) {
	if len(chat.Choices) == 0 {
		return messages.Message{}, fmt.Errorf("backend returned no choices")
	}

	choice := chat.Choices[0].Message
	if len(choice.ToolCalls) > 0 {
		calls := make([]messages.ToolCall, len(choice.ToolCalls))
		for i, tc := range choice.ToolCalls {
			calls[i] = messages.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
		}
		return messages.AssistantToolCalls(chat.ID, calls...), nil
	}

	msg := messages.Assistant(choice.Content)
	msg.ID = chat.ID
	return msg, nil
}
