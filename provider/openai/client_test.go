package openai

import (
	"testing"

	"github.com/openai/openai-go"
	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptToOpenAI(t *testing.T) {
	transcript := []messages.Message{
		messages.User("look something up"),
		messages.AssistantToolCalls("m1", messages.ToolCall{
			ID:        "call_1",
			Name:      "create_task",
			Arguments: `{"description":"d","requirements":["r"]}`,
		}),
		messages.ToolResult("call_1", "Task created with id task_1."),
		messages.Assistant("Created the task for you."),
	}

	result := transcriptToOpenAI("You are Simmy.", transcript)

	// system prompt + 4 transcript entries
	require.Len(t, result, 5)

	_, ok := result[0].(openai.ChatCompletionSystemMessageParam)
	assert.True(t, ok, "first entry is the system prompt")

	toolCallEntry, ok := result[2].(openai.ChatCompletionMessageParam)
	require.True(t, ok, "tool-call request keeps assistant role with tool_calls")
	assert.Equal(t, openai.ChatCompletionMessageParamRoleAssistant, toolCallEntry.Role.Value)

	toolResult, ok := result[3].(openai.ChatCompletionToolMessageParam)
	require.True(t, ok, "tool result maps to a tool message")
	assert.Equal(t, "call_1", toolResult.ToolCallID.Value)
}

func TestBuildRequestAdvertisesTools(t *testing.T) {
	echo := tool.Must("echo",
		func(*pubsub.Bus, tool.Args) (string, error) { return "", nil },
		tool.Description("Echoes text."),
		tool.Parameters(tool.Object([]string{"text"}, tool.P("text", tool.String("the text")))),
	)

	req, err := buildRequest(DefaultModel, "prompt", nil, []tool.Definition{echo})
	require.NoError(t, err)

	require.Len(t, req.Tools.Value, 1)
	fd := req.Tools.Value[0].Function.Value
	assert.Equal(t, "echo", fd.Name.Value)
	assert.Equal(t, "Echoes text.", fd.Description.Value)

	params := fd.Parameters.Value
	assert.Equal(t, "object", params["type"])
	assert.True(t, req.ParallelToolCalls.Value)
}

func TestBuildRequestWithoutTools(t *testing.T) {
	req, err := buildRequest(DefaultModel, "prompt", []messages.Message{messages.User("hi")}, nil)
	require.NoError(t, err)
	assert.False(t, req.Tools.Present)
}

func TestCompletionToMessage(t *testing.T) {
	t.Run("terminal reply", func(t *testing.T) {
		msg, err := completionToMessage(&openai.ChatCompletion{
			ID: "chatcmpl-1",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "final answer"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "chatcmpl-1", msg.ID)
		assert.Equal(t, "final answer", msg.Content)
		assert.False(t, msg.HasToolCalls())
	})

	t.Run("tool calls", func(t *testing.T) {
		msg, err := completionToMessage(&openai.ChatCompletion{
			ID: "chatcmpl-2",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					ToolCalls: []openai.ChatCompletionMessageToolCall{
						{ID: "call_9", Function: openai.ChatCompletionMessageToolCallFunction{
							Name:      "complete_task",
							Arguments: `{"task_id":"task_1"}`,
						}},
					},
				}},
			},
		})
		require.NoError(t, err)
		require.True(t, msg.HasToolCalls())
		assert.Equal(t, "call_9", msg.ToolCalls[0].ID)
		assert.Equal(t, "complete_task", msg.ToolCalls[0].Name)
	})

	t.Run("no choices is an explicit failure", func(t *testing.T) {
		_, err := completionToMessage(&openai.ChatCompletion{})
		assert.Error(t, err)
	})
}
