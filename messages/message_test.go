package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		role string
	}{
		{"system", System("be helpful"), RoleSystem},
		{"user", User("hi"), RoleUser},
		{"assistant", Assistant("hello"), RoleAssistant},
		{"tool result", ToolResult("call_1", "done"), RoleTool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.role, tt.msg.Role)
			assert.False(t, tt.msg.HasToolCalls())
		})
	}
}

func TestToolResultCorrelation(t *testing.T) {
	msg := ToolResult("call_42", "result text")
	assert.Equal(t, "call_42", msg.ToolCallID)
	assert.Equal(t, "result text", msg.Content)
}

func TestAssistantToolCalls(t *testing.T) {
	msg := AssistantToolCalls("msg_1",
		ToolCall{ID: "call_1", Name: "create_task", Arguments: `{"description":"x"}`},
		ToolCall{ID: "call_2", Name: "complete_task", Arguments: `{"task_id":"task_1"}`},
	)
	require.True(t, msg.HasToolCalls())
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Empty(t, msg.Content)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "call_2", msg.ToolCalls[1].ID)
}

func TestLogLine(t *testing.T) {
	t.Run("text message", func(t *testing.T) {
		line := User("what time is it?").LogLine()
		require.True(t, gjson.Valid(line))
		assert.Equal(t, "user", gjson.Get(line, "role").String())
		assert.Equal(t, "what time is it?", gjson.Get(line, "content").String())
	})

	t.Run("tool call message", func(t *testing.T) {
		line := AssistantToolCalls("", ToolCall{
			ID:        "call_1",
			Name:      "create_task",
			Arguments: `{"description":"write docs"}`,
		}).LogLine()
		require.True(t, gjson.Valid(line))
		assert.Equal(t, "create_task", gjson.Get(line, "tool_calls.0.name").String())
		assert.Equal(t, "write docs", gjson.Get(line, "tool_calls.0.arguments.description").String())
	})

	t.Run("empty arguments stay valid json", func(t *testing.T) {
		line := AssistantToolCalls("", ToolCall{ID: "call_1", Name: "noop"}).LogLine()
		require.True(t, gjson.Valid(line))
		assert.True(t, gjson.Get(line, "tool_calls.0.arguments").IsObject())
	})
}
