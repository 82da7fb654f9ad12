package agency

import (
	"testing"

	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgencyToolbox(t *testing.T) (*Agency, *tool.Toolbox) {
	t.Helper()
	bus := pubsub.New()
	a := New(bus)
	tb, err := tool.NewToolbox(bus, a.Tools()...)
	require.NoError(t, err)
	return a, tb
}

func TestToolsRegistered(t *testing.T) {
	_, tb := newAgencyToolbox(t)

	for _, name := range []string{"create_task", "complete_task", "modify_task_notes", "modify_task_requirements"} {
		def, found := tb.Find(name)
		assert.True(t, found, name)
		assert.NotEmpty(t, def.Description, name)
		require.NotNil(t, def.Parameters, name)
		assert.NotEmpty(t, def.Parameters.Required, name)
	}
}

func TestCreateTaskTool(t *testing.T) {
	t.Run("creates a task", func(t *testing.T) {
		a, tb := newAgencyToolbox(t)
		out := tb.Execute(messages.ToolCall{
			ID:   "call_1",
			Name: "create_task",
			Arguments: `{
				"description": "research the topic",
				"requirements": ["find sources", "summarize"]
			}`,
		})
		assert.Equal(t, "Task created with id task_1.", out)
		require.Len(t, a.Tasks(), 1)
		assert.Equal(t, []string{"find sources", "summarize"}, a.Tasks()[0].Requirements)
	})

	t.Run("missing description rejected before delegation", func(t *testing.T) {
		a, tb := newAgencyToolbox(t)
		out := tb.Execute(messages.ToolCall{
			Name:      "create_task",
			Arguments: `{"requirements":["r"]}`,
		})
		assert.Contains(t, out, "missing required argument")
		assert.Empty(t, a.Tasks())
	})

	t.Run("empty requirements rejected", func(t *testing.T) {
		a, tb := newAgencyToolbox(t)
		out := tb.Execute(messages.ToolCall{
			Name:      "create_task",
			Arguments: `{"description":"d","requirements":[]}`,
		})
		assert.Contains(t, out, "Error creating task")
		assert.Empty(t, a.Tasks())
	})

	t.Run("completed flag honored", func(t *testing.T) {
		a, tb := newAgencyToolbox(t)
		out := tb.Execute(messages.ToolCall{
			Name:      "create_task",
			Arguments: `{"description":"d","requirements":["r"],"completed":true}`,
		})
		assert.Equal(t, "Task created with id task_1.", out)
		assert.True(t, a.Tasks()[0].Completed)
	})
}

func TestCompleteTaskTool(t *testing.T) {
	a, tb := newAgencyToolbox(t)
	_, err := a.CreateTask("d", []string{"r"}, false)
	require.NoError(t, err)

	out := tb.Execute(messages.ToolCall{Name: "complete_task", Arguments: `{"task_id":"task_1"}`})
	assert.Equal(t, "Task with id task_1 marked as complete.", out)
	assert.True(t, a.Tasks()[0].Completed)

	out = tb.Execute(messages.ToolCall{Name: "complete_task", Arguments: `{"task_id":"task_9"}`})
	assert.Equal(t, "Error completing task with id task_9.", out)
}

func TestModifyTaskNotesTool(t *testing.T) {
	a, tb := newAgencyToolbox(t)
	_, err := a.CreateTask("d", []string{"r"}, false)
	require.NoError(t, err)

	out := tb.Execute(messages.ToolCall{
		Name:      "modify_task_notes",
		Arguments: `{"task_id":"task_1","notes":"progress: halfway"}`,
	})
	assert.Equal(t, "Notes for task with id task_1 modified.", out)
	assert.Equal(t, "progress: halfway", a.Tasks()[0].Notes)

	out = tb.Execute(messages.ToolCall{
		Name:      "modify_task_notes",
		Arguments: `{"task_id":"task_7","notes":"n"}`,
	})
	assert.Equal(t, "Error modifying notes for task with id task_7.", out)
}

func TestModifyTaskRequirementsTool(t *testing.T) {
	a, tb := newAgencyToolbox(t)
	_, err := a.CreateTask("d", []string{"old"}, false)
	require.NoError(t, err)

	out := tb.Execute(messages.ToolCall{
		Name:      "modify_task_requirements",
		Arguments: `{"task_id":"task_1","requirements":["new a","new b"]}`,
	})
	assert.Equal(t, "Requirements for task with id task_1 modified.", out)
	assert.Equal(t, []string{"new a", "new b"}, a.Tasks()[0].Requirements)

	out = tb.Execute(messages.ToolCall{
		Name:      "modify_task_requirements",
		Arguments: `{"task_id":"task_1","requirements":[]}`,
	})
	assert.Equal(t, "Error modifying task: No requirements provided.", out)
	assert.Equal(t, []string{"new a", "new b"}, a.Tasks()[0].Requirements, "failed modify must not touch the task")
}
