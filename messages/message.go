package messages

import (
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/tidwall/sjson"
)

// Transcript roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-issued request to execute a named tool. Arguments is
// the raw JSON object the model produced; it stays opaque until the tool
// layer validates it against the tool's schema.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one transcript entry.
//
// Exactly one of two shapes is valid for assistant entries: a terminal reply
// (Content set, ToolCalls empty) or a tool-call request (ToolCalls
// non-empty). Tool result entries carry the correlation id of the call that
// produced them in ToolCallID.
type Message struct {
	ID         string          `json:"id,omitempty"`
	Role       string          `json:"role"`
	Content    string          `json:"content,omitempty"`
	ToolCalls  []ToolCall      `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	Timestamp  strfmt.DateTime `json:"timestamp"`
}

// HasToolCalls reports whether the message requests tool invocations. The
// agent treats any such message as "process tool calls first", regardless of
// content.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// System builds a system-role entry.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content, Timestamp: now()}
}

// User builds a user-role entry.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: now()}
}

// Assistant builds a terminal assistant reply.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: now()}
}

// AssistantToolCalls builds an assistant entry requesting the given tool
// invocations.
func AssistantToolCalls(id string, calls ...ToolCall) Message {
	return Message{ID: id, Role: RoleAssistant, ToolCalls: calls, Timestamp: now()}
}

// ToolResult builds a tool-role entry carrying the textual result of the
// call identified by callID.
func ToolResult(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID, Timestamp: now()}
}

func now() strfmt.DateTime {
	return strfmt.DateTime(time.Now())
}

// LogLine renders the message as a single JSON line for the transcript log.
func (m Message) LogLine() string {
	line, _ := sjson.Set("", "role", m.Role)
	if m.Content != "" {
		line, _ = sjson.Set(line, "content", m.Content)
	}
	if m.ToolCallID != "" {
		line, _ = sjson.Set(line, "tool_call_id", m.ToolCallID)
	}
	for i, tc := range m.ToolCalls {
		prefix := "tool_calls." + strconv.Itoa(i)
		line, _ = sjson.Set(line, prefix+".name", tc.Name)
		line, _ = sjson.SetRaw(line, prefix+".arguments", ensureJSON(tc.Arguments))
	}
	return line
}

func ensureJSON(raw string) string {
	if raw == "" {
		return "{}"
	}
	return raw
}
