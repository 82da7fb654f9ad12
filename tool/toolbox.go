package tool

import (
	"fmt"
	"log/slog"

	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pkg/slogx"
	"github.com/simmyhq/simmy/pubsub"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Toolbox is the name-keyed registry of tool definitions the agent resolves
// tool calls against. It is built once at startup and read-only afterwards,
// so lookups need no locking.
type Toolbox struct {
	bus      *pubsub.Bus
	registry *orderedmap.OrderedMap[string, Definition]
}

// NewToolbox builds a registry from the given definitions. Definition names
// must be unique.
func NewToolbox(bus *pubsub.Bus, defs ...Definition) (*Toolbox, error) {
	if bus == nil {
		return nil, fmt.Errorf("toolbox requires a bus")
	}
	registry := orderedmap.New[string, Definition]()
	for _, def := range defs {
		if _, exists := registry.Get(def.Name); exists {
			return nil, fmt.Errorf("duplicate tool name %q", def.Name)
		}
		registry.Set(def.Name, def)
	}
	return &Toolbox{bus: bus, registry: registry}, nil
}

// Find returns the definition registered under name.
func (tb *Toolbox) Find(name string) (Definition, bool) {
	return tb.registry.Get(name)
}

// All returns every registered definition in registration order, for
// advertisement to the model.
func (tb *Toolbox) All() []Definition {
	defs := make([]Definition, 0, tb.registry.Len())
	for pair := tb.registry.Oldest(); pair != nil; pair = pair.Next() {
		defs = append(defs, pair.Value)
	}
	return defs
}

// Execute dispatches one tool call and always returns descriptive text: the
// tool's result on success, or an error message on unknown tool, invalid
// arguments, executor failure, or executor panic. Failures are additionally
// reported on the error topic.
func (tb *Toolbox) Execute(call messages.ToolCall) (result string) {
	def, found := tb.Find(call.Name)
	if !found {
		msg := fmt.Sprintf("No tool found with name %q.", call.Name)
		tb.bus.Publish(pubsub.TopicError, msg)
		return msg
	}

	args := ParseArgs(call.Arguments)
	if err := Validate(def.Parameters, args); err != nil {
		return fmt.Sprintf("Error running %s: %s.", def.Name, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("tool %s panicked: %v", def.Name, r)
			slog.Error("tool fault", slogx.Tool(def.Name), slogx.Error(err))
			tb.bus.Publish(pubsub.TopicError, err.Error())
			result = fmt.Sprintf("Error running %s: %v.", def.Name, r)
		}
	}()

	out, err := def.Execute(tb.bus, args)
	if err != nil {
		tb.bus.Publish(pubsub.TopicError, fmt.Sprintf("Error running %s: %s", def.Name, err))
		return fmt.Sprintf("Error running %s: %s.", def.Name, err)
	}

	tb.bus.Publish(pubsub.TopicToolboxLog, fmt.Sprintf("Executed tool %s", def.Name))
	return out
}
