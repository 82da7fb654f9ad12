package tool

import (
	"fmt"

	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	"github.com/simmyhq/simmy/pkg/stdx"
	"github.com/simmyhq/simmy/pubsub"
)

// Executor performs a tool's effect. It receives the bus so it can publish
// notices, and the validated arguments. A returned error is captured by the
// Toolbox and rendered as a textual result; it never reaches the agent as a
// failure.
type Executor func(bus *pubsub.Bus, args Args) (string, error)

// Definition describes one tool: its unique name, the description advertised
// to the model, the JSON schema of accepted arguments, and the executor.
// Definitions are immutable once registered.
type Definition struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Execute     Executor
}

// Option configures a Definition during construction.
type Option = opts.Option[Definition]

// Description sets the human-readable description advertised to the model.
var Description = opts.ForName[Definition, string]("Description")

// Parameters sets the argument schema. Arguments are validated against it
// before the executor runs.
var Parameters = opts.ForName[Definition, *jsonschema.Schema]("Parameters")

// New creates a tool Definition with the given name and executor.
func New(name string, exec Executor, options ...Option) (Definition, error) {
	if name == "" {
		return Definition{}, fmt.Errorf("tool name is required")
	}
	if exec == nil {
		return Definition{}, fmt.Errorf("tool %s: executor is required", name)
	}

	def := Definition{Name: name}
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, err
	}
	def.Execute = exec
	if def.Parameters == nil {
		def.Parameters = Object(nil)
	}
	return def, nil
}

// Must wraps New and panics on error. Tool definitions are assembled at
// startup from fixed declarations, so a failure here is a programmer error.
func Must(name string, exec Executor, options ...Option) Definition {
	return stdx.Must1(New(name, exec, options...))
}
