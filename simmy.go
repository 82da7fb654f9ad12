package simmy

import (
	"context"
	"fmt"

	"github.com/fogfish/opts"
	"github.com/simmyhq/simmy/agency"
	"github.com/simmyhq/simmy/agent"
	"github.com/simmyhq/simmy/provider"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/role"
	"github.com/simmyhq/simmy/tool"
)

// DefaultSystemPrompt is the identity handed to the model client when the
// caller supplies none of their own.
const DefaultSystemPrompt = "Your name is Simmy, a helpful assistant. " +
	"You keep track of the user's tasks with the task tools provided to you: " +
	"create a task when the user asks for something that takes more than one step, " +
	"record your findings in its notes, and mark it complete when it is done. " +
	"Answer plainly and keep replies short unless asked for detail."

// Runtime bundles a fully wired agent and its collaborators. Everything
// hangs off one Bus; callers subscribe to its topics to render replies,
// errors, and logs however they like.
type Runtime struct {
	Bus     *pubsub.Bus
	Tracker *agency.Agency
	Toolbox *tool.Toolbox
	Agent   *agent.Agent

	role           role.Role
	systemPrompt   string
	verbose        bool
	silenceActions bool
	extraTools     []tool.Definition
}

var (
	// WithRole selects the identity and tool bundle the agent runs with.
	// Defaults to role.Minimal.
	WithRole = opts.ForName[Runtime, role.Role]("role")
	// WithSystemPrompt replaces DefaultSystemPrompt entirely. The role
	// identity is still appended after it.
	WithSystemPrompt = opts.ForName[Runtime, string]("systemPrompt")
	// WithVerbose enables debug logging of turn internals.
	WithVerbose = opts.ForName[Runtime, bool]("verbose")
	// WithSilenceActions suppresses the human-readable tool dispatch
	// notices on the general_log topic.
	WithSilenceActions = opts.ForName[Runtime, bool]("silenceActions")
)

// WithTools registers additional tools beyond the role's bundle.
func WithTools(defs ...tool.Definition) opts.Option[Runtime] {
	return opts.Type[Runtime](func(r *Runtime) error {
		r.extraTools = append(r.extraTools, defs...)
		return nil
	})
}

// Option configures a Runtime during construction.
type Option = opts.Option[Runtime]

// New wires a bus, task tracker, toolbox and agent around the given model
// client. The runtime is inert until Start is called.
func New(client provider.Client, options ...Option) (*Runtime, error) {
	if client == nil {
		return nil, fmt.Errorf("runtime requires a model client")
	}

	r := &Runtime{
		role:         role.Minimal(),
		systemPrompt: DefaultSystemPrompt,
	}
	if err := opts.Apply(r, options); err != nil {
		return nil, err
	}

	r.Bus = pubsub.New()
	r.Tracker = agency.New(r.Bus)

	defs := append(append([]tool.Definition{}, r.role.Tools...), r.extraTools...)
	tb, err := tool.NewToolbox(r.Bus, defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build toolbox: %w", err)
	}
	r.Toolbox = tb

	prompt := r.systemPrompt
	if r.role.Identity != "" {
		prompt += "\nYour role: " + r.role.Identity
	}

	r.Agent, err = agent.New(r.Bus, client, tb, r.Tracker,
		agent.SystemPrompt(prompt),
		agent.Verbose(r.verbose),
		agent.SilenceActions(r.silenceActions),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Start launches the agent's turn loop. See agent.Agent.Start.
func (r *Runtime) Start(ctx context.Context) error {
	return r.Agent.Start(ctx)
}

// Stop requests shutdown and blocks until the turn loop has exited.
func (r *Runtime) Stop() {
	r.Agent.Stop()
	r.Agent.Wait()
}
