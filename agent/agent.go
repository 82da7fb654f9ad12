package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fogfish/opts"
	"github.com/simmyhq/simmy/agency"
	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pkg/slogx"
	"github.com/simmyhq/simmy/provider"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
)

// State is the agent's position in its turn cycle.
type State int32

const (
	// StateIdle means the agent is waiting for user input.
	StateIdle State = iota
	// StateThinking means a model call is in flight.
	StateThinking
	// StateActing means requested tool calls are being dispatched.
	StateActing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateThinking:
		return "thinking"
	case StateActing:
		return "acting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// DefaultMaxTurnHops bounds the number of model calls within one user turn.
// A well-behaved backend terminates a turn long before this; the bound
// exists so a backend that keeps requesting tools cannot spin forever.
const DefaultMaxTurnHops = 32

// Agent is the turn-taking orchestrator. Construct with New, start with
// Start, and stop by cancelling the context passed to Start (or publishing
// on the exit_signal topic).
type Agent struct {
	bus     *pubsub.Bus
	client  provider.Client
	tracker *agency.Agency

	// toolboxes are consulted in order when resolving a tool call: the
	// caller's toolbox first, then the tracker's generated tools.
	toolboxes []*tool.Toolbox

	systemPrompt   string
	maxTurnHops    int
	verbose        bool
	silenceActions bool

	transcript []messages.Message
	state      atomic.Int32

	cancel  context.CancelFunc
	pending chan string
	done    chan struct{}
}

var (
	// SystemPrompt sets the system prompt handed to the model client at
	// startup.
	SystemPrompt = opts.ForName[Agent, string]("systemPrompt")
	// MaxTurnHops overrides the per-turn model-call budget.
	MaxTurnHops = opts.ForName[Agent, int]("maxTurnHops")
	// Verbose enables debug logging of every turn step.
	Verbose = opts.ForName[Agent, bool]("verbose")
	// SilenceActions suppresses the human-readable dispatch notices
	// published on the general_log topic.
	SilenceActions = opts.ForName[Agent, bool]("silenceActions")
)

// Option configures an Agent during construction.
type Option = opts.Option[Agent]

// New wires an agent to its collaborators. The tracker's generated tools
// are registered alongside toolbox and advertised to the model together
// with it.
func New(bus *pubsub.Bus, client provider.Client, toolbox *tool.Toolbox, tracker *agency.Agency, options ...Option) (*Agent, error) {
	if bus == nil {
		return nil, fmt.Errorf("agent requires a bus")
	}
	if client == nil {
		return nil, fmt.Errorf("agent requires a model client")
	}
	if toolbox == nil {
		return nil, fmt.Errorf("agent requires a toolbox")
	}
	if tracker == nil {
		return nil, fmt.Errorf("agent requires a task tracker")
	}

	a := &Agent{
		bus:         bus,
		client:      client,
		tracker:     tracker,
		maxTurnHops: DefaultMaxTurnHops,
	}
	if err := opts.Apply(a, options); err != nil {
		return nil, err
	}
	if a.maxTurnHops <= 0 {
		return nil, fmt.Errorf("max turn hops must be positive")
	}

	trackerTools, err := tool.NewToolbox(bus, tracker.Tools()...)
	if err != nil {
		return nil, fmt.Errorf("failed to register tracker tools: %w", err)
	}
	a.toolboxes = []*tool.Toolbox{toolbox, trackerTools}
	return a, nil
}

// Start initializes the model client and launches the turn loop on its own
// goroutine. The loop stops when ctx is cancelled or an exit_signal is
// published; no new turns begin after that, though an in-flight model or
// tool call is allowed to finish.
func (a *Agent) Start(ctx context.Context) error {
	if err := a.client.Startup(ctx, a.systemPrompt); err != nil {
		return fmt.Errorf("model client startup failed: %w", err)
	}

	ctx, a.cancel = context.WithCancel(ctx)
	a.pending = make(chan string, 16)
	a.done = make(chan struct{})

	sub := a.bus.Subscribe(pubsub.TopicNewUserMessage, func(payload any) {
		input, ok := payload.(string)
		if !ok {
			a.bus.Publish(pubsub.TopicError, fmt.Sprintf("new_user_message payload must be a string, got %T", payload))
			return
		}
		select {
		case a.pending <- input:
		case <-ctx.Done():
		}
	})
	a.bus.Subscribe(pubsub.TopicExitSignal, func(any) { a.Stop() })

	go func() {
		defer close(a.done)
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case input := <-a.pending:
				a.runTurn(ctx, input)
			}
		}
	}()
	return nil
}

// Stop requests shutdown. It never interrupts a call already in flight.
func (a *Agent) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Wait blocks until the turn loop has exited.
func (a *Agent) Wait() {
	if a.done != nil {
		<-a.done
	}
}

// State reports where the agent currently is in its turn cycle.
func (a *Agent) State() State {
	return State(a.state.Load())
}

func (a *Agent) setState(s State) {
	a.state.Store(int32(s))
}

// Transcript returns a copy of the conversation history so far.
func (a *Agent) Transcript() []messages.Message {
	out := make([]messages.Message, len(a.transcript))
	copy(out, a.transcript)
	return out
}

func (a *Agent) append(msg messages.Message) {
	a.transcript = append(a.transcript, msg)
	if a.verbose {
		slog.Debug("transcript append", slog.String("role", msg.Role), slog.Int("len", len(a.transcript)))
	}
}

// advertisedTools is the full set offered to the model: the caller's tools
// plus the tracker's generated ones, in registration order.
func (a *Agent) advertisedTools() []tool.Definition {
	var defs []tool.Definition
	for _, tb := range a.toolboxes {
		defs = append(defs, tb.All()...)
	}
	return defs
}

// taskContext renders the open tasks for injection into the model's context
// on this call only.
func (a *Agent) taskContext() string {
	if !a.tracker.HasIncompleteTasks() {
		return ""
	}
	return "These are your current incomplete tasks:\n" + a.tracker.IncompleteTasksDescribed()
}

// runTurn executes one full user turn: model calls and tool dispatch until
// a terminal reply, a backend failure, or the hop budget runs out.
func (a *Agent) runTurn(ctx context.Context, input string) {
	a.setState(StateThinking)
	defer a.setState(StateIdle)

	a.append(messages.User(input))
	a.bus.Publish(pubsub.TopicAgentLog, fmt.Sprintf("User: %s", input))

	for hop := 0; hop < a.maxTurnHops; hop++ {
		response, err := a.client.GetResponse(ctx, provider.ResponseParams{
			Transcript:    a.Transcript(),
			Tools:         a.advertisedTools(),
			ContextSuffix: a.taskContext(),
		})
		if err != nil {
			// Turn abort: nothing from the failed call reaches the
			// transcript.
			a.bus.Publish(pubsub.TopicAgentError, fmt.Sprintf("Model call failed: %s", err))
			return
		}

		if response.HasToolCalls() {
			a.append(response)
			a.act(response.ToolCalls)
			continue
		}

		a.append(response)
		a.bus.Publish(pubsub.TopicAgentLog, fmt.Sprintf("Agent: %s", response.Content))
		a.bus.Publish(pubsub.TopicNewAgentMessage, response.Content)
		return
	}

	a.bus.Publish(pubsub.TopicAgentError,
		fmt.Sprintf("Turn aborted: no terminal reply after %d model calls.", a.maxTurnHops))
}

// act dispatches the requested calls strictly in the order given and
// appends one tool result per call, preserving correlation order.
func (a *Agent) act(calls []messages.ToolCall) {
	a.setState(StateActing)
	defer a.setState(StateThinking)

	for _, call := range calls {
		if !a.silenceActions {
			a.bus.Publish(pubsub.TopicGeneralLog, fmt.Sprintf("Calling tool %s", call.Name))
		}
		if a.verbose {
			slog.Debug("dispatching tool call", slogx.Tool(call.Name), slog.String("call_id", call.ID))
		}
		a.append(messages.ToolResult(call.ID, a.dispatch(call)))
	}
}

// dispatch resolves the call against the toolboxes in order. Like tool
// execution itself, resolution failure degrades to descriptive text.
func (a *Agent) dispatch(call messages.ToolCall) string {
	for _, tb := range a.toolboxes {
		if _, found := tb.Find(call.Name); found {
			return tb.Execute(call)
		}
	}
	msg := fmt.Sprintf("No tool found with name %q.", call.Name)
	a.bus.Publish(pubsub.TopicError, msg)
	return msg
}
