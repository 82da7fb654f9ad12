package pubsub

// Topic names the runtime publishes or listens on. Payload types are part of
// the contract: string unless noted otherwise.
const (
	// TopicNewUserMessage carries one line of user input into the agent.
	TopicNewUserMessage = "new_user_message"
	// TopicNewAgentMessage carries the agent's terminal reply for a turn.
	TopicNewAgentMessage = "new_agent_message"

	// Task lifecycle topics carry an agency.Task payload.
	TopicTaskCreated              = "task_created"
	TopicTaskCompleted            = "task_completed"
	TopicTaskNotesModified        = "task_notes_modified"
	TopicTaskRequirementsModified = "task_requirements_modified"

	// TopicError carries recoverable failures (unknown tools, bad arguments,
	// faulting subscribers). TopicAgentError carries turn-aborting backend
	// failures.
	TopicError      = "error"
	TopicAgentError = "agent_error"

	// Log topics are consumed by whatever logging collaborator is attached.
	TopicAgentLog   = "agent_log"
	TopicGeneralLog = "general_log"
	TopicToolboxLog = "toolbox_log"

	// TopicExitSignal requests shutdown; the payload is a human-readable
	// reason.
	TopicExitSignal = "exit_signal"
)
