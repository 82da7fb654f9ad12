/*
Package agency implements the agent's task tracker: an in-memory to-do list
the model manipulates through generated tools.

The task list is owned by the agent's goroutine; only the generated tools
mutate it, and they all run on that goroutine, so the tracker itself needs
no locking. Every mutation publishes a lifecycle event on the bus so
presentation and logging collaborators can react.

The rendered incomplete-task block is injected into the model's context on
each turn. That is how the agent remembers open work across turns without
persisting transcripts.
*/
package agency
