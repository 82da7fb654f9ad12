/*
Package agent implements the turn-taking orchestrator at the center of the
runtime.

The agent owns the transcript. It waits for user input on the bus, drives
repeated model calls and tool dispatch until the model produces a terminal
reply, publishes that reply, and goes back to waiting. Within one user turn
the model may chain tool calls arbitrarily, up to a configured hop budget
that guards against a misbehaving backend.

The turn loop runs on its own goroutine and is the sole mutator of both the
transcript and the task tracker, so neither needs locking; all cross-thread
communication goes through the bus.
*/
package agent
