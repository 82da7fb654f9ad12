/*
Package messages defines the records that make up a conversation transcript.

A transcript is an append-only ordered sequence of Message values owned by
the agent. Messages are never mutated after they are appended; components
that need a variation construct a new value.
*/
package messages
