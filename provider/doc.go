/*
Package provider defines the capability contract between the agent and a
language-model backend.

A Client takes the conversation transcript, the advertised tool definitions
and the active system prompt, and produces exactly one new Message: either a
terminal reply or a request for tool invocations, never an ambiguous mix.
Backend failures surface as ordinary errors, never as partial Messages.

Retry, timeout and cancellation policy belong to concrete adapters; the
contract here only requires that a call either yields a well-formed Message
or fails explicitly.
*/
package provider
