/*
Package tool defines the capability contract between the agent and the
operations the model may invoke.

A tool is a named unit of behavior with a JSON-schema description of the
arguments it accepts and an executor that produces a textual result. The
executor's output always goes back into the conversation as transcript text,
so failures are captured and rendered as descriptive text rather than
propagated: the model should always receive something it can react to.

A Toolbox is the read-only registry the agent resolves tool calls against.
It is assembled once at startup; the only dynamically generated definitions
are the task-tracker tools, which are created once at agent construction and
live in the same registry.
*/
package tool
