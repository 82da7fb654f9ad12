package slogx

import "log/slog"

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Topic returns a slog.Attr carrying a bus topic name under the "topic" key.
func Topic(name string) slog.Attr {
	return slog.String("topic", name)
}

// Tool returns a slog.Attr carrying a tool name under the "tool" key.
func Tool(name string) slog.Attr {
	return slog.String("tool", name)
}
