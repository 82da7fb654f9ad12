package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/simmyhq/simmy/messages"
)

// Scripted is a Client that replays a fixed sequence of Messages. It exists
// for tests and offline runs: queue the assistant turns up front, then drive
// the agent against it.
type Scripted struct {
	mu           sync.Mutex
	systemPrompt string
	script       []messages.Message
	calls        []ResponseParams
}

var _ Client = (*Scripted)(nil)

// NewScripted queues the given messages to be returned in order by
// GetResponse.
func NewScripted(script ...messages.Message) *Scripted {
	return &Scripted{script: script}
}

func (s *Scripted) Startup(_ context.Context, systemPrompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt = systemPrompt
	return nil
}

func (s *Scripted) GetResponse(_ context.Context, params ResponseParams) (messages.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, params)
	if len(s.script) == 0 {
		return messages.Message{}, fmt.Errorf("scripted client: script exhausted after %d calls", len(s.calls))
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next, nil
}

func (s *Scripted) GetTextResponse(ctx context.Context, prompt, _ string) (string, error) {
	msg, err := s.GetResponse(ctx, ResponseParams{Transcript: []messages.Message{messages.User(prompt)}})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (s *Scripted) AppendToSystemPrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt += "\n" + text
}

func (s *Scripted) SystemPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.systemPrompt
}

// Calls returns the parameters of every GetResponse invocation so far.
func (s *Scripted) Calls() []ResponseParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ResponseParams, len(s.calls))
	copy(out, s.calls)
	return out
}
