package pubsub

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/simmyhq/simmy/pkg/slogx"
	"github.com/simmyhq/simmy/pkg/uuidx"
)

// Handler consumes the payload published on a topic. Handlers run on the
// publisher's goroutine and must be safe to invoke from any goroutine.
type Handler func(payload any)

// Bus is an in-process publish/subscribe hub keyed by string topics.
type Bus struct {
	topics *haxmap.Map[string, *topic]
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		topics: haxmap.New[string, *topic](),
	}
}

type topic struct {
	name string

	mu   sync.RWMutex
	subs []*Subscription
}

// Subscription is the token returned by Subscribe. Unsubscribe is optional
// and idempotent.
type Subscription struct {
	id      string
	handler Handler

	once  sync.Once
	owner *topic
}

// ID returns the unique token identifying this subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes the subscription from its topic. Safe to call more
// than once and safe to never call.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.owner.remove(s.id)
	})
}

func (t *topic) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, sub := range t.subs {
		if sub.id == id {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			return
		}
	}
}

// Subscribe registers handler for name. The handler will be invoked for
// every subsequent publish on that topic, after any handlers registered
// before it.
func (b *Bus) Subscribe(name string, handler Handler) *Subscription {
	if handler == nil {
		panic("pubsub: handler cannot be nil")
	}
	top, _ := b.topics.GetOrCompute(name, func() *topic {
		return &topic{name: name}
	})

	sub := &Subscription{
		id:      uuidx.NewString(),
		handler: handler,
		owner:   top,
	}
	top.mu.Lock()
	top.subs = append(top.subs, sub)
	top.mu.Unlock()
	return sub
}

// Publish delivers payload to every handler registered for name, in
// registration order, synchronously on the caller's goroutine. A handler
// that panics does not abort its siblings or the publisher; the fault is
// reported on TopicError.
func (b *Bus) Publish(name string, payload any) {
	top, ok := b.topics.Get(name)
	if !ok {
		return
	}

	top.mu.RLock()
	subs := make([]*Subscription, len(top.subs))
	copy(subs, top.subs)
	top.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(name, sub, payload)
	}
}

func (b *Bus) deliver(name string, sub *Subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("subscriber on topic %q panicked: %v", name, r)
			slog.Error("subscriber fault", slogx.Topic(name), slogx.Error(err))
			// Reporting a fault from an error handler through the error
			// topic again would recurse forever.
			if name != TopicError {
				b.Publish(TopicError, err.Error())
			}
		}
	}()
	sub.handler(payload)
}
