package events

import (
	"encoding/json"
	"sync"
)

// Event names published during a pull.
const (
	PullStart     = "models:pull-start"
	PullProgress  = "models:pull-progress"
	PullCancelled = "models:pull-cancelled"
	PullError     = "models:pull-error"
	PullComplete  = "models:pull-complete"
)

// Event is one named notification with a payload.
type Event struct {
	Name    string
	Payload any
}

// Sink receives events. Publish must not block on network I/O; it is
// called synchronously from the pull loop.
type Sink interface {
	Publish(Event)
}

// NoopSink discards all events.
type NoopSink struct{}

func (NoopSink) Publish(Event) {}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Bus fans events out to any number of subscribed sinks. Subscribing
// during delivery is safe; delivery order matches publish order for
// events published from the same goroutine.
type Bus struct {
	mu    sync.RWMutex
	sinks []Sink
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a sink. There is no unsubscribe; subscribers live as long
// as the bus.
func (b *Bus) Subscribe(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

// Publish delivers the event to every subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	sinks := b.sinks
	b.mu.RUnlock()

	for _, s := range sinks {
		s.Publish(e)
	}
}

// ChannelSink forwards events to a channel, dropping events when the
// channel is full so a slow consumer never stalls the pull loop.
type ChannelSink struct {
	ch chan<- Event
}

// NewChannelSink creates a channel-based sink.
func NewChannelSink(ch chan<- Event) *ChannelSink {
	return &ChannelSink{ch: ch}
}

func (s *ChannelSink) Publish(e Event) {
	select {
	case s.ch <- e:
	default: // Non-blocking if channel full
	}
}

// PullStartPayload is the payload of a models:pull-start event.
type PullStartPayload struct {
	PullID string `json:"pull_id"`
	Name   string `json:"name"`
}

// PullProgressPayload is the payload of a models:pull-progress event.
// Progress carries one NDJSON progress record verbatim; its shape is
// opaque to this package.
type PullProgressPayload struct {
	PullID   string          `json:"pull_id"`
	Progress json.RawMessage `json:"progress"`
}

// PullCancelledPayload is the payload of a models:pull-cancelled event.
type PullCancelledPayload struct {
	PullID string `json:"pull_id"`
}

// PullErrorPayload is the payload of a models:pull-error event.
type PullErrorPayload struct {
	PullID string `json:"pull_id"`
	Error  string `json:"error"`
}

// PullCompletePayload is the payload of a models:pull-complete event.
type PullCompletePayload struct {
	PullID string `json:"pull_id"`
}
