package events

import (
	"fmt"
	"testing"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a := &Recorder{}
	b := &Recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	for i := 0; i < 3; i++ {
		bus.Publish(Event{Name: PullProgress, Payload: i})
	}

	for _, rec := range []*Recorder{a, b} {
		evs := rec.Events()
		if len(evs) != 3 {
			t.Fatalf("expected 3 events, got %d", len(evs))
		}
		for i, e := range evs {
			if e.Payload.(int) != i {
				t.Errorf("expected ordered delivery, event %d carries %v", i, e.Payload)
			}
		}
	}
}

func TestBusWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Name: PullStart}) // must not panic
}

func TestChannelSinkNonBlocking(t *testing.T) {
	ch := make(chan Event, 1)
	sink := NewChannelSink(ch)

	sink.Publish(Event{Name: PullStart})
	sink.Publish(Event{Name: PullComplete}) // dropped, channel full

	select {
	case e := <-ch:
		if e.Name != PullStart {
			t.Errorf("expected first event delivered, got %s", e.Name)
		}
	default:
		t.Fatal("expected one buffered event")
	}
	select {
	case e := <-ch:
		t.Errorf("expected second event dropped, got %s", e.Name)
	default:
	}
}

func TestSinkFunc(t *testing.T) {
	var got []string
	sink := SinkFunc(func(e Event) {
		got = append(got, e.Name)
	})
	sink.Publish(Event{Name: PullStart})
	sink.Publish(Event{Name: PullComplete})

	if fmt.Sprint(got) != fmt.Sprint([]string{PullStart, PullComplete}) {
		t.Errorf("unexpected events: %v", got)
	}
}

func TestRecorderNamed(t *testing.T) {
	rec := &Recorder{}
	rec.Publish(Event{Name: PullStart})
	rec.Publish(Event{Name: PullProgress, Payload: 1})
	rec.Publish(Event{Name: PullProgress, Payload: 2})
	rec.Publish(Event{Name: PullComplete})

	progress := rec.Named(PullProgress)
	if len(progress) != 2 {
		t.Fatalf("expected 2 progress events, got %d", len(progress))
	}
	if progress[0].Payload.(int) != 1 || progress[1].Payload.(int) != 2 {
		t.Errorf("expected ordered progress events, got %v", progress)
	}
}
