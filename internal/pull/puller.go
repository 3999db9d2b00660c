package pull

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MedGm/Ollie/internal/events"
	"github.com/MedGm/Ollie/internal/ollama"
)

// ErrCancelled is returned by Pull when the user cancelled the download.
var ErrCancelled = errors.New("cancelled by user")

// Request describes one pull.
type Request struct {
	// Name is the model to download (required).
	Name string

	// PullID identifies this pull for cancellation. Generated (uuid v4)
	// when empty.
	PullID string

	// ServerURL overrides the puller's default server for this pull.
	ServerURL string
}

// Puller runs pull operations. Multiple pulls may run concurrently; they
// share only the Registry and the Sink.
type Puller struct {
	// Registry tracks cancellation tokens (required).
	Registry *Registry

	// Sink receives lifecycle events. Default: discard.
	Sink events.Sink

	// ServerURL is the server used when a request names none.
	// Default: ollama.DefaultBaseURL
	ServerURL string

	// ClientOptions configures the HTTP client used for each pull.
	ClientOptions ollama.Options
}

// readSize is the chunk buffer size for the stream loop.
const readSize = 32 * 1024

// Pull downloads a model, publishing progress events until the stream
// ends, fails, or is cancelled. It returns nil only when the stream
// completed; cancellation surfaces as ErrCancelled. The registry entry is
// removed on every exit path.
func (p *Puller) Pull(ctx context.Context, req Request) error {
	if req.Name == "" {
		return errors.New("pull: model name is required")
	}

	id := req.PullID
	if id == "" {
		id = uuid.NewString()
	}

	sink := p.Sink
	if sink == nil {
		sink = events.NoopSink{}
	}

	token, err := p.Registry.Register(id)
	if err != nil {
		return err
	}
	defer p.Registry.Unregister(id)

	sink.Publish(events.Event{
		Name:    events.PullStart,
		Payload: events.PullStartPayload{PullID: id, Name: req.Name},
	})

	serverURL := req.ServerURL
	if serverURL == "" {
		serverURL = p.ServerURL
	}
	client := ollama.NewClient(serverURL, p.ClientOptions)

	stream, err := client.PullStream(ctx, req.Name)
	if err != nil {
		sink.Publish(events.Event{
			Name:    events.PullError,
			Payload: events.PullErrorPayload{PullID: id, Error: err.Error()},
		})
		return err
	}
	defer stream.Close()

	var framer LineFramer
	buf := make([]byte, readSize)
	for {
		// Observe cancellation before waiting on the next chunk.
		if token.Cancelled() {
			sink.Publish(events.Event{
				Name:    events.PullCancelled,
				Payload: events.PullCancelledPayload{PullID: id},
			})
			return ErrCancelled
		}

		n, readErr := stream.Read(buf)
		if n > 0 {
			framer.Feed(buf[:n])
			for _, rec := range framer.Drain() {
				sink.Publish(events.Event{
					Name:    events.PullProgress,
					Payload: events.PullProgressPayload{PullID: id, Progress: rec.Payload},
				})
			}
		}

		if readErr == io.EOF {
			if rec, ok := framer.FlushRemainder(); ok {
				sink.Publish(events.Event{
					Name:    events.PullProgress,
					Payload: events.PullProgressPayload{PullID: id, Progress: rec.Payload},
				})
			}
			sink.Publish(events.Event{
				Name:    events.PullComplete,
				Payload: events.PullCompletePayload{PullID: id},
			})
			return nil
		}
		if readErr != nil {
			sink.Publish(events.Event{
				Name:    events.PullError,
				Payload: events.PullErrorPayload{PullID: id, Error: readErr.Error()},
			})
			return fmt.Errorf("read progress stream: %w", readErr)
		}
	}
}
