// Package pull implements streaming model downloads with cooperative
// cancellation.
//
// Three pieces cooperate:
//
//   - Registry maps active pull identifiers to cancellation tokens. An
//     entry exists exactly while its pull is streaming.
//   - LineFramer turns arbitrary byte chunks into newline-delimited
//     progress records, tolerating chunk boundaries that split lines or
//     multi-byte characters.
//   - Puller drives one pull end to end: it registers a token, opens the
//     NDJSON stream, publishes lifecycle events, polls the token between
//     chunks, and unregisters on every exit path.
//
// # Usage
//
//	registry := pull.NewRegistry()
//	p := &pull.Puller{Registry: registry, Sink: sink}
//
//	// In one goroutine per pull:
//	err := p.Pull(ctx, pull.Request{Name: "llama3"})
//
//	// From any other goroutine:
//	registry.RequestCancel(id)
//
// Cancellation is cooperative: the loop observes the token before each
// chunk read, so latency is bounded by the gap between two chunks, never
// by the whole download.
package pull
