// Package ollama provides an HTTP client for the Ollama server API.
//
// This package handles:
//   - Listing installed models (GET /api/tags)
//   - Deleting models (DELETE /api/delete, with POST fallback)
//   - Showing model details (POST /api/show)
//   - Opening a streaming pull (POST /api/pull)
//
// # Usage
//
//	client := ollama.NewClient("http://localhost:11434", ollama.DefaultOptions())
//
//	// One-shot request
//	models, err := client.List(ctx)
//
//	// Streaming pull; the returned stream must be closed by the caller
//	stream, err := client.PullStream(ctx, "llama3")
//	defer stream.Close()
//
// Buffered operations are bounded by short per-call timeouts. A pull is
// bounded by a single long request-level timeout covering the whole
// download; there is no per-chunk timeout and no automatic retry.
package ollama
