// Package service exposes the model-management commands to front ends.
//
// Service wires the settings store, the pull registry, and the event sink
// together and offers the command surface a UI or CLI calls: StartPull,
// CancelPull, List, Delete, Show, and settings access. StartPull blocks
// until the pull reaches a terminal state; run it in its own goroutine to
// pull concurrently.
package service
