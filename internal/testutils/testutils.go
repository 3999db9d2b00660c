//go:build integration

// Package testutils provides shared test infrastructure for integration tests.
package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// OllamaEnv holds a running Ollama server container.
type OllamaEnv struct {
	Container testcontainers.Container
	ServerURL string
}

// Close terminates the Ollama container.
func (e *OllamaEnv) Close(ctx context.Context) error {
	if e.Container != nil {
		return e.Container.Terminate(ctx)
	}
	return nil
}

// StartOllamaContainer starts an Ollama server container and waits for its
// API to come up. Returns an OllamaEnv with connection information.
func StartOllamaContainer(t *testing.T, ctx context.Context) *OllamaEnv {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "ollama/ollama:latest",
		ExposedPorts: []string{"11434/tcp"},
		WaitingFor:   wait.ForHTTP("/api/tags").WithPort("11434"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start ollama container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "11434")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	return &OllamaEnv{
		Container: container,
		ServerURL: fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}
