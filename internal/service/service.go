package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/MedGm/Ollie/internal/config"
	"github.com/MedGm/Ollie/internal/events"
	"github.com/MedGm/Ollie/internal/ollama"
	"github.com/MedGm/Ollie/internal/pull"
	"github.com/MedGm/Ollie/internal/settings"
)

// Result is the outcome reported to the immediate caller of a command,
// distinct from the richer event stream.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Options configures a Service.
type Options struct {
	// Settings is the settings store (required).
	Settings *settings.Store

	// Config holds CLI-level overrides.
	Config config.Config

	// Sink receives pull lifecycle events. Default: discard.
	Sink events.Sink

	// Logger receives operational logs. Default: discard.
	Logger *slog.Logger
}

// Service implements the model-management command surface.
type Service struct {
	store    *settings.Store
	cfg      config.Config
	registry *pull.Registry
	puller   *pull.Puller
	logger   *slog.Logger
}

// New creates a Service.
func New(opts Options) *Service {
	sink := opts.Sink
	if sink == nil {
		sink = events.NoopSink{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := pull.NewRegistry()
	return &Service{
		store:    opts.Settings,
		cfg:      opts.Config,
		registry: registry,
		puller: &pull.Puller{
			Registry: registry,
			Sink:     sink,
			ClientOptions: ollama.Options{
				RequestTimeout: opts.Config.RequestTimeout,
				PullTimeout:    opts.Config.PullTimeout,
			},
		},
		logger: logger,
	}
}

// StartPullRequest describes one StartPull call.
type StartPullRequest struct {
	Name      string
	PullID    string
	ServerURL string
}

// StartPull downloads a model, blocking until it completes, fails, or is
// cancelled. Progress is reported through the configured sink.
func (s *Service) StartPull(ctx context.Context, req StartPullRequest) Result {
	serverURL := s.resolveServerURL(req.ServerURL)
	s.logger.Info("starting pull", "model", req.Name, "server", serverURL)

	err := s.puller.Pull(ctx, pull.Request{
		Name:      req.Name,
		PullID:    req.PullID,
		ServerURL: serverURL,
	})
	if err != nil {
		s.logger.Error("pull did not complete", "model", req.Name, "error", err)
		return Result{Error: err.Error()}
	}

	s.logger.Info("pull complete", "model", req.Name)
	return Result{Success: true}
}

// CancelPull requests cancellation of an active pull. An unknown
// identifier is a normal outcome: the pull may have already finished.
func (s *Service) CancelPull(pullID string) Result {
	if !s.registry.RequestCancel(pullID) {
		return Result{Error: "pull ID not found"}
	}
	s.logger.Info("cancellation requested", "pull_id", pullID)
	return Result{Success: true}
}

// ActivePulls returns the number of pulls currently streaming.
func (s *Service) ActivePulls() int {
	return s.registry.Active()
}

// List returns the models installed on the server.
func (s *Service) List(ctx context.Context, serverURL string) (*ollama.ListResponse, error) {
	return s.client(serverURL).List(ctx)
}

// Delete removes a model from the server.
func (s *Service) Delete(ctx context.Context, name, serverURL string) error {
	return s.client(serverURL).Delete(ctx, name)
}

// Show fetches the details of one model.
func (s *Service) Show(ctx context.Context, name, serverURL string) (*ollama.ShowResponse, error) {
	return s.client(serverURL).Show(ctx, name)
}

// Settings returns the persisted settings, or defaults when no file
// exists.
func (s *Service) Settings() (settings.Settings, error) {
	return s.store.Load()
}

// SaveSettings persists the settings.
func (s *Service) SaveSettings(st settings.Settings) error {
	return s.store.Save(st)
}

func (s *Service) client(serverURL string) *ollama.Client {
	return ollama.NewClient(s.resolveServerURL(serverURL), ollama.Options{
		RequestTimeout: s.cfg.RequestTimeout,
		PullTimeout:    s.cfg.PullTimeout,
	})
}

// resolveServerURL picks the server for one call: explicit argument, then
// CLI config, then the settings file, then the built-in default.
func (s *Service) resolveServerURL(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.cfg.ServerURL != "" {
		return s.cfg.ServerURL
	}
	st, err := s.store.Load()
	if err != nil {
		s.logger.Warn("settings unreadable, using default server", "error", err)
		return ollama.DefaultBaseURL
	}
	if st.ServerURL != "" {
		return st.ServerURL
	}
	return ollama.DefaultBaseURL
}
