package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MedGm/Ollie/internal/config"
	"github.com/MedGm/Ollie/internal/events"
	"github.com/MedGm/Ollie/internal/settings"
)

func newTestService(t *testing.T, cfg config.Config, sink events.Sink) *Service {
	t.Helper()
	store, err := settings.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(Options{Settings: store, Config: cfg, Sink: sink})
}

func pullServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pull" {
			t.Errorf("expected /api/pull, got %s", r.URL.Path)
		}
		io.WriteString(w, body)
	}))
}

func TestStartPullSuccess(t *testing.T) {
	server := pullServer(t, "{\"status\":\"downloading\",\"completed\":10,\"total\":100}\n{\"status\":\"success\"}\n")
	defer server.Close()

	rec := &events.Recorder{}
	svc := newTestService(t, config.Config{ServerURL: server.URL}, rec)

	res := svc.StartPull(context.Background(), StartPullRequest{Name: "llama3"})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}

	if n := len(rec.Named(events.PullProgress)); n != 2 {
		t.Errorf("expected 2 progress events, got %d", n)
	}
	if n := len(rec.Named(events.PullComplete)); n != 1 {
		t.Errorf("expected 1 complete event, got %d", n)
	}
	if svc.ActivePulls() != 0 {
		t.Errorf("expected no active pulls, got %d", svc.ActivePulls())
	}
}

func TestStartPullServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	rec := &events.Recorder{}
	svc := newTestService(t, config.Config{ServerURL: server.URL}, rec)

	res := svc.StartPull(context.Background(), StartPullRequest{Name: "llama3"})
	if res.Success {
		t.Fatal("expected failure for HTTP 500")
	}
	if !strings.Contains(res.Error, "500") {
		t.Errorf("expected error to mention the status code, got %q", res.Error)
	}
	if n := len(rec.Named(events.PullError)); n != 1 {
		t.Errorf("expected 1 error event, got %d", n)
	}
	if n := len(rec.Named(events.PullProgress)); n != 0 {
		t.Errorf("expected no progress events, got %d", n)
	}
}

func TestCancelPullNotFound(t *testing.T) {
	svc := newTestService(t, config.Config{}, nil)

	res := svc.CancelPull("unknown")
	if res.Success {
		t.Fatal("expected not found for an unknown identifier")
	}
	if res.Error != "pull ID not found" {
		t.Errorf("unexpected error message %q", res.Error)
	}
}

func TestCancelActivePull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{\"status\":\"downloading\"}\n")
		w.(http.Flusher).Flush()
		// Held open until the client releases the connection.
		<-r.Context().Done()
	}))
	defer server.Close()

	store, err := settings.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Cancel from the progress path so the loop observes the token at its
	// next check point.
	var svc *Service
	rec := &events.Recorder{}
	sink := events.SinkFunc(func(e events.Event) {
		rec.Publish(e)
		if e.Name == events.PullProgress {
			if res := svc.CancelPull("p1"); !res.Success {
				t.Errorf("expected cancel to succeed, got %q", res.Error)
			}
		}
	})
	svc = New(Options{Settings: store, Config: config.Config{ServerURL: server.URL}, Sink: sink})

	res := svc.StartPull(context.Background(), StartPullRequest{Name: "llama3", PullID: "p1"})
	if res.Success {
		t.Fatal("expected a cancelled pull to report failure")
	}
	if !strings.Contains(res.Error, "cancelled by user") {
		t.Errorf("expected user cancellation in error, got %q", res.Error)
	}
	if n := len(rec.Named(events.PullCancelled)); n != 1 {
		t.Errorf("expected 1 cancelled event, got %d", n)
	}
	if svc.ActivePulls() != 0 {
		t.Errorf("expected no active pulls, got %d", svc.ActivePulls())
	}
}

func TestServerURLFromSettings(t *testing.T) {
	server := pullServer(t, "{\"status\":\"success\"}\n")
	defer server.Close()

	store, err := settings.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	st := settings.Default()
	st.ServerURL = server.URL
	if err := store.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	svc := New(Options{Settings: store})
	res := svc.StartPull(context.Background(), StartPullRequest{Name: "llama3"})
	if !res.Success {
		t.Fatalf("expected pull against settings server, got %q", res.Error)
	}
}

func TestExplicitServerURLWins(t *testing.T) {
	server := pullServer(t, "{\"status\":\"success\"}\n")
	defer server.Close()

	// Config points at a dead address; the explicit URL must win.
	svc := newTestService(t, config.Config{ServerURL: "http://127.0.0.1:1"}, nil)
	res := svc.StartPull(context.Background(), StartPullRequest{Name: "llama3", ServerURL: server.URL})
	if !res.Success {
		t.Fatalf("expected explicit server URL to win, got %q", res.Error)
	}
}

func TestSettingsRoundtrip(t *testing.T) {
	svc := newTestService(t, config.Config{}, nil)

	st, err := svc.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	st.DefaultModel = "llama3"
	if err := svc.SaveSettings(st); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	st, err = svc.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if st.DefaultModel != "llama3" {
		t.Errorf("expected default model llama3, got %s", st.DefaultModel)
	}
}
