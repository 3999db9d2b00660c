package pull

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestRegisterAndCancel(t *testing.T) {
	r := NewRegistry()

	token, err := r.Register("p1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token.Cancelled() {
		t.Error("fresh token must not be cancelled")
	}

	if !r.RequestCancel("p1") {
		t.Error("expected cancel of active pull to succeed")
	}
	if !token.Cancelled() {
		t.Error("expected token to observe cancellation")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Register("p1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Register("p1"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestRequestCancelNotFound(t *testing.T) {
	r := NewRegistry()

	if r.RequestCancel("missing") {
		t.Error("expected cancel of unknown identifier to report not found")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Register("p1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r.Unregister("p1")

	if r.RequestCancel("p1") {
		t.Error("expected cancel after unregister to report not found")
	}
	if r.Active() != 0 {
		t.Errorf("expected 0 active pulls, got %d", r.Active())
	}

	// Unconditional removal: unknown identifiers are a no-op.
	r.Unregister("p1")

	// The identifier can be reused once the previous pull is gone.
	if _, err := r.Register("p1"); err != nil {
		t.Errorf("expected reuse after unregister, got %v", err)
	}
}

func TestConcurrentRegister(t *testing.T) {
	r := NewRegistry()
	const n = 32

	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = uuid.NewString()
			_, errs[i] = r.Register(ids[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}
	if r.Active() != n {
		t.Errorf("expected %d active pulls, got %d", n, r.Active())
	}

	seen := make(map[string]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("generated identifier %s is not unique", id)
		}
		seen[id] = true
	}

	for _, id := range ids {
		r.Unregister(id)
	}
	if r.Active() != 0 {
		t.Errorf("expected 0 active pulls after unregister, got %d", r.Active())
	}
}
