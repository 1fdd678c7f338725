// internal/adapters/in/http/handlers/confirm_registry_test.go
package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"revendo/internal/domain/confirm"
)

func TestConfirmExecutesActionExactlyOnce(t *testing.T) {
	reg := NewConfirmRegistry()
	calls := 0
	intent := reg.Register("v1", confirm.NewIntent(confirm.KindLiberate, "¿Liberar?", "s-1"),
		func(ctx context.Context) (any, error) {
			calls++
			return "done", nil
		})

	result, err := reg.Confirm(context.Background(), "v1", intent.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if result != "done" || calls != 1 {
		t.Fatalf("result = %v, calls = %d", result, calls)
	}

	if _, err := reg.Confirm(context.Background(), "v1", intent.ID); !errors.Is(err, ErrIntentExpired) {
		t.Errorf("second Confirm err = %v, want ErrIntentExpired", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, action ran again on replay", calls)
	}
}

func TestConfirmRejectsForeignVendor(t *testing.T) {
	reg := NewConfirmRegistry()
	calls := 0
	intent := reg.Register("v1", confirm.NewIntent(confirm.KindDeleteFreeStock, "¿Eliminar?"),
		func(ctx context.Context) (any, error) {
			calls++
			return nil, nil
		})

	if _, err := reg.Confirm(context.Background(), "v2", intent.ID); !errors.Is(err, ErrIntentExpired) {
		t.Fatalf("foreign vendor err = %v, want ErrIntentExpired", err)
	}
	if calls != 0 {
		t.Fatal("foreign vendor executed the action")
	}

	// The owning vendor's confirmation still goes through.
	if _, err := reg.Confirm(context.Background(), "v1", intent.ID); err != nil {
		t.Fatalf("owner Confirm: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCancelDropsWithoutExecuting(t *testing.T) {
	reg := NewConfirmRegistry()
	calls := 0
	intent := reg.Register("v1", confirm.NewIntent(confirm.KindDeleteService, "¿Eliminar?", "c-1"),
		func(ctx context.Context) (any, error) {
			calls++
			return nil, nil
		})

	if _, err := reg.Cancel("v1", intent.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if calls != 0 {
		t.Fatal("cancelled action was executed")
	}
	if _, err := reg.Confirm(context.Background(), "v1", intent.ID); !errors.Is(err, ErrIntentExpired) {
		t.Errorf("Confirm after Cancel err = %v, want ErrIntentExpired", err)
	}
}

func TestExpiredIntentIsPurged(t *testing.T) {
	reg := NewConfirmRegistry()
	intent := reg.Register("v1", confirm.NewIntent(confirm.KindLiberate, "¿Liberar?", "s-1"),
		func(ctx context.Context) (any, error) { return nil, nil })

	reg.mu.Lock()
	reg.pending[intent.ID].expires = time.Now().Add(-time.Minute)
	reg.mu.Unlock()

	if _, err := reg.Confirm(context.Background(), "v1", intent.ID); !errors.Is(err, ErrIntentExpired) {
		t.Fatalf("expired Confirm err = %v, want ErrIntentExpired", err)
	}

	reg.mu.Lock()
	remaining := len(reg.pending)
	reg.mu.Unlock()
	if remaining != 0 {
		t.Errorf("pending = %d, expired intent not purged", remaining)
	}
}
