// internal/adapters/in/http/handlers/confirm_registry.go
package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"revendo/internal/domain/confirm"
)

// intentTTL bounds how long an unanswered prompt stays executable.
const intentTTL = 10 * time.Minute

var ErrIntentExpired = errors.New("confirm: intent not found or expired")

// ConfirmRegistry binds pending intents to their deferred actions. Intents
// are vendor-scoped: a confirmation can only execute an action registered
// under the same vendor.
type ConfirmRegistry struct {
	mu      sync.Mutex
	pending map[string]*pendingIntent
}

type pendingIntent struct {
	vendorID string
	intent   confirm.Intent
	action   func(ctx context.Context) (any, error)
	expires  time.Time
}

func NewConfirmRegistry() *ConfirmRegistry {
	return &ConfirmRegistry{pending: make(map[string]*pendingIntent)}
}

// Register stores the intent with its deferred action and returns the
// intent unchanged, so handlers can pass it straight to the response.
func (reg *ConfirmRegistry) Register(vendorID string, intent confirm.Intent, action func(ctx context.Context) (any, error)) confirm.Intent {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.purgeLocked(time.Now())
	reg.pending[intent.ID] = &pendingIntent{
		vendorID: vendorID,
		intent:   intent,
		action:   action,
		expires:  time.Now().Add(intentTTL),
	}
	return intent
}

// Confirm executes and removes the intent's action.
func (reg *ConfirmRegistry) Confirm(ctx context.Context, vendorID, intentID string) (any, error) {
	p, err := reg.take(vendorID, intentID)
	if err != nil {
		return nil, err
	}
	return p.action(ctx)
}

// Cancel drops the intent without executing it.
func (reg *ConfirmRegistry) Cancel(vendorID, intentID string) (confirm.Outcome, error) {
	if _, err := reg.take(vendorID, intentID); err != nil {
		return confirm.Cancelled, err
	}
	return confirm.Cancelled, nil
}

func (reg *ConfirmRegistry) take(vendorID, intentID string) (*pendingIntent, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := time.Now()
	reg.purgeLocked(now)

	p, ok := reg.pending[intentID]
	if !ok || p.vendorID != vendorID || now.After(p.expires) {
		return nil, ErrIntentExpired
	}
	delete(reg.pending, intentID)
	return p, nil
}

func (reg *ConfirmRegistry) purgeLocked(now time.Time) {
	for id, p := range reg.pending {
		if now.After(p.expires) {
			delete(reg.pending, id)
		}
	}
}
