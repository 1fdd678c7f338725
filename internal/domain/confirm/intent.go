// internal/domain/confirm/intent.go
package confirm

import (
	"time"

	"github.com/google/uuid"
)

// Destructive and state-changing actions are confirmation-gated: the usecase
// returns an Intent instead of mutating, the UI surfaces the prompt, and the
// confirmation endpoint resolves it. Intents live in memory only.

// Kind enumerates the gated actions.
type Kind string

const (
	KindDeleteService   Kind = "delete_service"
	KindLiberate        Kind = "liberate"
	KindDeleteAccount   Kind = "delete_account"
	KindDeleteFreeStock Kind = "delete_free_stock"
	KindFragment        Kind = "fragment"
)

// Intent describes one pending action awaiting user confirmation.
type Intent struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	TargetIDs []string  `json:"targetIds"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewIntent(kind Kind, prompt string, targetIDs ...string) Intent {
	return Intent{
		ID:        uuid.NewString(),
		Kind:      kind,
		TargetIDs: targetIDs,
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
}

// Outcome is the resolution of an Intent. Cancelled is a no-op, not an error.
type Outcome int

const (
	Cancelled Outcome = iota
	Confirmed
)
