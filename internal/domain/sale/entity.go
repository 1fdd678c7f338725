// internal/domain/sale/entity.go
package sale

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"revendo/internal/domain/common"
)

// ========================================
// Types
// ========================================

// Type distinguishes a per-profile slot from a whole unfragmented account.
type Type string

const (
	TypeProfile Type = "Perfil"
	TypeAccount Type = "Cuenta"
)

// ProfileWholeAccount is the profile label carried by whole-account records.
const ProfileWholeAccount = "Cuenta Completa"

// Record is one sellable unit: an occupied slot or free inventory.
// Records sharing (Email, Pass) form a sibling group (one shared login).
type Record struct {
	ID      string
	Email   string
	Pass    string
	Service string // free-text label; bucketed via platforms.Base
	Type    Type
	Profile string // "Perfil 1", ..., or ProfileWholeAccount
	PIN     string // optional numeric string

	Occupancy Occupancy
	Phone     string
	Cost      decimal.Decimal
	EndDate   string // YYYY-MM-DD; empty for free/maintenance slots

	common.Timestamps
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound              = errors.New("sale: not found")
	ErrInvalidID             = errors.New("sale: invalid id")
	ErrInvalidCredentials    = errors.New("sale: email/pass required")
	ErrNotAccount            = errors.New("sale: record is not a whole account")
	ErrCapacityExceeded      = errors.New("sale: requested profiles exceed group capacity")
	ErrInsufficientFreeSlots = errors.New("sale: insufficient free slots for requested quantity")
	ErrNoEndDate             = errors.New("sale: record has no end date")
)

// ========================================
// Group identity
// ========================================

// GroupKey identifies a sibling group: the shared credential pair.
type GroupKey struct {
	Email string
	Pass  string
}

func (r Record) GroupKey() GroupKey {
	return GroupKey{Email: strings.TrimSpace(r.Email), Pass: r.Pass}
}

// ========================================
// Validation
// ========================================

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrInvalidID
	}
	if strings.TrimSpace(r.Email) == "" || r.Pass == "" {
		return ErrInvalidCredentials
	}
	switch r.Type {
	case TypeProfile, TypeAccount:
	default:
		return errors.New("sale: invalid type")
	}
	return nil
}

// ClearOccupant resets every occupant/billing field and frees the slot.
func (r *Record) ClearOccupant() {
	r.Occupancy = FreeSlot()
	r.Phone = ""
	r.EndDate = ""
	r.Cost = decimal.Zero
	r.Profile = ""
	r.PIN = ""
}

// SalesTableDDL defines the SQL for the sales archive mirror.
const SalesTableDDL = `
CREATE TABLE IF NOT EXISTS sales (
  id         TEXT PRIMARY KEY,
  email      TEXT NOT NULL,
  pass       TEXT NOT NULL,
  service    TEXT NOT NULL,
  type       TEXT NOT NULL,
  profile    TEXT NOT NULL DEFAULT '',
  pin        TEXT NOT NULL DEFAULT '',
  client     TEXT NOT NULL DEFAULT 'LIBRE',
  phone      TEXT NOT NULL DEFAULT '',
  cost       NUMERIC(12,2) NOT NULL DEFAULT 0,
  end_date   TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ,

  CONSTRAINT chk_sales_non_empty CHECK (
    char_length(trim(id)) > 0
    AND char_length(trim(email)) > 0
  )
);

CREATE INDEX IF NOT EXISTS idx_sales_group ON sales(email, pass);
CREATE INDEX IF NOT EXISTS idx_sales_end_date ON sales(end_date);
`
