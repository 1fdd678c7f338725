// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"revendo/internal/domain/common"
)

// ========================================
// Types
// ========================================

// Type classifies a sellable offering template.
type Type string

const (
	TypeProfile Type = "Perfil"
	TypeAccount Type = "Cuenta"
	TypePackage Type = "Paquete"
)

// Entry is one sellable offering template in a vendor's catalog.
type Entry struct {
	ID           string
	Name         string // unique within a vendor
	Cost         decimal.Decimal
	Type         Type
	DefaultSlots int // capacity for the platform this entry describes

	common.Timestamps
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrConflict     = errors.New("catalog: name already exists")
	ErrInvalidName  = errors.New("catalog: invalid name")
	ErrInvalidCost  = errors.New("catalog: invalid cost")
	ErrInvalidType  = errors.New("catalog: invalid type")
	ErrInvalidSlots = errors.New("catalog: defaultSlots must be positive")
)

// ========================================
// Constructors / validation
// ========================================

func New(id, name string, cost decimal.Decimal, typ Type, defaultSlots int) (Entry, error) {
	e := Entry{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(name),
		Cost:         cost,
		Type:         typ,
		DefaultSlots: defaultSlots,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e Entry) Validate() error {
	if e.Name == "" {
		return ErrInvalidName
	}
	if e.Cost.IsNegative() {
		return ErrInvalidCost
	}
	switch e.Type {
	case TypeProfile, TypeAccount, TypePackage:
	default:
		return ErrInvalidType
	}
	if e.DefaultSlots < 1 {
		return ErrInvalidSlots
	}
	return nil
}

// CatalogTableDDL defines the SQL for the catalog mirror table.
const CatalogTableDDL = `
CREATE TABLE IF NOT EXISTS catalog (
  id            TEXT    PRIMARY KEY,
  name          TEXT    NOT NULL,
  cost          NUMERIC(12,2) NOT NULL DEFAULT 0,
  type          TEXT    NOT NULL,
  default_slots INTEGER NOT NULL DEFAULT 1,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ,

  CONSTRAINT chk_catalog_non_empty CHECK (char_length(trim(name)) > 0),
  CONSTRAINT chk_catalog_slots CHECK (default_slots >= 1)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_catalog_name ON catalog(lower(name));
`
