// internal/domain/client/entity.go
package client

import (
	"errors"
	"strings"
	"time"

	"revendo/internal/domain/normalize"
)

// Entry is a denormalized client identity cache. Not authoritative: sale
// records keep their own copy of name/phone for historical accuracy.
type Entry struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}

var (
	ErrNotFound    = errors.New("client: not found")
	ErrInvalidName = errors.New("client: invalid name")
)

func New(id, name, phone string, createdAt time.Time) (Entry, error) {
	e := Entry{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		CreatedAt: createdAt,
	}
	if e.Name == "" {
		return Entry{}, ErrInvalidName
	}
	return e, nil
}

// SameName dedupes directory entries case- and accent-insensitively.
func (e Entry) SameName(name string) bool {
	return normalize.Fold(e.Name) == normalize.Fold(name)
}

// ClientsTableDDL defines the SQL for the clients mirror table.
const ClientsTableDDL = `
CREATE TABLE IF NOT EXISTS clients (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  phone      TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

  CONSTRAINT chk_clients_non_empty CHECK (char_length(trim(name)) > 0)
);
`
