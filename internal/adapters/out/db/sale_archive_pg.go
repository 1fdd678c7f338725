// internal/adapters/out/db/sale_archive_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	catdom "revendo/internal/domain/catalog"
	clientdom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

// SaleArchivePG mirrors sale records into PostgreSQL for reporting. The
// mirror is write-only from the console's point of view: reads happen in
// BI tooling, never here.
type SaleArchivePG struct {
	DB *sql.DB
}

func NewSaleArchivePG(db *sql.DB) *SaleArchivePG {
	return &SaleArchivePG{DB: db}
}

var _ saledom.Archiver = (*SaleArchivePG)(nil)

// Open connects and pings; callers treat failure as "archive disabled".
func Open(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("db: empty DATABASE_URL")
	}
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return conn, nil
}

// EnsureSchema creates the mirror tables when missing.
func (a *SaleArchivePG) EnsureSchema(ctx context.Context) error {
	if a.DB == nil {
		return errors.New("db: nil connection")
	}
	for _, ddl := range []string{
		saledom.SalesTableDDL,
		catdom.CatalogTableDDL,
		clientdom.ClientsTableDDL,
	} {
		if _, err := a.DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("db: ensure schema: %w", err)
		}
	}
	return nil
}

// ArchiveBatch upserts the given records in one transaction.
func (a *SaleArchivePG) ArchiveBatch(ctx context.Context, records []saledom.Record) error {
	if a.DB == nil {
		return errors.New("db: nil connection")
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
INSERT INTO sales (id, email, pass, service, type, profile, pin, client, phone, cost, end_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
  email      = EXCLUDED.email,
  pass       = EXCLUDED.pass,
  service    = EXCLUDED.service,
  type       = EXCLUDED.type,
  profile    = EXCLUDED.profile,
  pin        = EXCLUDED.pin,
  client     = EXCLUDED.client,
  phone      = EXCLUDED.phone,
  cost       = EXCLUDED.cost,
  end_date   = EXCLUDED.end_date,
  updated_at = EXCLUDED.updated_at
`

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("db: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var updatedAt sql.NullTime
		if r.UpdatedAt != nil {
			updatedAt = sql.NullTime{Time: *r.UpdatedAt, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			r.ID,
			r.Email,
			r.Pass,
			r.Service,
			string(r.Type),
			r.Profile,
			r.PIN,
			r.Occupancy.Encode(),
			r.Phone,
			r.Cost.StringFixed(2),
			r.EndDate,
			r.CreatedAt,
			updatedAt,
		)
		if err != nil {
			return fmt.Errorf("db: upsert sale %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit: %w", err)
	}
	return nil
}
