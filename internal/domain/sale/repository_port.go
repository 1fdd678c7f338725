// internal/domain/sale/repository_port.go
package sale

import "context"

// MaxRecentRecords caps inventory reads to bound store cost.
const MaxRecentRecords = 3000

// ========================================
// Mutations
// ========================================

// MutationKind tags one write inside an atomic batch.
type MutationKind int

const (
	MutPut MutationKind = iota
	MutDelete
)

// Mutation is one write. Multi-record operations (fragmentation, multi-slot
// sale, migration, unify, bulk delete) submit all their Mutations in a
// single ApplyBatch call: either every write lands or none does.
type Mutation struct {
	Kind   MutationKind
	Record Record // for MutDelete only Record.ID is consulted
}

func Put(r Record) Mutation { return Mutation{Kind: MutPut, Record: r} }

func Remove(id string) Mutation {
	return Mutation{Kind: MutDelete, Record: Record{ID: id}}
}

// ========================================
// Repository Port
// ========================================

type Repository interface {
	GetByID(ctx context.Context, vendorID, id string) (Record, error)

	// ListRecent returns up to MaxRecentRecords records, createdAt desc.
	ListRecent(ctx context.Context, vendorID string) ([]Record, error)

	// ListGroup returns the sibling group for a credential pair.
	ListGroup(ctx context.Context, vendorID string, key GroupKey) ([]Record, error)

	// ApplyBatch commits all mutations atomically.
	ApplyBatch(ctx context.Context, vendorID string, muts []Mutation) error
}

// Archiver is an optional mirror for reporting deployments. Failures are
// logged, never surfaced: archival must not block a sale.
type Archiver interface {
	ArchiveBatch(ctx context.Context, records []Record) error
}
