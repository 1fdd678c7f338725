// internal/domain/catalog/repository_port.go
package catalog

import "context"

// CreateInput / UpdateInput are the write contracts for the repository.

type CreateInput struct {
	Name         string
	Cost         string // decimal string; parsed at the usecase boundary
	Type         Type
	DefaultSlots int
}

type UpdateInput struct {
	Name         *string
	Cost         *string
	Type         *Type
	DefaultSlots *int
}

// Repository is the catalog persistence port. The catalog is small
// (tens of rows per vendor), so List returns everything.
type Repository interface {
	GetByID(ctx context.Context, vendorID, id string) (Entry, error)
	List(ctx context.Context, vendorID string) ([]Entry, error)
	Create(ctx context.Context, vendorID string, e Entry) (Entry, error)
	Update(ctx context.Context, vendorID string, e Entry) (Entry, error)
	Delete(ctx context.Context, vendorID, id string) error
}
