// internal/domain/client/repository_port.go
package client

import "context"

type Repository interface {
	List(ctx context.Context, vendorID string) ([]Entry, error)
	Create(ctx context.Context, vendorID string, e Entry) (Entry, error)
	Delete(ctx context.Context, vendorID, id string) error
}
