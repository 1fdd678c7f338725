// internal/application/usecase/client_usecase.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	clidom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

// ClientDirectoryUsecase maintains the denormalized client cache.
type ClientDirectoryUsecase struct {
	clients clidom.Repository
	now     func() time.Time
}

func NewClientDirectoryUsecase(clients clidom.Repository) *ClientDirectoryUsecase {
	return &ClientDirectoryUsecase{clients: clients, now: time.Now}
}

var _ DirectoryUpserter = (*ClientDirectoryUsecase)(nil)

// EnsureEntry adds a directory entry for a first-seen customer name.
// Sentinel statuses never enter the directory; duplicates are matched
// case- and accent-insensitively.
func (uc *ClientDirectoryUsecase) EnsureEntry(ctx context.Context, vendorID, name, phone string) error {
	if saledom.IsSentinelStatus(name) {
		return nil
	}
	existing, err := uc.clients.List(ctx, vendorID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.SameName(name) {
			return nil
		}
	}
	entry, err := clidom.New(uuid.NewString(), name, phone, uc.now())
	if err != nil {
		return err
	}
	_, err = uc.clients.Create(ctx, vendorID, entry)
	return err
}

// List returns the directory merged with distinct customer names appearing
// in the inventory, deduplicated case-insensitively. The directory is a
// cache: sale records stay authoritative for their own occupant copy.
func (uc *ClientDirectoryUsecase) List(ctx context.Context, vendorID string, sales []saledom.Record) ([]clidom.Entry, error) {
	entries, err := uc.clients.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]clidom.Entry, 0, len(entries))
	out = append(out, entries...)

	for _, r := range sales {
		if !r.Occupancy.Billable() {
			continue
		}
		name := r.Occupancy.Client
		seen := false
		for _, e := range out {
			if e.SameName(name) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, clidom.Entry{
				ID:        "sale:" + r.ID,
				Name:      name,
				Phone:     r.Phone,
				CreatedAt: r.CreatedAt,
			})
		}
	}
	return out, nil
}

// Delete removes a stored directory entry.
func (uc *ClientDirectoryUsecase) Delete(ctx context.Context, vendorID, id string) error {
	return uc.clients.Delete(ctx, vendorID, id)
}
