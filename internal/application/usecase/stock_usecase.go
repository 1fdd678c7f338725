// internal/application/usecase/stock_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catdom "revendo/internal/domain/catalog"
	"revendo/internal/domain/confirm"
	"revendo/internal/domain/platforms"
	saledom "revendo/internal/domain/sale"
)

// GenerateStockCommand fills a sibling group with free inventory.
type GenerateStockCommand struct {
	Service string
	Email   string
	Pass    string
	Slots   int // ignored for whole-account entries
}

// StockUsecase creates and bulk-deletes inventory.
type StockUsecase struct {
	sales   saledom.Repository
	catalog catdom.Repository
	now     func() time.Time
}

func NewStockUsecase(sales saledom.Repository, catalog catdom.Repository) *StockUsecase {
	return &StockUsecase{sales: sales, catalog: catalog, now: time.Now}
}

// Generate creates N free profile records, or a single free account record
// when the catalog entry sells whole accounts. One atomic batch.
func (uc *StockUsecase) Generate(ctx context.Context, vendorID string, cmd GenerateStockCommand) ([]saledom.Record, error) {
	if strings.TrimSpace(cmd.Email) == "" || cmd.Pass == "" {
		return nil, saledom.ErrInvalidCredentials
	}

	entries, err := uc.catalog.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	wholeAccount := false
	for _, e := range entries {
		if e.Name == cmd.Service && e.Type == catdom.TypeAccount {
			wholeAccount = true
			break
		}
	}

	slots := cmd.Slots
	if slots < 1 {
		slots = catdom.DefaultCapacity(entries, cmd.Service)
	}
	if slots < 1 {
		slots = 1
	}

	now := uc.now()
	var records []saledom.Record
	if wholeAccount {
		records = []saledom.Record{{
			ID:        uuid.NewString(),
			Email:     strings.TrimSpace(cmd.Email),
			Pass:      cmd.Pass,
			Service:   cmd.Service,
			Type:      saledom.TypeAccount,
			Profile:   saledom.ProfileWholeAccount,
			Occupancy: saledom.FreeSlot(),
			Cost:      decimal.Zero,
		}}
	} else {
		records = make([]saledom.Record, 0, slots)
		for i := 0; i < slots; i++ {
			records = append(records, saledom.Record{
				ID:        uuid.NewString(),
				Email:     strings.TrimSpace(cmd.Email),
				Pass:      cmd.Pass,
				Service:   cmd.Service,
				Type:      saledom.TypeProfile,
				Profile:   fmt.Sprintf("Perfil %d", i+1),
				Occupancy: saledom.FreeSlot(),
				Cost:      decimal.Zero,
			})
		}
	}

	muts := make([]saledom.Mutation, 0, len(records))
	for i := range records {
		records[i].CreatedAt = now
		muts = append(muts, saledom.Put(records[i]))
	}
	if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteGroupIntent gates the destructive group delete behind confirmation.
func (uc *StockUsecase) DeleteGroupIntent(ctx context.Context, vendorID string, key saledom.GroupKey) (confirm.Intent, error) {
	group, err := uc.sales.ListGroup(ctx, vendorID, key)
	if err != nil {
		return confirm.Intent{}, err
	}
	if len(group) == 0 {
		return confirm.Intent{}, saledom.ErrNotFound
	}
	ids := make([]string, 0, len(group))
	for _, r := range group {
		ids = append(ids, r.ID)
	}
	prompt := fmt.Sprintf("¿Eliminar la cuenta %s con %d registro(s)?", key.Email, len(group))
	return confirm.NewIntent(confirm.KindDeleteAccount, prompt, ids...), nil
}

// DeleteGroup removes an entire sibling group in one batch.
func (uc *StockUsecase) DeleteGroup(ctx context.Context, vendorID string, key saledom.GroupKey) error {
	group, err := uc.sales.ListGroup(ctx, vendorID, key)
	if err != nil {
		return err
	}
	muts := make([]saledom.Mutation, 0, len(group))
	for _, r := range group {
		muts = append(muts, saledom.Remove(r.ID))
	}
	if len(muts) == 0 {
		return nil
	}
	return uc.sales.ApplyBatch(ctx, vendorID, muts)
}

// DeleteFreeStock removes every free slot of one platform in one batch.
func (uc *StockUsecase) DeleteFreeStock(ctx context.Context, vendorID, service string) (int, error) {
	records, err := uc.sales.ListRecent(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	base := platforms.Base(service)
	muts := make([]saledom.Mutation, 0)
	for _, r := range records {
		if r.Occupancy.Kind != saledom.Free {
			continue
		}
		if service != "" && platforms.Base(r.Service) != base {
			continue
		}
		muts = append(muts, saledom.Remove(r.ID))
	}
	if len(muts) == 0 {
		return 0, nil
	}
	if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
		return 0, err
	}
	log.Printf("[stock] deleted %d free slot(s) vendor=%s service=%q", len(muts), vendorID, service)
	return len(muts), nil
}
