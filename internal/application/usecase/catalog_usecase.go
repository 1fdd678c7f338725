// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catdom "revendo/internal/domain/catalog"
	"revendo/internal/domain/confirm"
	"revendo/internal/domain/normalize"
	saledom "revendo/internal/domain/sale"
)

// CatalogUsecase manages the vendor's offering templates.
type CatalogUsecase struct {
	catalog catdom.Repository
	sales   saledom.Repository
	now     func() time.Time
}

func NewCatalogUsecase(catalog catdom.Repository, sales saledom.Repository) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog, sales: sales, now: time.Now}
}

func (uc *CatalogUsecase) List(ctx context.Context, vendorID string) ([]catdom.Entry, error) {
	return uc.catalog.List(ctx, vendorID)
}

func (uc *CatalogUsecase) Create(ctx context.Context, vendorID string, in catdom.CreateInput) (catdom.Entry, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(in.Cost))
	if err != nil {
		return catdom.Entry{}, catdom.ErrInvalidCost
	}
	entry, err := catdom.New(uuid.NewString(), in.Name, cost, in.Type, in.DefaultSlots)
	if err != nil {
		return catdom.Entry{}, err
	}
	existing, err := uc.catalog.List(ctx, vendorID)
	if err != nil {
		return catdom.Entry{}, err
	}
	for _, e := range existing {
		if normalize.Fold(e.Name) == normalize.Fold(entry.Name) {
			return catdom.Entry{}, catdom.ErrConflict
		}
	}
	entry.CreatedAt = uc.now()
	return uc.catalog.Create(ctx, vendorID, entry)
}

func (uc *CatalogUsecase) Update(ctx context.Context, vendorID, id string, in catdom.UpdateInput) (catdom.Entry, error) {
	entry, err := uc.catalog.GetByID(ctx, vendorID, id)
	if err != nil {
		return catdom.Entry{}, err
	}
	if in.Name != nil {
		entry.Name = strings.TrimSpace(*in.Name)
	}
	if in.Cost != nil {
		cost, cerr := decimal.NewFromString(strings.TrimSpace(*in.Cost))
		if cerr != nil {
			return catdom.Entry{}, catdom.ErrInvalidCost
		}
		entry.Cost = cost
	}
	if in.Type != nil {
		entry.Type = *in.Type
	}
	if in.DefaultSlots != nil {
		entry.DefaultSlots = *in.DefaultSlots
	}
	if err := entry.Validate(); err != nil {
		return catdom.Entry{}, err
	}
	entry.Touch(uc.now())
	return uc.catalog.Update(ctx, vendorID, entry)
}

// DeleteIntent gates catalog removal: deleting a service also deletes its
// inventory, so the prompt says how much goes with it.
func (uc *CatalogUsecase) DeleteIntent(ctx context.Context, vendorID, id string) (confirm.Intent, error) {
	entry, err := uc.catalog.GetByID(ctx, vendorID, id)
	if err != nil {
		return confirm.Intent{}, err
	}
	records, err := uc.sales.ListRecent(ctx, vendorID)
	if err != nil {
		return confirm.Intent{}, err
	}
	n := 0
	for _, r := range records {
		if normalize.Fold(r.Service) == normalize.Fold(entry.Name) {
			n++
		}
	}
	prompt := "¿Eliminar el servicio " + entry.Name + "?"
	if n > 0 {
		prompt = "¿Eliminar el servicio " + entry.Name + " y sus registros asociados?"
	}
	return confirm.NewIntent(confirm.KindDeleteService, prompt, id), nil
}

// Delete removes the entry and, in the same pass, its matching inventory
// records (each group delete is its own atomic batch).
func (uc *CatalogUsecase) Delete(ctx context.Context, vendorID, id string) error {
	entry, err := uc.catalog.GetByID(ctx, vendorID, id)
	if err != nil {
		return err
	}
	records, err := uc.sales.ListRecent(ctx, vendorID)
	if err != nil {
		return err
	}
	muts := make([]saledom.Mutation, 0)
	for _, r := range records {
		if normalize.Fold(r.Service) == normalize.Fold(entry.Name) {
			muts = append(muts, saledom.Remove(r.ID))
		}
	}
	if len(muts) > 0 {
		if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
			return err
		}
	}
	return uc.catalog.Delete(ctx, vendorID, id)
}
