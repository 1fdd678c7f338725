// internal/application/usecase/renewal_usecase.go
package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"revendo/internal/domain/normalize"
	saledom "revendo/internal/domain/sale"
)

// RenewalUsecase covers quick-renew and credential migration.
type RenewalUsecase struct {
	sales saledom.Repository
	now   func() time.Time
}

func NewRenewalUsecase(sales saledom.Repository) *RenewalUsecase {
	return &RenewalUsecase{sales: sales, now: time.Now}
}

// QuickRenew extends the record's end date by one calendar month plus one
// day, anchored on the current end date (not on today). Records without an
// end date cannot be renewed.
func (uc *RenewalUsecase) QuickRenew(ctx context.Context, vendorID, saleID string) (saledom.Record, error) {
	rec, err := uc.sales.GetByID(ctx, vendorID, saleID)
	if err != nil {
		return saledom.Record{}, err
	}
	next, ok := normalize.AddToDate(rec.EndDate, 1, 1)
	if !ok {
		return saledom.Record{}, saledom.ErrNoEndDate
	}
	rec.EndDate = next
	rec.Touch(uc.now())

	if err := uc.sales.ApplyBatch(ctx, vendorID, []saledom.Mutation{saledom.Put(rec)}); err != nil {
		return saledom.Record{}, err
	}
	return rec, nil
}

// MigrateCredentials moves the occupant of one record onto another (the
// client is handed new login credentials) and resets the source to a
// caller-specified sentinel status, atomically.
//
// sourceStatus "LIBRE" fully clears the source's billing fields; a
// maintenance sentinel keeps the slot blocked and clears only
// phone/date/cost.
func (uc *RenewalUsecase) MigrateCredentials(ctx context.Context, vendorID, fromID, toID, sourceStatus string) error {
	from, err := uc.sales.GetByID(ctx, vendorID, fromID)
	if err != nil {
		return err
	}
	to, err := uc.sales.GetByID(ctx, vendorID, toID)
	if err != nil {
		return err
	}

	now := uc.now()

	to.Occupancy = from.Occupancy
	to.Phone = from.Phone
	to.EndDate = from.EndDate
	to.Cost = from.Cost
	to.Profile = from.Profile
	to.PIN = from.PIN
	to.Touch(now)

	status := saledom.ParseOccupancy(sourceStatus)
	switch status.Kind {
	case saledom.Free:
		from.ClearOccupant()
	default:
		from.Occupancy = status
		from.Phone = ""
		from.EndDate = ""
		from.Cost = decimal.Zero
	}
	from.Touch(now)

	return uc.sales.ApplyBatch(ctx, vendorID, []saledom.Mutation{
		saledom.Put(to),
		saledom.Put(from),
	})
}
