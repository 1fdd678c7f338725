// internal/application/usecase/fragmentation_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catdom "revendo/internal/domain/catalog"
	saledom "revendo/internal/domain/sale"
)

// SlotAssignment names one profile slot being sold ({profile, pin}).
type SlotAssignment struct {
	Profile string `json:"profile"`
	PIN     string `json:"pin"`
}

// FragmentCommand splits one whole-account record into per-profile records.
type FragmentCommand struct {
	AccountID      string
	TargetProfiles int // slots sold immediately
	Assignments    []SlotAssignment

	// Occupant shared by the sold slots (one full-account sale broken into
	// N profile sales).
	Client    string
	Phone     string
	TotalCost decimal.Decimal
	EndDate   string
}

// FragmentationUsecase maintains the sibling-group variant invariant when
// converting between whole-account and per-profile representations.
type FragmentationUsecase struct {
	sales    saledom.Repository
	catalog  catdom.Repository
	archiver saledom.Archiver // optional
	now      func() time.Time
}

func NewFragmentationUsecase(sales saledom.Repository, catalog catdom.Repository, archiver saledom.Archiver) *FragmentationUsecase {
	return &FragmentationUsecase{
		sales:    sales,
		catalog:  catalog,
		archiver: archiver,
		now:      time.Now,
	}
}

// FragmentAccount converts the account record's group into
// max(priorSiblings+1, catalog default) profile records: the first
// TargetProfiles carry the sold occupant with a proportional unit cost, the
// rest go to the free pool. One write reuses the account record's identity
// so the group never orphans; everything commits in a single batch.
func (uc *FragmentationUsecase) FragmentAccount(ctx context.Context, vendorID string, cmd FragmentCommand) ([]saledom.Record, error) {
	account, err := uc.sales.GetByID(ctx, vendorID, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	// Re-read guard: a concurrent fragmentation may already have split it.
	if account.Type != saledom.TypeAccount {
		return nil, saledom.ErrNotAccount
	}
	if cmd.TargetProfiles < 0 || len(cmd.Assignments) > cmd.TargetProfiles {
		return nil, fmt.Errorf("fragment: %d assignments for %d profiles", len(cmd.Assignments), cmd.TargetProfiles)
	}

	siblings, err := uc.sales.ListGroup(ctx, vendorID, account.GroupKey())
	if err != nil {
		return nil, err
	}
	others := make([]saledom.Record, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != account.ID {
			others = append(others, s)
		}
	}
	prior := len(others)

	entries, err := uc.catalog.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	capacity := saledom.ResolveCapacity(prior, catdom.DefaultCapacity(entries, account.Service))
	if cmd.TargetProfiles > capacity {
		return nil, saledom.ErrCapacityExceeded
	}

	profileService := catdom.FindIndividualServiceName(entries, account.Service)
	unitCost := decimal.Zero
	if cmd.TargetProfiles > 0 {
		unitCost = cmd.TotalCost.Div(decimal.NewFromInt(int64(cmd.TargetProfiles))).Round(2)
	}

	now := uc.now()
	records := make([]saledom.Record, 0, capacity)
	muts := make([]saledom.Mutation, 0, capacity)
	for i := 0; i < capacity; i++ {
		rec := saledom.Record{
			Email:   account.Email,
			Pass:    account.Pass,
			Service: profileService,
			Type:    saledom.TypeProfile,
			Profile: fmt.Sprintf("Perfil %d", i+1),
		}
		switch {
		case i == 0:
			// Reuse the original identity: the whole-account record
			// ceases to exist as such instead of being orphaned.
			rec.ID = account.ID
			rec.CreatedAt = account.CreatedAt
		case i-1 < len(others):
			// Rewrite pre-existing siblings in place so the group lands
			// on exactly capacity members instead of growing past it.
			rec.ID = others[i-1].ID
			rec.CreatedAt = others[i-1].CreatedAt
		default:
			rec.ID = uuid.NewString()
			rec.CreatedAt = now
		}
		rec.Touch(now)

		if i < cmd.TargetProfiles {
			if i < len(cmd.Assignments) {
				if a := cmd.Assignments[i]; a.Profile != "" {
					rec.Profile = a.Profile
				}
				rec.PIN = cmd.Assignments[i].PIN
			}
			rec.Occupancy = saledom.OccupiedBy(cmd.Client)
			rec.Phone = cmd.Phone
			rec.Cost = unitCost
			rec.EndDate = cmd.EndDate
		} else {
			rec.Occupancy = saledom.FreeSlot()
			rec.Cost = decimal.Zero
		}

		records = append(records, rec)
		muts = append(muts, saledom.Put(rec))
	}

	if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
		return nil, err
	}
	uc.archive(ctx, records)
	return records, nil
}

// LiberateSlot returns a slot to the free pool. Idempotent: re-liberating a
// free slot re-clears already-clear fields.
func (uc *FragmentationUsecase) LiberateSlot(ctx context.Context, vendorID, saleID string) (saledom.Record, error) {
	rec, err := uc.sales.GetByID(ctx, vendorID, saleID)
	if err != nil {
		return saledom.Record{}, err
	}
	siblings, err := uc.sales.ListGroup(ctx, vendorID, rec.GroupKey())
	if err != nil {
		return saledom.Record{}, err
	}
	entries, err := uc.catalog.List(ctx, vendorID)
	if err != nil {
		return saledom.Record{}, err
	}

	// Sole members and account-dominant groups free up as whole accounts;
	// anything inside a fragmented group stays a profile slot.
	freedType := saledom.TypeProfile
	if len(siblings) <= 1 || saledom.DominantType(siblings) == saledom.TypeAccount {
		freedType = saledom.TypeAccount
	}

	rec.ClearOccupant()
	rec.Type = freedType
	rec.Service = catdom.ResolveFreePoolName(entries, rec.Service)
	rec.Touch(uc.now())

	if err := uc.sales.ApplyBatch(ctx, vendorID, []saledom.Mutation{saledom.Put(rec)}); err != nil {
		return saledom.Record{}, err
	}
	uc.archive(ctx, []saledom.Record{rec})
	return rec, nil
}

// UnifyForm rewrites a fragmented group back into a single account sale.
type UnifyForm struct {
	Service string
	Client  string
	Phone   string
	Cost    decimal.Decimal
	EndDate string
	PIN     string
}

// UnifyIntoAccount deletes the target's siblings and rewrites the target as
// the group's single whole-account record.
func (uc *FragmentationUsecase) UnifyIntoAccount(ctx context.Context, vendorID, targetID string, form UnifyForm) (saledom.Record, error) {
	target, err := uc.sales.GetByID(ctx, vendorID, targetID)
	if err != nil {
		return saledom.Record{}, err
	}
	siblings, err := uc.sales.ListGroup(ctx, vendorID, target.GroupKey())
	if err != nil {
		return saledom.Record{}, err
	}

	muts := make([]saledom.Mutation, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != target.ID {
			muts = append(muts, saledom.Remove(s.ID))
		}
	}

	target.Type = saledom.TypeAccount
	target.Profile = "General"
	if form.Service != "" {
		target.Service = form.Service
	}
	target.Occupancy = saledom.ParseOccupancy(form.Client)
	target.Phone = form.Phone
	target.Cost = form.Cost
	target.EndDate = form.EndDate
	target.PIN = form.PIN
	target.Touch(uc.now())
	muts = append(muts, saledom.Put(target))

	if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
		return saledom.Record{}, err
	}
	uc.archive(ctx, []saledom.Record{target})
	return target, nil
}

func (uc *FragmentationUsecase) archive(ctx context.Context, records []saledom.Record) {
	if uc.archiver == nil || len(records) == 0 {
		return
	}
	if err := uc.archiver.ArchiveBatch(ctx, records); err != nil {
		log.Printf("[fragmentation] archive mirror failed: %v", err)
	}
}
