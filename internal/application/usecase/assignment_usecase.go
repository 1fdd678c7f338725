// internal/application/usecase/assignment_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	catdom "revendo/internal/domain/catalog"
	"revendo/internal/domain/confirm"
	saledom "revendo/internal/domain/sale"
)

// AssignmentForm is one sale submission from the console.
type AssignmentForm struct {
	ID       string // record being edited; anchors the sibling-slot search
	Client   string
	Phone    string
	Service  string
	Cost     decimal.Decimal
	EndDate  string
	Quantity int // 0/1 = single slot

	Profile string // single-slot override
	PIN     string

	Assignments []SlotAssignment // per-slot labels for quantity > 1
}

// ApplyKind reports how a submission was classified.
type ApplyKind int

const (
	// ApplyUpdated: a single record was written (simple edit/default path).
	ApplyUpdated ApplyKind = iota
	// ApplyMultiSlot: quantity slots were consumed in one batch.
	ApplyMultiSlot
	// ApplyNeedsFragment: the target is a whole account; nothing was
	// written, the caller must confirm fragmentation first.
	ApplyNeedsFragment
)

// ApplyResult is what a submission produced.
type ApplyResult struct {
	Kind    ApplyKind
	Records []saledom.Record
	Intent  *confirm.Intent // set when Kind == ApplyNeedsFragment
}

// DirectoryUpserter records first-seen client names. Must never block a
// sale: implementations report errors, callers only log them.
type DirectoryUpserter interface {
	EnsureEntry(ctx context.Context, vendorID, name, phone string) error
}

// AssignmentUsecase applies purchases against free slots.
type AssignmentUsecase struct {
	sales     saledom.Repository
	catalog   catdom.Repository
	directory DirectoryUpserter // nil-tolerant
	archiver  saledom.Archiver  // nil-tolerant
	now       func() time.Time
}

func NewAssignmentUsecase(sales saledom.Repository, catalog catdom.Repository, directory DirectoryUpserter, archiver saledom.Archiver) *AssignmentUsecase {
	return &AssignmentUsecase{
		sales:     sales,
		catalog:   catalog,
		directory: directory,
		archiver:  archiver,
		now:       time.Now,
	}
}

// Apply classifies the submission and produces its batch of mutations.
func (uc *AssignmentUsecase) Apply(ctx context.Context, vendorID string, form AssignmentForm) (ApplyResult, error) {
	original, err := uc.sales.GetByID(ctx, vendorID, form.ID)
	if err != nil {
		return ApplyResult{}, err
	}

	newOcc := saledom.ParseOccupancy(form.Client)
	quantity := form.Quantity
	if quantity < 1 {
		quantity = 1
	}

	entries, err := uc.catalog.List(ctx, vendorID)
	if err != nil {
		return ApplyResult{}, err
	}
	target := findEntryByName(entries, form.Service)

	// The directory write precedes the sale mutation and never blocks it.
	if newOcc.Kind == saledom.Occupied && uc.directory != nil {
		if derr := uc.directory.EnsureEntry(ctx, vendorID, form.Client, form.Phone); derr != nil {
			log.Printf("[assignment] directory upsert failed client=%q: %v", form.Client, derr)
		}
	}

	// Selling individual profiles out of a whole account requires the
	// vendor to confirm fragmentation first; declining changes nothing.
	if original.Type == saledom.TypeAccount &&
		newOcc.Kind == saledom.Occupied &&
		(target == nil || target.Type != catdom.TypeAccount) {
		intent := confirm.NewIntent(
			confirm.KindFragment,
			fmt.Sprintf("La cuenta %s está sin fragmentar. ¿Dividirla en perfiles?", original.Email),
			original.ID,
		)
		return ApplyResult{Kind: ApplyNeedsFragment, Intent: &intent}, nil
	}

	if quantity > 1 {
		return uc.applyMultiSlot(ctx, vendorID, original, form, newOcc, quantity)
	}
	return uc.applySingle(ctx, vendorID, original, form, newOcc)
}

// applyMultiSlot consumes quantity free slots in the anchor's sibling group,
// distributing the total cost evenly (two-decimal rounding per slot).
func (uc *AssignmentUsecase) applyMultiSlot(ctx context.Context, vendorID string, anchor saledom.Record, form AssignmentForm, occ saledom.Occupancy, quantity int) (ApplyResult, error) {
	group, err := uc.sales.ListGroup(ctx, vendorID, anchor.GroupKey())
	if err != nil {
		return ApplyResult{}, err
	}

	// Free slots, the one being edited first.
	free := saledom.FreeSlots(group)
	for i := range free {
		if free[i].ID == anchor.ID && i > 0 {
			free[0], free[i] = free[i], free[0]
			break
		}
	}
	if len(free) < quantity {
		return ApplyResult{}, saledom.ErrInsufficientFreeSlots
	}

	unitCost := form.Cost.Div(decimal.NewFromInt(int64(quantity))).Round(2)
	now := uc.now()

	written := make([]saledom.Record, 0, quantity)
	muts := make([]saledom.Mutation, 0, quantity)
	for i := 0; i < quantity; i++ {
		rec := free[i]
		rec.Occupancy = occ
		rec.Phone = form.Phone
		rec.Cost = unitCost
		rec.EndDate = form.EndDate
		if i < len(form.Assignments) && form.Assignments[i].Profile != "" {
			rec.Profile = form.Assignments[i].Profile
			rec.PIN = form.Assignments[i].PIN
		} else if rec.Profile == "" {
			rec.Profile = fmt.Sprintf("Perfil %d", i+1)
		}
		rec.Touch(now)
		written = append(written, rec)
		muts = append(muts, saledom.Put(rec))
	}

	if err := uc.sales.ApplyBatch(ctx, vendorID, muts); err != nil {
		return ApplyResult{}, err
	}
	uc.archive(ctx, written)
	return ApplyResult{Kind: ApplyMultiSlot, Records: written}, nil
}

// applySingle is the simple-edit/default path: one record updated in place.
func (uc *AssignmentUsecase) applySingle(ctx context.Context, vendorID string, rec saledom.Record, form AssignmentForm, occ saledom.Occupancy) (ApplyResult, error) {
	switch occ.Kind {
	case saledom.Free:
		rec.ClearOccupant()
	case saledom.Maintenance:
		// Blocked slots keep their profile identity but stop billing.
		rec.Occupancy = occ
		rec.Phone = ""
		rec.EndDate = ""
		rec.Cost = decimal.Zero
	default:
		rec.Occupancy = occ
		rec.Phone = form.Phone
		rec.Cost = form.Cost
		rec.EndDate = form.EndDate
		if form.Profile != "" {
			rec.Profile = form.Profile
		}
		if form.PIN != "" {
			rec.PIN = form.PIN
		}
	}
	if form.Service != "" {
		rec.Service = form.Service
	}
	rec.Touch(uc.now())

	if err := uc.sales.ApplyBatch(ctx, vendorID, []saledom.Mutation{saledom.Put(rec)}); err != nil {
		return ApplyResult{}, err
	}
	uc.archive(ctx, []saledom.Record{rec})
	return ApplyResult{Kind: ApplyUpdated, Records: []saledom.Record{rec}}, nil
}

func (uc *AssignmentUsecase) archive(ctx context.Context, records []saledom.Record) {
	if uc.archiver == nil || len(records) == 0 {
		return
	}
	if err := uc.archiver.ArchiveBatch(ctx, records); err != nil {
		log.Printf("[assignment] archive mirror failed: %v", err)
	}
}

func findEntryByName(entries []catdom.Entry, name string) *catdom.Entry {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	return nil
}
