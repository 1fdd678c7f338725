// internal/application/usecase/assignment_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"revendo/internal/domain/confirm"
	saledom "revendo/internal/domain/sale"
)

func freeProfiles(n int) []saledom.Record {
	out := make([]saledom.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, saledom.Record{
			ID:        fmt.Sprintf("s-%d", i+1),
			Email:     "acc@mail.com",
			Pass:      "secret",
			Service:   "Netflix 4 Perfiles",
			Type:      saledom.TypeProfile,
			Profile:   fmt.Sprintf("Perfil %d", i+1),
			Occupancy: saledom.FreeSlot(),
		})
	}
	return out
}

func TestApplySingleAssignsSlot(t *testing.T) {
	repo := newFakeSaleRepo(freeProfiles(4)...)
	clients := &fakeClientRepo{}
	uc := NewAssignmentUsecase(repo, netflixCatalog(), NewClientDirectoryUsecase(clients), nil)
	uc.now = fixedNow

	res, err := uc.Apply(context.Background(), "v1", AssignmentForm{
		ID:      "s-1",
		Client:  "Carlos",
		Phone:   "5215511112222",
		Cost:    decimal.NewFromInt(10),
		EndDate: "2025-07-01",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Kind != ApplyUpdated || len(res.Records) != 1 {
		t.Fatalf("result = %+v, want one updated record", res)
	}
	got := res.Records[0]
	if got.Occupancy.Client != "Carlos" || !got.Cost.Equal(decimal.NewFromInt(10)) {
		t.Errorf("assigned record = %+v", got)
	}

	// Exactly one record changed; the others stay free.
	rest, _ := repo.ListGroup(context.Background(), "v1", got.GroupKey())
	free := 0
	for _, r := range rest {
		if r.Occupancy.Kind == saledom.Free {
			free++
		}
	}
	if free != 3 {
		t.Errorf("free siblings = %d, want 3", free)
	}

	// First-seen client lands in the directory.
	if len(clients.entries) != 1 || clients.entries[0].Name != "Carlos" {
		t.Errorf("directory = %+v, want Carlos", clients.entries)
	}
}

func TestApplyMultiSlotCostDistribution(t *testing.T) {
	repo := newFakeSaleRepo(freeProfiles(4)...)
	uc := NewAssignmentUsecase(repo, netflixCatalog(), nil, nil)
	uc.now = fixedNow

	total := decimal.RequireFromString("25.00")
	res, err := uc.Apply(context.Background(), "v1", AssignmentForm{
		ID:       "s-1",
		Client:   "Carlos",
		Cost:     total,
		EndDate:  "2025-07-01",
		Quantity: 3,
		Assignments: []SlotAssignment{
			{Profile: "Papá", PIN: "1234"},
			{Profile: "Mamá", PIN: "5678"},
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Kind != ApplyMultiSlot || len(res.Records) != 3 {
		t.Fatalf("result kind=%v records=%d, want multi-slot x3", res.Kind, len(res.Records))
	}

	// Per-slot value is round(25/3, 2) = 8.33; assert the per-slot value,
	// not the reconstructed sum.
	want := decimal.RequireFromString("8.33")
	for _, r := range res.Records {
		if !r.Cost.Equal(want) {
			t.Errorf("slot cost = %s, want %s", r.Cost, want)
		}
	}
	if res.Records[0].Profile != "Papá" || res.Records[1].Profile != "Mamá" {
		t.Errorf("assignments not applied in order: %+v", res.Records)
	}
	// Third slot falls back to its existing generated name.
	if res.Records[2].Profile == "" {
		t.Error("unassigned slot lost its profile label")
	}
}

func TestApplyMultiSlotInsufficientFreeSlots(t *testing.T) {
	recs := freeProfiles(4)
	recs[1].Occupancy = saledom.OccupiedBy("Ana")
	recs[2].Occupancy = saledom.OccupiedBy("Luis")
	recs[3].Occupancy = saledom.InMaintenance("Caída")
	repo := newFakeSaleRepo(recs...)
	uc := NewAssignmentUsecase(repo, netflixCatalog(), nil, nil)

	_, err := uc.Apply(context.Background(), "v1", AssignmentForm{
		ID:       "s-1",
		Client:   "Carlos",
		Cost:     decimal.NewFromInt(20),
		Quantity: 2,
	})
	if !errors.Is(err, saledom.ErrInsufficientFreeSlots) {
		t.Fatalf("err = %v, want ErrInsufficientFreeSlots", err)
	}
	// No partial application.
	got, _ := repo.GetByID(context.Background(), "v1", "s-1")
	if got.Occupancy.Kind != saledom.Free {
		t.Error("failed multi-slot sale mutated the anchor record")
	}
}

func TestApplyOnWholeAccountNeedsFragmentConfirmation(t *testing.T) {
	repo := newFakeSaleRepo(wholeAccount("acc-1"))
	uc := NewAssignmentUsecase(repo, netflixCatalog(), nil, nil)

	res, err := uc.Apply(context.Background(), "v1", AssignmentForm{
		ID:      "acc-1",
		Client:  "Carlos",
		Service: "Netflix 1 Perfil",
		Cost:    decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Kind != ApplyNeedsFragment || res.Intent == nil {
		t.Fatalf("result = %+v, want fragmentation intent", res)
	}
	if res.Intent.Kind != confirm.KindFragment {
		t.Errorf("intent kind = %s", res.Intent.Kind)
	}
	// Declining leaves state unchanged; nothing was written either way.
	got, _ := repo.GetByID(context.Background(), "v1", "acc-1")
	if got.Type != saledom.TypeAccount || got.Occupancy.Kind != saledom.Free {
		t.Error("intent construction mutated the account record")
	}
}

func TestApplyMaintenanceSentinelStopsBilling(t *testing.T) {
	recs := freeProfiles(1)
	recs[0].Occupancy = saledom.OccupiedBy("Carlos")
	recs[0].Cost = decimal.NewFromInt(10)
	recs[0].EndDate = "2025-07-01"
	repo := newFakeSaleRepo(recs...)
	uc := NewAssignmentUsecase(repo, netflixCatalog(), nil, nil)

	res, err := uc.Apply(context.Background(), "v1", AssignmentForm{ID: "s-1", Client: "Caída"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := res.Records[0]
	if got.Occupancy.Kind != saledom.Maintenance || got.EndDate != "" || !got.Cost.IsZero() {
		t.Errorf("maintenance edit = %+v, want cleared billing fields", got)
	}
	if got.Profile == "" {
		t.Error("maintenance edit must keep the profile identity")
	}
}

func TestQuickRenew(t *testing.T) {
	recs := freeProfiles(1)
	recs[0].Occupancy = saledom.OccupiedBy("Carlos")
	recs[0].EndDate = "2025-01-15"
	repo := newFakeSaleRepo(recs...)
	uc := NewRenewalUsecase(repo)
	uc.now = fixedNow

	got, err := uc.QuickRenew(context.Background(), "v1", "s-1")
	if err != nil {
		t.Fatalf("QuickRenew: %v", err)
	}
	if got.EndDate != "2025-02-16" {
		t.Errorf("EndDate = %q, want 2025-02-16 (one month plus one day)", got.EndDate)
	}

	recs[0].EndDate = ""
	repo2 := newFakeSaleRepo(recs...)
	uc2 := NewRenewalUsecase(repo2)
	if _, err := uc2.QuickRenew(context.Background(), "v1", "s-1"); !errors.Is(err, saledom.ErrNoEndDate) {
		t.Fatalf("err = %v, want ErrNoEndDate", err)
	}
}

func TestMigrateCredentials(t *testing.T) {
	from := saledom.Record{
		ID: "old", Email: "old@mail.com", Pass: "p1",
		Service: "Netflix 1 Perfil", Type: saledom.TypeProfile,
		Profile: "Perfil 2", PIN: "9999",
		Occupancy: saledom.OccupiedBy("Carlos"), Phone: "555",
		Cost: decimal.NewFromInt(10), EndDate: "2025-07-01",
	}
	to := saledom.Record{
		ID: "new", Email: "new@mail.com", Pass: "p2",
		Service: "Netflix 1 Perfil", Type: saledom.TypeProfile,
		Occupancy: saledom.FreeSlot(),
	}
	repo := newFakeSaleRepo(from, to)
	uc := NewRenewalUsecase(repo)

	if err := uc.MigrateCredentials(context.Background(), "v1", "old", "new", "Caída"); err != nil {
		t.Fatalf("MigrateCredentials: %v", err)
	}

	gotTo, _ := repo.GetByID(context.Background(), "v1", "new")
	if gotTo.Occupancy.Client != "Carlos" || gotTo.EndDate != "2025-07-01" || gotTo.PIN != "9999" {
		t.Errorf("occupant not moved: %+v", gotTo)
	}
	gotFrom, _ := repo.GetByID(context.Background(), "v1", "old")
	if gotFrom.Occupancy.Kind != saledom.Maintenance || gotFrom.Phone != "" || !gotFrom.Cost.IsZero() {
		t.Errorf("source not reset to sentinel: %+v", gotFrom)
	}

	if err := uc.MigrateCredentials(context.Background(), "v1", "old", "missing", "LIBRE"); !errors.Is(err, saledom.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for missing target", err)
	}
}

// End-to-end: generate stock, sell one slot, liberate it.
func TestStockAssignLiberateScenario(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSaleRepo()
	cat := netflixCatalog()

	stock := NewStockUsecase(repo, cat)
	created, err := stock.Generate(ctx, "v1", GenerateStockCommand{
		Service: "Netflix 4 Perfiles",
		Email:   "acc@mail.com",
		Pass:    "secret",
		Slots:   4,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("generated %d records, want 4", len(created))
	}
	for _, r := range created {
		if r.Occupancy.Kind != saledom.Free || !r.Cost.IsZero() || r.Type != saledom.TypeProfile {
			t.Fatalf("stock record not free: %+v", r)
		}
	}

	assign := NewAssignmentUsecase(repo, cat, nil, nil)
	res, err := assign.Apply(ctx, "v1", AssignmentForm{
		ID:      created[0].ID,
		Client:  "Carlos",
		Cost:    decimal.NewFromInt(10),
		EndDate: "2025-07-01",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	sold := res.Records[0]
	if sold.Occupancy.Client != "Carlos" || !sold.Cost.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("sold record = %+v", sold)
	}

	group, _ := repo.ListGroup(ctx, "v1", sold.GroupKey())
	if len(saledom.FreeSlots(group)) != 3 {
		t.Fatalf("free slots after sale = %d, want 3", len(saledom.FreeSlots(group)))
	}

	frag := NewFragmentationUsecase(repo, cat, nil)
	freed, err := frag.LiberateSlot(ctx, "v1", sold.ID)
	if err != nil {
		t.Fatalf("LiberateSlot: %v", err)
	}
	if freed.Occupancy.Kind != saledom.Free || !freed.Cost.IsZero() {
		t.Fatalf("liberated record = %+v", freed)
	}
	group, _ = repo.ListGroup(ctx, "v1", sold.GroupKey())
	if len(group) != 4 || len(saledom.FreeSlots(group)) != 4 {
		t.Fatalf("group = %d records, %d free; want 4/4", len(group), len(saledom.FreeSlots(group)))
	}
}
