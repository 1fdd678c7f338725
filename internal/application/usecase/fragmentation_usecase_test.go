// internal/application/usecase/fragmentation_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	catdom "revendo/internal/domain/catalog"
	saledom "revendo/internal/domain/sale"
)

func netflixCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{entries: []catdom.Entry{
		{ID: "c1", Name: "Netflix 4 Perfiles", Cost: decimal.NewFromInt(30), Type: catdom.TypePackage, DefaultSlots: 4},
		{ID: "c2", Name: "Netflix 1 Perfil", Cost: decimal.NewFromInt(10), Type: catdom.TypeProfile, DefaultSlots: 1},
		{ID: "c3", Name: "Spotify Cuenta", Cost: decimal.NewFromInt(15), Type: catdom.TypeAccount, DefaultSlots: 1},
	}}
}

func wholeAccount(id string) saledom.Record {
	return saledom.Record{
		ID:        id,
		Email:     "acc@mail.com",
		Pass:      "secret",
		Service:   "Netflix 4 Perfiles",
		Type:      saledom.TypeAccount,
		Profile:   saledom.ProfileWholeAccount,
		Occupancy: saledom.FreeSlot(),
	}
}

func TestFragmentAccountCapacityInvariant(t *testing.T) {
	repo := newFakeSaleRepo(wholeAccount("acc-1"))
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)
	uc.now = fixedNow

	records, err := uc.FragmentAccount(context.Background(), "v1", FragmentCommand{
		AccountID:      "acc-1",
		TargetProfiles: 2,
		Assignments:    []SlotAssignment{{Profile: "Perfil A", PIN: "1111"}},
		Client:         "Carlos",
		Phone:          "555",
		TotalCost:      decimal.NewFromInt(20),
		EndDate:        "2025-07-01",
	})
	if err != nil {
		t.Fatalf("FragmentAccount: %v", err)
	}

	// groupSize == max(priorSiblingCount+1, catalogDefaultSlots) == 4
	if len(records) != 4 || repo.size() != 4 {
		t.Fatalf("group size = %d (repo %d), want 4", len(records), repo.size())
	}

	occupied, free := 0, 0
	for _, r := range records {
		if r.Type != saledom.TypeProfile {
			t.Errorf("record %s kept type %s after fragmentation", r.ID, r.Type)
		}
		if r.Service != "Netflix 1 Perfil" {
			t.Errorf("record %s service = %q, want flat per-profile name", r.ID, r.Service)
		}
		switch r.Occupancy.Kind {
		case saledom.Occupied:
			occupied++
			if !r.Cost.Equal(decimal.NewFromInt(10)) {
				t.Errorf("unit cost = %s, want 10 (20/2)", r.Cost)
			}
		case saledom.Free:
			free++
			if !r.Cost.IsZero() {
				t.Errorf("free slot carries cost %s", r.Cost)
			}
		}
	}
	if occupied != 2 || free != 2 {
		t.Fatalf("occupied/free = %d/%d, want 2/2", occupied, free)
	}

	// Identity reuse: the original id survives as a profile record.
	if _, err := repo.GetByID(context.Background(), "v1", "acc-1"); err != nil {
		t.Fatal("original account identity was orphaned")
	}
	if records[0].Profile != "Perfil A" || records[0].PIN != "1111" {
		t.Errorf("first slot did not carry its assignment: %+v", records[0])
	}
}

func TestFragmentAccountRewritesPriorSiblings(t *testing.T) {
	s2 := wholeAccount("s-2")
	s2.Type = saledom.TypeProfile
	s2.Service = "Netflix 1 Perfil"
	s2.Profile = "Perfil 2"
	s3 := s2
	s3.ID = "s-3"
	s3.Profile = "Perfil 3"
	repo := newFakeSaleRepo(wholeAccount("acc-1"), s2, s3)
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)
	uc.now = fixedNow

	records, err := uc.FragmentAccount(context.Background(), "v1", FragmentCommand{
		AccountID:      "acc-1",
		TargetProfiles: 1,
		Client:         "Carlos",
		TotalCost:      decimal.NewFromInt(10),
		EndDate:        "2025-07-01",
	})
	if err != nil {
		t.Fatalf("FragmentAccount: %v", err)
	}

	// groupSize == max(priorSiblingCount+1, catalogDefaultSlots) == 4, so the
	// two pre-existing siblings are rewritten, not duplicated.
	if len(records) != 4 || repo.size() != 4 {
		t.Fatalf("group size = %d (repo %d), want 4", len(records), repo.size())
	}
	ids := make(map[string]bool, len(records))
	for _, r := range records {
		ids[r.ID] = true
	}
	for _, want := range []string{"acc-1", "s-2", "s-3"} {
		if !ids[want] {
			t.Errorf("identity %s was not reused", want)
		}
	}
}

func TestFragmentAccountRejectsNonAccounts(t *testing.T) {
	profile := wholeAccount("p-1")
	profile.Type = saledom.TypeProfile
	repo := newFakeSaleRepo(profile)
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)

	_, err := uc.FragmentAccount(context.Background(), "v1", FragmentCommand{AccountID: "p-1", TargetProfiles: 1})
	if !errors.Is(err, saledom.ErrNotAccount) {
		t.Fatalf("err = %v, want ErrNotAccount", err)
	}
}

func TestFragmentAccountRejectsOverCapacity(t *testing.T) {
	repo := newFakeSaleRepo(wholeAccount("acc-1"))
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)

	_, err := uc.FragmentAccount(context.Background(), "v1", FragmentCommand{
		AccountID:      "acc-1",
		TargetProfiles: 5,
		Client:         "Carlos",
	})
	if !errors.Is(err, saledom.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if repo.size() != 1 {
		t.Fatal("failed fragmentation must not mutate the group")
	}
}

func TestLiberateSlotIdempotent(t *testing.T) {
	rec := saledom.Record{
		ID:        "s-1",
		Email:     "acc@mail.com",
		Pass:      "secret",
		Service:   "Netflix 1 Perfil",
		Type:      saledom.TypeProfile,
		Profile:   "Perfil 1",
		Occupancy: saledom.OccupiedBy("Carlos"),
		Phone:     "555",
		Cost:      decimal.NewFromInt(10),
		EndDate:   "2025-07-01",
	}
	sibling := rec
	sibling.ID = "s-2"
	sibling.Profile = "Perfil 2"
	repo := newFakeSaleRepo(rec, sibling)
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)
	uc.now = fixedNow

	first, err := uc.LiberateSlot(context.Background(), "v1", "s-1")
	if err != nil {
		t.Fatalf("LiberateSlot: %v", err)
	}
	second, err := uc.LiberateSlot(context.Background(), "v1", "s-1")
	if err != nil {
		t.Fatalf("LiberateSlot (again): %v", err)
	}

	if first.Occupancy.Kind != saledom.Free || second.Occupancy.Kind != saledom.Free {
		t.Fatal("liberated slot is not free")
	}
	if first.Type != saledom.TypeProfile {
		t.Errorf("slot inside a fragmented group must stay a profile, got %s", first.Type)
	}
	if !first.Cost.IsZero() || first.EndDate != "" || first.Phone != "" {
		t.Errorf("liberation left occupant fields: %+v", first)
	}
	if first.Occupancy != second.Occupancy || first.Cost.String() != second.Cost.String() ||
		first.EndDate != second.EndDate || first.Service != second.Service || first.Type != second.Type {
		t.Errorf("liberation is not idempotent: %+v vs %+v", first, second)
	}
}

func TestLiberateSoleMemberBecomesAccount(t *testing.T) {
	rec := saledom.Record{
		ID:        "s-1",
		Email:     "solo@mail.com",
		Pass:      "secret",
		Service:   "Netflix 4 Perfiles",
		Type:      saledom.TypeAccount,
		Occupancy: saledom.OccupiedBy("Ana"),
		Cost:      decimal.NewFromInt(30),
		EndDate:   "2025-07-01",
	}
	repo := newFakeSaleRepo(rec)
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)

	freed, err := uc.LiberateSlot(context.Background(), "v1", "s-1")
	if err != nil {
		t.Fatalf("LiberateSlot: %v", err)
	}
	if freed.Type != saledom.TypeAccount {
		t.Errorf("sole member should free up as a whole account, got %s", freed.Type)
	}
	if freed.Service != "Netflix 4 Perfiles" {
		t.Errorf("free-pool service = %q, want exact catalog match", freed.Service)
	}
}

func TestUnifyIntoAccount(t *testing.T) {
	base := saledom.Record{Email: "acc@mail.com", Pass: "secret", Service: "Netflix 1 Perfil", Type: saledom.TypeProfile}
	r1, r2, r3 := base, base, base
	r1.ID, r2.ID, r3.ID = "s-1", "s-2", "s-3"
	repo := newFakeSaleRepo(r1, r2, r3)
	uc := NewFragmentationUsecase(repo, netflixCatalog(), nil)

	got, err := uc.UnifyIntoAccount(context.Background(), "v1", "s-2", UnifyForm{
		Service: "Netflix 4 Perfiles",
		Client:  "Carlos",
		Cost:    decimal.NewFromInt(30),
		EndDate: "2025-07-01",
	})
	if err != nil {
		t.Fatalf("UnifyIntoAccount: %v", err)
	}
	if repo.size() != 1 {
		t.Fatalf("siblings not deleted, %d records remain", repo.size())
	}
	if got.Type != saledom.TypeAccount || got.Profile != "General" {
		t.Errorf("survivor = type %s profile %q, want Cuenta/General", got.Type, got.Profile)
	}
}
