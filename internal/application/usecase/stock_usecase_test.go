// internal/application/usecase/stock_usecase_test.go
package usecase

import (
	"context"
	"testing"

	saledom "revendo/internal/domain/sale"
)

func TestGenerateWholeAccountStock(t *testing.T) {
	repo := newFakeSaleRepo()
	uc := NewStockUsecase(repo, netflixCatalog())

	created, err := uc.Generate(context.Background(), "v1", GenerateStockCommand{
		Service: "Spotify Cuenta",
		Email:   "sp@mail.com",
		Pass:    "secret",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("account offerings must generate a single record, got %d", len(created))
	}
	got := created[0]
	if got.Type != saledom.TypeAccount || got.Profile != saledom.ProfileWholeAccount {
		t.Errorf("record = %+v, want whole-account shape", got)
	}
	if got.Occupancy.Kind != saledom.Free {
		t.Error("generated stock must be free")
	}
}

func TestGenerateRejectsMissingCredentials(t *testing.T) {
	uc := NewStockUsecase(newFakeSaleRepo(), netflixCatalog())
	if _, err := uc.Generate(context.Background(), "v1", GenerateStockCommand{Service: "Netflix 4 Perfiles"}); err == nil {
		t.Fatal("expected credential validation to fail")
	}
}

func TestDeleteGroup(t *testing.T) {
	repo := newFakeSaleRepo(freeProfiles(4)...)
	uc := NewStockUsecase(repo, netflixCatalog())
	key := saledom.GroupKey{Email: "acc@mail.com", Pass: "secret"}

	intent, err := uc.DeleteGroupIntent(context.Background(), "v1", key)
	if err != nil {
		t.Fatalf("DeleteGroupIntent: %v", err)
	}
	if len(intent.TargetIDs) != 4 {
		t.Errorf("intent targets = %d, want 4", len(intent.TargetIDs))
	}

	if err := uc.DeleteGroup(context.Background(), "v1", key); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if repo.size() != 0 {
		t.Errorf("%d records remain after group delete", repo.size())
	}
}

func TestDeleteFreeStockKeepsOccupied(t *testing.T) {
	recs := freeProfiles(4)
	recs[0].Occupancy = saledom.OccupiedBy("Carlos")
	repo := newFakeSaleRepo(recs...)
	uc := NewStockUsecase(repo, netflixCatalog())

	n, err := uc.DeleteFreeStock(context.Background(), "v1", "Netflix")
	if err != nil {
		t.Fatalf("DeleteFreeStock: %v", err)
	}
	if n != 3 || repo.size() != 1 {
		t.Errorf("deleted %d, remaining %d; want 3 deleted, 1 remaining", n, repo.size())
	}
}
