// internal/application/query/query_test.go
package query

import (
	"testing"
	"time"

	saledom "revendo/internal/domain/sale"
)

var ref = time.Date(2025, 6, 3, 10, 0, 0, 0, time.Local)

func rec(id, client, service, endDate string) saledom.Record {
	return saledom.Record{
		ID:        id,
		Email:     "acc@mail.com",
		Pass:      "secret",
		Service:   service,
		Type:      saledom.TypeProfile,
		Occupancy: saledom.ParseOccupancy(client),
		EndDate:   endDate,
	}
}

func TestExpirationCohorts(t *testing.T) {
	records := []saledom.Record{
		rec("overdue", "Ana", "Netflix", "2025-06-01"),
		rec("today", "Luis", "Netflix", "2025-06-03"),
		rec("tomorrow", "Carlos", "Disney", "2025-06-04"),
		rec("later", "Marta", "Max", "2025-06-20"),
		rec("free", "LIBRE", "Netflix", ""),
		rec("maint", "Caída", "Netflix", "2025-06-03"),
		rec("nodate", "Pedro", "Netflix", ""),
	}
	c := ExpirationCohorts(records, ref)

	if len(c.Overdue) != 1 || c.Overdue[0].ID != "overdue" {
		t.Errorf("overdue = %+v", c.Overdue)
	}
	if len(c.DueToday) != 1 || c.DueToday[0].ID != "today" {
		t.Errorf("dueToday = %+v", c.DueToday)
	}
	if len(c.DueTomorrow) != 1 || c.DueTomorrow[0].ID != "tomorrow" {
		t.Errorf("dueTomorrow = %+v", c.DueTomorrow)
	}
	if c.Total() != 3 {
		t.Errorf("total = %d, want 3", c.Total())
	}
}

func TestFilterConjunction(t *testing.T) {
	records := []saledom.Record{
		rec("a", "Ana", "Netflix", "2025-06-01"),
		rec("b", "Ana", "Disney", "2025-06-10"),
	}
	got := FilterInventory(records, InventoryFilter{Text: "ana", DateTo: "2025-06-05"}, ref)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("conjunctive filter returned %+v, want only record a", got)
	}
}

func TestFilterStatusBuckets(t *testing.T) {
	records := []saledom.Record{
		rec("free", "LIBRE", "Netflix", ""),
		rec("busy", "Ana", "Netflix", "2025-06-10"),
		rec("down", "Caída", "Netflix", ""),
		rec("late", "Luis", "Netflix", "2025-05-01"),
	}
	tests := []struct {
		status string
		want   []string
	}{
		{StatusFree, []string{"free"}},
		{StatusOccupied, []string{"busy", "late"}},
		{StatusProblem, []string{"down"}},
		{StatusExpired, []string{"late"}},
		{"", []string{"free", "busy", "down", "late"}},
	}
	for _, tt := range tests {
		got := FilterInventory(records, InventoryFilter{Status: tt.status}, ref)
		if len(got) != len(tt.want) {
			t.Errorf("status %q: got %d records, want %d", tt.status, len(got), len(tt.want))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("status %q: got[%d] = %s, want %s", tt.status, i, got[i].ID, id)
			}
		}
	}
}

func TestFilterAccentInsensitiveText(t *testing.T) {
	records := []saledom.Record{rec("a", "Ana María", "Netflix", "")}
	if got := FilterInventory(records, InventoryFilter{Text: "maria"}, ref); len(got) != 1 {
		t.Fatal("text match must fold accents")
	}
}

func TestWarrantyContagion(t *testing.T) {
	shared := []saledom.Record{
		rec("p1", "Ana", "Netflix", "2025-06-10"),
		rec("p2", "Caída", "Netflix", ""),
		rec("p3", "Luis", "Netflix", "2025-06-12"),
	}
	groups := WarrantyGroups(shared)
	if len(groups) != 1 || !groups[0].InWarranty {
		t.Fatalf("shared outage must contaminate the whole group: %+v", groups)
	}

	// A dedicated full account with a grievance stays individual.
	solo := rec("acc", "Caída", "Netflix", "")
	solo.Email = "solo@mail.com"
	solo.Type = saledom.TypeAccount
	groups = WarrantyGroups([]saledom.Record{solo})
	if len(groups) != 1 || groups[0].InWarranty {
		t.Fatalf("whole account must not be contagious: %+v", groups)
	}

	// Admin placeholders don't count as real members.
	adminOnly := []saledom.Record{
		rec("p1", "Admin", "Netflix", ""),
		rec("p2", "Caída", "Netflix", ""),
	}
	groups = WarrantyGroups(adminOnly)
	if groups[0].InWarranty {
		t.Fatalf("a lone real member cannot form a warranty group: %+v", groups)
	}
}
