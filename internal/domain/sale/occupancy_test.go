// internal/domain/sale/occupancy_test.go
package sale

import "testing"

func TestParseOccupancy(t *testing.T) {
	tests := []struct {
		in       string
		wantKind OccupancyKind
	}{
		{"", Free},
		{"LIBRE", Free},
		{"libre", Free},
		{"Caída", Maintenance},
		{"caida", Maintenance},
		{"ADMIN", Maintenance},
		{"Actualizar", Maintenance},
		{"Carlos", Occupied},
		{"Ana María", Occupied},
	}
	for _, tt := range tests {
		if got := ParseOccupancy(tt.in); got.Kind != tt.wantKind {
			t.Errorf("ParseOccupancy(%q).Kind = %v, want %v", tt.in, got.Kind, tt.wantKind)
		}
	}
}

func TestOccupancyEncodeRoundTrip(t *testing.T) {
	for _, o := range []Occupancy{FreeSlot(), OccupiedBy("Carlos"), InMaintenance("Caída")} {
		back := ParseOccupancy(o.Encode())
		if back.Kind != o.Kind {
			t.Errorf("round trip of %v changed kind to %v", o.Kind, back.Kind)
		}
	}
	if FreeSlot().Encode() != SentinelFree {
		t.Errorf("free slot must encode as %q", SentinelFree)
	}
}

func TestBillable(t *testing.T) {
	if FreeSlot().Billable() || InMaintenance("Admin").Billable() {
		t.Error("free and maintenance slots must not bill")
	}
	if !OccupiedBy("Carlos").Billable() {
		t.Error("occupied slots must bill")
	}
}

func TestResolveCapacity(t *testing.T) {
	tests := []struct {
		prior, catalog, want int
	}{
		{0, 4, 4},
		{0, 0, 1},
		{5, 4, 6},
		{3, 4, 4},
	}
	for _, tt := range tests {
		if got := ResolveCapacity(tt.prior, tt.catalog); got != tt.want {
			t.Errorf("ResolveCapacity(%d, %d) = %d, want %d", tt.prior, tt.catalog, got, tt.want)
		}
	}
}
