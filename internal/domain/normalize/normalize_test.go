// internal/domain/normalize/normalize_test.go
package normalize

import (
	"testing"
	"time"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Netflix  ", "netflix"},
		{"Caída", "caida"},
		{"ACTUALIZAR", "actualizar"},
		{"Señal Ñoño", "senal nono"},
		{"Disney+ Básico", "disney+ basico"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	ref := time.Date(2024, 12, 31, 15, 4, 5, 0, time.Local)

	tests := []struct {
		date   string
		want   int
		wantOK bool
	}{
		{"2025-01-01", 1, true},
		{"2024-12-30", -1, true},
		{"2024-12-31", 0, true},
		{"2025-02-28", 59, true},
		{"", 0, false},
		{"not-a-date", 0, false},
		{"31/12/2024", 0, false},
	}
	for _, tt := range tests {
		got, ok := DaysUntil(tt.date, ref)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("DaysUntil(%q) = (%d, %v), want (%d, %v)", tt.date, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAddToDate(t *testing.T) {
	got, ok := AddToDate("2025-01-15", 1, 1)
	if !ok || got != "2025-02-16" {
		t.Fatalf("AddToDate(2025-01-15, 1, 1) = (%q, %v), want (2025-02-16, true)", got, ok)
	}
	if _, ok := AddToDate("", 1, 1); ok {
		t.Fatal("AddToDate on empty input should not be ok")
	}
}

func TestDateInRange(t *testing.T) {
	tests := []struct {
		date, from, to string
		want           bool
	}{
		{"2025-06-01", "", "", true},
		{"2025-06-01", "", "2025-06-05", true},
		{"2025-06-10", "", "2025-06-05", false},
		{"2025-06-01", "2025-06-01", "2025-06-01", true},
		{"", "2025-06-01", "", false},
		{"", "", "", true},
	}
	for _, tt := range tests {
		if got := DateInRange(tt.date, tt.from, tt.to); got != tt.want {
			t.Errorf("DateInRange(%q, %q, %q) = %v, want %v", tt.date, tt.from, tt.to, got, tt.want)
		}
	}
}
