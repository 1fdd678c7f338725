// internal/application/query/inventory_filter_query.go
package query

import (
	"strings"
	"time"

	"revendo/internal/domain/normalize"
	saledom "revendo/internal/domain/sale"
)

// Status buckets for the inventory filter.
const (
	StatusFree     = "Libres"
	StatusOccupied = "Ocupados"
	StatusProblem  = "Problemas"
	StatusExpired  = "Vencidos"
)

// InventoryFilter is the compound display filter. All predicates are
// conjunctive; an empty value matches everything for that predicate.
type InventoryFilter struct {
	Text     string // matched across client/email/phone/service, folded
	Service  string // substring match on the service label
	Status   string // one of the Status* buckets
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD
}

// FilterInventory applies the filter in order over a snapshot.
func FilterInventory(records []saledom.Record, f InventoryFilter, ref time.Time) []saledom.Record {
	out := make([]saledom.Record, 0, len(records))
	for _, r := range records {
		if !matchText(r, f.Text) {
			continue
		}
		if f.Service != "" && !strings.Contains(normalize.Fold(r.Service), normalize.Fold(f.Service)) {
			continue
		}
		if !matchStatus(r, f.Status, ref) {
			continue
		}
		// Lexicographic compare is chronological for zero-padded ISO dates.
		if (f.DateFrom != "" || f.DateTo != "") && !normalize.DateInRange(r.EndDate, f.DateFrom, f.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchText(r saledom.Record, text string) bool {
	needle := normalize.Fold(text)
	if needle == "" {
		return true
	}
	for _, hay := range []string{r.Occupancy.DisplayName(), r.Email, r.Phone, r.Service} {
		if strings.Contains(normalize.Fold(hay), needle) {
			return true
		}
	}
	return false
}

func matchStatus(r saledom.Record, status string, ref time.Time) bool {
	switch status {
	case "":
		return true
	case StatusFree:
		return r.Occupancy.Kind == saledom.Free
	case StatusOccupied:
		return r.Occupancy.Kind == saledom.Occupied
	case StatusProblem:
		return r.Occupancy.Kind == saledom.Maintenance
	case StatusExpired:
		if !r.Occupancy.Billable() {
			return false
		}
		days, ok := normalize.DaysUntil(r.EndDate, ref)
		return ok && days < 0
	default:
		return true
	}
}
