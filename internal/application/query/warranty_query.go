// internal/application/query/warranty_query.go
package query

import (
	"sort"

	"revendo/internal/domain/normalize"
	saledom "revendo/internal/domain/sale"
)

// ProblemGroup is one shared account in the problem-accounts view.
type ProblemGroup struct {
	Email      string           `json:"email"`
	Records    []saledom.Record `json:"records"`
	InWarranty bool             `json:"inWarranty"`
}

// WarrantyGroups groups inventory by email and applies the contagion rule:
// a platform-level outage on a shared account surfaces as one actionable
// unit, not N duplicate alerts. A group is contagious (wholly in warranty)
// when it has more than one real member (Admin slots don't count), at least
// one member carries a maintenance marker, and no member is a whole
// account. A grievance on a dedicated full account must not mask its own
// availability.
func WarrantyGroups(records []saledom.Record) []ProblemGroup {
	byEmail := make(map[string][]saledom.Record)
	order := make([]string, 0)
	for _, r := range records {
		key := normalize.Fold(r.Email)
		if _, ok := byEmail[key]; !ok {
			order = append(order, key)
		}
		byEmail[key] = append(byEmail[key], r)
	}
	sort.Strings(order)

	out := make([]ProblemGroup, 0, len(order))
	for _, key := range order {
		group := byEmail[key]
		out = append(out, ProblemGroup{
			Email:      group[0].Email,
			Records:    group,
			InWarranty: groupInWarranty(group),
		})
	}
	return out
}

func groupInWarranty(group []saledom.Record) bool {
	real := 0
	maintenance := false
	for _, r := range group {
		if r.Type == saledom.TypeAccount {
			return false
		}
		occ := r.Occupancy
		if occ.Kind == saledom.Maintenance {
			if occ.Reason != "Admin" {
				real++
			}
			maintenance = true
			continue
		}
		real++
	}
	return real > 1 && maintenance
}
