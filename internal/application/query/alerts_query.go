// internal/application/query/alerts_query.go
package query

import (
	"time"

	"revendo/internal/domain/normalize"
	saledom "revendo/internal/domain/sale"
)

// Cohorts partitions billable inventory by proximity to expiration.
// Free and maintenance slots never alert, and a record without an end date
// has nothing to expire.
type Cohorts struct {
	Overdue     []saledom.Record `json:"overdue"`
	DueToday    []saledom.Record `json:"dueToday"`
	DueTomorrow []saledom.Record `json:"dueTomorrow"`
}

// ExpirationCohorts is purely derived; recompute whenever the reference
// date or the inventory snapshot changes.
func ExpirationCohorts(records []saledom.Record, ref time.Time) Cohorts {
	var c Cohorts
	for _, r := range records {
		if !r.Occupancy.Billable() {
			continue
		}
		days, ok := normalize.DaysUntil(r.EndDate, ref)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			c.Overdue = append(c.Overdue, r)
		case days == 0:
			c.DueToday = append(c.DueToday, r)
		case days == 1:
			c.DueTomorrow = append(c.DueTomorrow, r)
		}
	}
	return c
}

// Total counts all alerting records.
func (c Cohorts) Total() int {
	return len(c.Overdue) + len(c.DueToday) + len(c.DueTomorrow)
}
