// internal/domain/common/repository_common.go
package common

import "time"

// Timestamps is embedded by entities that track creation/update times.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the first update
}

// Touch records an update time.
func (t *Timestamps) Touch(now time.Time) {
	t.UpdatedAt = &now
}

// TimeRange is a shared range filter for list queries.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// SortOrder for list queries.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
