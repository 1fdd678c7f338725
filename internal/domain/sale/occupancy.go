// internal/domain/sale/occupancy.go
package sale

import "revendo/internal/domain/normalize"

// The client field of a record historically carried three orthogonal facts in
// one string: occupancy, billing eligibility, and maintenance flagging.
// Occupancy makes those explicit; the legacy sentinel strings survive only as
// the wire encoding.

// SentinelFree marks an unassigned slot on the wire.
const SentinelFree = "LIBRE"

// MaintenanceSentinels is the single shared list of non-billable maintenance
// markers. Every component matches against this table; do not duplicate it.
var MaintenanceSentinels = []string{"Admin", "Caída", "Actualizar"}

// OccupancyKind tags the occupancy union.
type OccupancyKind int

const (
	Free OccupancyKind = iota
	Occupied
	Maintenance
)

// Occupancy is the state of one slot.
//   - Free: sellable inventory, no occupant.
//   - Occupied: assigned to a paying client (Client holds the name).
//   - Maintenance: blocked by the vendor (Reason holds the sentinel).
type Occupancy struct {
	Kind   OccupancyKind
	Client string // set when Occupied
	Reason string // set when Maintenance
}

func FreeSlot() Occupancy { return Occupancy{Kind: Free} }

func OccupiedBy(client string) Occupancy {
	return Occupancy{Kind: Occupied, Client: client}
}

func InMaintenance(reason string) Occupancy {
	return Occupancy{Kind: Maintenance, Reason: reason}
}

// ParseOccupancy decodes the legacy client-string encoding. Matching is
// case- and accent-insensitive ("caida" and "Caída" are the same sentinel).
func ParseOccupancy(clientField string) Occupancy {
	folded := normalize.Fold(clientField)
	if folded == "" || folded == normalize.Fold(SentinelFree) {
		return FreeSlot()
	}
	for _, s := range MaintenanceSentinels {
		if folded == normalize.Fold(s) {
			return InMaintenance(s)
		}
	}
	return OccupiedBy(clientField)
}

// Encode returns the legacy client-string for the store.
func (o Occupancy) Encode() string {
	switch o.Kind {
	case Occupied:
		return o.Client
	case Maintenance:
		return o.Reason
	default:
		return SentinelFree
	}
}

// Billable reports whether the slot counts for expiration alerts and
// revenue. Only occupied slots bill.
func (o Occupancy) Billable() bool { return o.Kind == Occupied }

// DisplayName is the human-readable occupant column.
func (o Occupancy) DisplayName() string { return o.Encode() }

// IsSentinelStatus reports whether a submitted client name is one of the
// non-billable sentinels rather than a real customer.
func IsSentinelStatus(name string) bool {
	return ParseOccupancy(name).Kind != Occupied
}
