// internal/domain/sale/group.go
package sale

// Sibling-group derivations. A group holding one TypeAccount record is
// unfragmented; if any member is TypeProfile the whole group must be.

// GroupOf filters records down to the sibling group of key.
func GroupOf(records []Record, key GroupKey) []Record {
	out := make([]Record, 0, 8)
	for _, r := range records {
		if r.GroupKey() == key {
			out = append(out, r)
		}
	}
	return out
}

// FreeSlots returns the group's members that are free inventory.
func FreeSlots(group []Record) []Record {
	out := make([]Record, 0, len(group))
	for _, r := range group {
		if r.Occupancy.Kind == Free {
			out = append(out, r)
		}
	}
	return out
}

// DominantType reports the type the group leans to: TypeAccount only when no
// member is a profile (per the fragmentation invariant a mixed group is
// already broken, and profiles win).
func DominantType(group []Record) Type {
	if len(group) == 0 {
		return TypeAccount
	}
	for _, r := range group {
		if r.Type == TypeProfile {
			return TypeProfile
		}
	}
	return TypeAccount
}

// HasWholeAccount reports whether any member is an unfragmented account.
func HasWholeAccount(group []Record) bool {
	for _, r := range group {
		if r.Type == TypeAccount {
			return true
		}
	}
	return false
}

// ResolveCapacity derives the sellable capacity for a group about to be
// fragmented: the catalog default for the platform, but never less than the
// records that already exist plus the account being split.
func ResolveCapacity(priorSiblingCount, catalogDefault int) int {
	capacity := priorSiblingCount + 1
	if catalogDefault > capacity {
		capacity = catalogDefault
	}
	return capacity
}
