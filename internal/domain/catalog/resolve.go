// internal/domain/catalog/resolve.go
package catalog

import (
	"strings"

	"revendo/internal/domain/normalize"
	"revendo/internal/domain/platforms"
)

// Resolution helpers shared by the fragmentation and display paths so that
// both derive the same capacity for a sibling group.

// DefaultCapacity resolves the slot capacity for a service label:
// exact catalog name match, then fuzzy base-name match (largest wins),
// then 0 (caller falls back to sibling count).
func DefaultCapacity(entries []Entry, serviceLabel string) int {
	cleaned := normalize.Fold(serviceLabel)
	for _, e := range entries {
		if normalize.Fold(e.Name) == cleaned {
			return e.DefaultSlots
		}
	}
	base := normalize.Fold(platforms.Base(serviceLabel))
	best := 0
	for _, e := range entries {
		if base != "" && strings.Contains(normalize.Fold(e.Name), base) && e.DefaultSlots > best {
			best = e.DefaultSlots
		}
	}
	return best
}

// FindIndividualServiceName resolves the flat per-profile service name used
// when an account is fragmented: a TypeProfile entry with DefaultSlots == 1
// whose name contains the platform keyword. Synthesizes "<Base> 1 Perfil"
// when no such entry exists.
func FindIndividualServiceName(entries []Entry, serviceLabel string) string {
	base := platforms.Base(serviceLabel)
	folded := normalize.Fold(base)
	for _, e := range entries {
		if e.Type != TypeProfile || e.DefaultSlots != 1 {
			continue
		}
		if folded != "" && strings.Contains(normalize.Fold(e.Name), folded) {
			return e.Name
		}
	}
	return base + " 1 Perfil"
}

// ResolveFreePoolName picks the service label a liberated slot goes back to
// the free pool under: direct catalog match on the cleaned name, then fuzzy
// substring match on the first word of the base name, then the base name
// itself.
func ResolveFreePoolName(entries []Entry, serviceLabel string) string {
	cleaned := normalize.Fold(serviceLabel)
	for _, e := range entries {
		if normalize.Fold(e.Name) == cleaned {
			return e.Name
		}
	}
	base := platforms.Base(serviceLabel)
	first := normalize.Fold(normalize.FirstWord(base))
	if first != "" {
		for _, e := range entries {
			if strings.Contains(normalize.Fold(e.Name), first) {
				return e.Name
			}
		}
	}
	return base
}
