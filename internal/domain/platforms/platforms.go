// internal/domain/platforms/platforms.go
package platforms

import (
	"strings"

	"revendo/internal/domain/normalize"
)

// ========================================
// Disney split policy
// ========================================

// DisneyPolicy decides whether Disney inventory is bucketed as one platform
// or split into the Básico / En Vivo sub-brands. Every bucketing call site
// goes through Base(), so the whole process sees a single policy; resolving
// it per-screen would make the same physical account show up in two buckets.
type DisneyPolicy int

const (
	// DisneyCollapse buckets every Disney variant under "Disney+".
	DisneyCollapse DisneyPolicy = iota
	// DisneySplitEnVivo splits "Disney+ Básico" vs "Disney+ En Vivo".
	DisneySplitEnVivo
)

// Policy is resolved once at boot (DISNEY_SPLIT_POLICY) and read-only after.
var Policy = DisneyCollapse

// ========================================
// Keyword table
// ========================================

// keywordRule maps a folded substring to a base platform name.
// First match wins, so order matters.
type keywordRule struct {
	keyword string
	base    string
}

var keywordTable = []keywordRule{
	{"netflix", "Netflix"},
	{"disney", "Disney+"},
	{"prime", "Prime Video"},
	{"amazon", "Prime Video"},
	{"max", "Max"},
	{"hbo", "Max"},
	{"paramount", "Paramount+"},
	{"vix", "Vix"},
	{"plex", "Plex"},
	{"iptv", "IPTV"},
	{"magis", "IPTV"},
	{"crunchyroll", "Crunchyroll"},
	{"spotify", "Spotify"},
	{"youtube", "YouTube"},
	{"apple", "Apple TV"},
}

// Base maps a free-text service label to its base platform name using the
// package policy. Falls back to the original label when no keyword matches.
func Base(label string) string {
	return BaseWithPolicy(label, Policy)
}

// BaseWithPolicy is Base with an explicit Disney policy (used by tests).
func BaseWithPolicy(label string, policy DisneyPolicy) string {
	folded := normalize.Fold(label)
	if folded == "" {
		return strings.TrimSpace(label)
	}
	for _, rule := range keywordTable {
		if !strings.Contains(folded, rule.keyword) {
			continue
		}
		if rule.keyword == "disney" && policy == DisneySplitEnVivo {
			if strings.Contains(folded, "vivo") {
				return "Disney+ En Vivo"
			}
			return "Disney+ Básico"
		}
		return rule.base
	}
	return strings.TrimSpace(label)
}

// Known reports whether the label resolves to a known platform (as opposed
// to the literal-label fallback).
func Known(label string) bool {
	folded := normalize.Fold(label)
	for _, rule := range keywordTable {
		if strings.Contains(folded, rule.keyword) {
			return true
		}
	}
	return false
}

// SetPolicyFromString resolves the boot-time policy value.
// Accepts "envivo"/"split" for the sub-brand split; anything else collapses.
func SetPolicyFromString(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "envivo", "split":
		Policy = DisneySplitEnVivo
	default:
		Policy = DisneyCollapse
	}
}
