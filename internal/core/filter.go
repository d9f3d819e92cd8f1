package core

import (
	"sort"
	"strings"
)

// SortKey names a sortable club column.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByState      SortKey = "state"
	SortByCity       SortKey = "city"
	SortByDues       SortKey = "dues"
	SortByInitiation SortKey = "initiation"
)

// ParseSortKey maps a user-supplied sort parameter onto a SortKey,
// defaulting to dues (the column the directory is about).
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName, SortByState, SortByCity, SortByDues, SortByInitiation:
		return SortKey(strings.ToLower(strings.TrimSpace(s)))
	default:
		return SortByDues
	}
}

// Filter is the conjunction of the sidebar criteria. Zero-valued fields are
// inactive; an empty filter matches every club.
type Filter struct {
	// Search is a case-insensitive substring match on the club name.
	Search string

	// Exact-match sets. States are compared case-insensitively against the
	// normalized USPS codes the loader produces.
	States          []string
	Cities          []string
	PrestigeLevels  []string
	MembershipTypes []string

	// Inclusive ranges in cents. A nil bound is open.
	DuesMin       *int64
	DuesMax       *int64
	InitiationMin *int64
	InitiationMax *int64
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.Search == "" &&
		len(f.States) == 0 &&
		len(f.Cities) == 0 &&
		len(f.PrestigeLevels) == 0 &&
		len(f.MembershipTypes) == 0 &&
		f.DuesMin == nil && f.DuesMax == nil &&
		f.InitiationMin == nil && f.InitiationMax == nil
}

// Matches reports whether a club passes every active criterion.
func (f *Filter) Matches(c *Club) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.States) > 0 && !containsFold(f.States, c.State) {
		return false
	}
	if len(f.Cities) > 0 && !containsFold(f.Cities, c.City) {
		return false
	}
	if len(f.PrestigeLevels) > 0 && !containsFold(f.PrestigeLevels, c.PrestigeLevel) {
		return false
	}
	if len(f.MembershipTypes) > 0 && !containsFold(f.MembershipTypes, c.MembershipType) {
		return false
	}
	if f.DuesMin != nil && c.MonthlyDues.Cents < *f.DuesMin {
		return false
	}
	if f.DuesMax != nil && c.MonthlyDues.Cents > *f.DuesMax {
		return false
	}
	if f.InitiationMin != nil && c.InitiationFee.Cents < *f.InitiationMin {
		return false
	}
	if f.InitiationMax != nil && c.InitiationFee.Cents > *f.InitiationMax {
		return false
	}
	return true
}

// Apply returns the clubs matching the filter, preserving input order.
func (f *Filter) Apply(clubs []Club) []Club {
	if f.IsEmpty() {
		out := make([]Club, len(clubs))
		copy(out, clubs)
		return out
	}
	out := make([]Club, 0, len(clubs))
	for i := range clubs {
		if f.Matches(&clubs[i]) {
			out = append(out, clubs[i])
		}
	}
	return out
}

// SortClubs sorts in place by the given key. Ties fall back to the club name
// so output order is stable across backends.
func SortClubs(clubs []Club, key SortKey, descending bool) {
	less := func(a, b *Club) bool {
		switch key {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByState:
			if a.State != b.State {
				return a.State < b.State
			}
		case SortByCity:
			if !strings.EqualFold(a.City, b.City) {
				return strings.ToLower(a.City) < strings.ToLower(b.City)
			}
		case SortByInitiation:
			if a.InitiationFee.Cents != b.InitiationFee.Cents {
				return a.InitiationFee.Cents < b.InitiationFee.Cents
			}
		default: // SortByDues
			if a.MonthlyDues.Cents != b.MonthlyDues.Cents {
				return a.MonthlyDues.Cents < b.MonthlyDues.Cents
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	sort.SliceStable(clubs, func(i, j int) bool {
		if descending {
			return less(&clubs[j], &clubs[i])
		}
		return less(&clubs[i], &clubs[j])
	})
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
