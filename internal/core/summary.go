package core

import (
	"sort"
	"strings"
)

// Summary is the headline metric strip shown above the results table.
type Summary struct {
	Clubs       int
	AverageDues Money
	States      int // distinct states represented
	DuesMin     Money
	DuesMax     Money
}

// Summarize computes directory metrics over a set of clubs.
// An empty input yields the zero Summary.
func Summarize(clubs []Club) Summary {
	if len(clubs) == 0 {
		return Summary{}
	}
	var total int64
	min := clubs[0].MonthlyDues.Cents
	max := clubs[0].MonthlyDues.Cents
	states := map[string]struct{}{}
	for i := range clubs {
		d := clubs[i].MonthlyDues.Cents
		total += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		states[clubs[i].State] = struct{}{}
	}
	return Summary{
		Clubs:       len(clubs),
		AverageDues: Money{Cents: total / int64(len(clubs))},
		States:      len(states),
		DuesMin:     Money{Cents: min},
		DuesMax:     Money{Cents: max},
	}
}

// Facets are the distinct values offered by the sidebar controls, plus the
// observed bounds used to seed the range inputs.
type Facets struct {
	States          []string
	Cities          []string
	PrestigeLevels  []string
	MembershipTypes []string
	DuesMin         Money
	DuesMax         Money
	InitiationMin   Money
	InitiationMax   Money
}

// ComputeFacets collects the distinct sidebar options from a set of clubs.
// Lists are sorted case-insensitively; empty prestige and membership values
// are omitted since they make no sense as filter options.
func ComputeFacets(clubs []Club) Facets {
	var fc Facets
	states := map[string]struct{}{}
	cities := map[string]struct{}{}
	prestige := map[string]struct{}{}
	membership := map[string]struct{}{}
	for i := range clubs {
		c := &clubs[i]
		states[c.State] = struct{}{}
		cities[c.City] = struct{}{}
		if c.PrestigeLevel != "" {
			prestige[c.PrestigeLevel] = struct{}{}
		}
		if c.MembershipType != "" {
			membership[c.MembershipType] = struct{}{}
		}
		if i == 0 {
			fc.DuesMin, fc.DuesMax = c.MonthlyDues, c.MonthlyDues
			fc.InitiationMin, fc.InitiationMax = c.InitiationFee, c.InitiationFee
			continue
		}
		if c.MonthlyDues.Cents < fc.DuesMin.Cents {
			fc.DuesMin = c.MonthlyDues
		}
		if c.MonthlyDues.Cents > fc.DuesMax.Cents {
			fc.DuesMax = c.MonthlyDues
		}
		if c.InitiationFee.Cents < fc.InitiationMin.Cents {
			fc.InitiationMin = c.InitiationFee
		}
		if c.InitiationFee.Cents > fc.InitiationMax.Cents {
			fc.InitiationMax = c.InitiationFee
		}
	}
	fc.States = sortedKeys(states)
	fc.Cities = sortedKeys(cities)
	fc.PrestigeLevels = sortedKeys(prestige)
	fc.MembershipTypes = sortedKeys(membership)
	return fc
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
