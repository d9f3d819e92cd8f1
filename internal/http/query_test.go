package http

import (
	"net/url"
	"testing"

	"clubdir/internal/core"
)

func TestParseFilter(t *testing.T) {
	values := url.Values{
		"q":          {"  oak "},
		"state":      {"NY", " CA ", ""},
		"prestige":   {"High"},
		"dues_min":   {"$1,000"},
		"dues_max":   {"2500.50"},
		"init_min":   {"garbage"},
		"sort":       {"name"},
		"order":      {"DESC"},
	}
	f, key, descending := parseFilter(values)

	if f.Search != "oak" {
		t.Errorf("search = %q", f.Search)
	}
	if len(f.States) != 2 || f.States[0] != "NY" || f.States[1] != "CA" {
		t.Errorf("states = %v", f.States)
	}
	if f.DuesMin == nil || *f.DuesMin != 100000 {
		t.Errorf("dues min = %v", f.DuesMin)
	}
	if f.DuesMax == nil || *f.DuesMax != 250050 {
		t.Errorf("dues max = %v", f.DuesMax)
	}
	if f.InitiationMin != nil {
		t.Errorf("unparseable bound should be ignored, got %v", *f.InitiationMin)
	}
	if key != core.SortByName || !descending {
		t.Errorf("sort = %v descending = %v", key, descending)
	}
}

func TestParseFilterDefaults(t *testing.T) {
	f, key, descending := parseFilter(url.Values{})
	if !f.IsEmpty() {
		t.Errorf("empty query should yield empty filter: %+v", f)
	}
	if key != core.SortByDues || descending {
		t.Errorf("default sort = %v descending = %v", key, descending)
	}
}

func TestFilterCacheKeyCanonical(t *testing.T) {
	min := int64(100000)
	a := &core.Filter{Search: "Oak", States: []string{"ny", "CA"}, DuesMin: &min}
	b := &core.Filter{Search: "oak", States: []string{"CA", "NY"}, DuesMin: &min}
	if filterCacheKey(a, core.SortByDues, false) != filterCacheKey(b, core.SortByDues, false) {
		t.Errorf("equivalent filters should share a cache key")
	}
}

func TestFilterCacheKeyDistinguishes(t *testing.T) {
	f := &core.Filter{Search: "oak"}
	if filterCacheKey(f, core.SortByDues, false) == filterCacheKey(f, core.SortByDues, true) {
		t.Errorf("sort direction must affect the key")
	}
	if filterCacheKey(f, core.SortByDues, false) == filterCacheKey(f, core.SortByName, false) {
		t.Errorf("sort key must affect the key")
	}
}
