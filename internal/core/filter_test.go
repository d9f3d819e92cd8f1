package core

import "testing"

func sampleClubs() []Club {
	return []Club{
		{Name: "Oak Hill", State: "NY", City: "Rochester", MonthlyDues: Money{Cents: 35000}, PrestigeLevel: "Traditional", MembershipType: "Private"},
		{Name: "Pebble Beach Golf Links", State: "CA", City: "Pebble Beach", MonthlyDues: Money{Cents: 850000}, InitiationFee: Money{Cents: 2500000}, PrestigeLevel: "Premier", MembershipType: "Semi-Private"},
		{Name: "Cypress Point Club", State: "CA", City: "Pebble Beach", MonthlyDues: Money{Cents: 1200000}, InitiationFee: Money{Cents: 35000000}, PrestigeLevel: "Elite", MembershipType: "Private"},
		{Name: "Torrey Pines", State: "CA", City: "La Jolla", MonthlyDues: Money{Cents: 20000}, PrestigeLevel: "Municipal", MembershipType: "Public"},
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	f := &Filter{}
	got := f.Apply(sampleClubs())
	if len(got) != 4 {
		t.Fatalf("empty filter returned %d clubs, want 4", len(got))
	}
}

func TestFilterByState(t *testing.T) {
	f := &Filter{States: []string{"CA"}}
	got := f.Apply(sampleClubs())
	if len(got) != 3 {
		t.Fatalf("got %d clubs, want 3", len(got))
	}
	for _, c := range got {
		if c.State != "CA" {
			t.Fatalf("state filter leaked %q", c.State)
		}
	}

	// Matching is case-insensitive against normalized codes.
	f = &Filter{States: []string{"ca"}}
	if got := f.Apply(sampleClubs()); len(got) != 3 {
		t.Fatalf("lowercase state got %d clubs, want 3", len(got))
	}
}

func TestFilterSearchSubstring(t *testing.T) {
	f := &Filter{Search: "pebble"}
	got := f.Apply(sampleClubs())
	if len(got) != 1 || got[0].Name != "Pebble Beach Golf Links" {
		t.Fatalf("search returned %+v", got)
	}
}

func TestFilterConjunction(t *testing.T) {
	min := int64(100000)
	f := &Filter{States: []string{"CA"}, DuesMin: &min, MembershipTypes: []string{"Private"}}
	got := f.Apply(sampleClubs())
	if len(got) != 1 || got[0].Name != "Cypress Point Club" {
		t.Fatalf("conjunction returned %+v", got)
	}
}

func TestFilterDuesRange(t *testing.T) {
	min, max := int64(30000), int64(900000)
	f := &Filter{DuesMin: &min, DuesMax: &max}
	got := f.Apply(sampleClubs())
	if len(got) != 2 {
		t.Fatalf("range returned %d clubs, want 2", len(got))
	}
}

func TestSortClubs(t *testing.T) {
	clubs := sampleClubs()
	SortClubs(clubs, SortByDues, false)
	if clubs[0].Name != "Torrey Pines" || clubs[3].Name != "Cypress Point Club" {
		t.Fatalf("ascending dues order wrong: %s .. %s", clubs[0].Name, clubs[3].Name)
	}
	SortClubs(clubs, SortByDues, true)
	if clubs[0].Name != "Cypress Point Club" {
		t.Fatalf("descending dues order wrong: %s", clubs[0].Name)
	}
	SortClubs(clubs, SortByName, false)
	if clubs[0].Name != "Cypress Point Club" || clubs[1].Name != "Oak Hill" {
		t.Fatalf("name order wrong: %s, %s", clubs[0].Name, clubs[1].Name)
	}
}

func TestParseSortKey(t *testing.T) {
	if ParseSortKey("Name") != SortByName {
		t.Fatalf("expected name key")
	}
	if ParseSortKey("bogus") != SortByDues {
		t.Fatalf("expected dues default")
	}
}
