package memory

import (
	"context"
	"testing"

	"clubdir/internal/core"
	"clubdir/internal/dataset"
)

func testTable() *dataset.Table {
	return &dataset.Table{Clubs: []core.Club{
		{Name: "Oak Hill", State: "NY", City: "Rochester", MonthlyDues: core.Money{Cents: 35000}, PrestigeLevel: "Traditional"},
		{Name: "Cypress Point Club", State: "CA", City: "Pebble Beach", MonthlyDues: core.Money{Cents: 1200000}, InitiationFee: core.Money{Cents: 35000000}, PrestigeLevel: "Elite"},
		{Name: "Torrey Pines", State: "CA", City: "La Jolla", MonthlyDues: core.Money{Cents: 20000}, PrestigeLevel: "Municipal"},
	}}
}

func TestListFiltersAndSorts(t *testing.T) {
	s := New(testTable())
	ctx := context.Background()

	all, err := s.List(ctx, &core.Filter{}, core.SortByDues, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Torrey Pines" {
		t.Fatalf("unexpected order: %+v", all)
	}

	ca, err := s.List(ctx, &core.Filter{States: []string{"CA"}}, core.SortByName, false)
	if err != nil {
		t.Fatalf("list CA: %v", err)
	}
	if len(ca) != 2 || ca[0].Name != "Cypress Point Club" {
		t.Fatalf("CA filter: %+v", ca)
	}
}

func TestListDoesNotMutateStore(t *testing.T) {
	s := New(testTable())
	ctx := context.Background()
	out, _ := s.List(ctx, &core.Filter{}, core.SortByName, true)
	out[0].Name = "mutated"
	again, _ := s.List(ctx, &core.Filter{Search: "mutated"}, core.SortByName, false)
	if len(again) != 0 {
		t.Fatalf("store was mutated through a returned slice")
	}
}

func TestFacets(t *testing.T) {
	s := New(testTable())
	fc, err := s.Facets(context.Background())
	if err != nil {
		t.Fatalf("facets: %v", err)
	}
	if len(fc.States) != 2 || fc.States[0] != "CA" || fc.States[1] != "NY" {
		t.Fatalf("states = %v", fc.States)
	}
	if len(fc.PrestigeLevels) != 3 {
		t.Fatalf("prestige = %v", fc.PrestigeLevels)
	}
	if fc.DuesMin.Cents != 20000 || fc.DuesMax.Cents != 1200000 {
		t.Fatalf("dues bounds = %d..%d", fc.DuesMin.Cents, fc.DuesMax.Cents)
	}
	if fc.InitiationMax.Cents != 35000000 {
		t.Fatalf("initiation max = %d", fc.InitiationMax.Cents)
	}
}
