package core

import "testing"

func TestSummarize(t *testing.T) {
	s := Summarize(sampleClubs())

	if s.Clubs != 4 {
		t.Errorf("Clubs = %d, want 4", s.Clubs)
	}
	// (35000 + 850000 + 1200000 + 20000) / 4
	if s.AverageDues.Cents != 526250 {
		t.Errorf("AverageDues = %d, want 526250", s.AverageDues.Cents)
	}
	if s.States != 2 {
		t.Errorf("States = %d, want 2", s.States)
	}
	if s.DuesMin.Cents != 20000 || s.DuesMax.Cents != 1200000 {
		t.Errorf("dues range = %d..%d", s.DuesMin.Cents, s.DuesMax.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("empty input should yield zero summary, got %+v", s)
	}
}

func TestComputeFacets(t *testing.T) {
	fc := ComputeFacets(sampleClubs())

	if len(fc.States) != 2 || fc.States[0] != "CA" || fc.States[1] != "NY" {
		t.Errorf("States = %v", fc.States)
	}
	if len(fc.Cities) != 3 {
		t.Errorf("Cities = %v", fc.Cities)
	}
	if len(fc.PrestigeLevels) != 4 {
		t.Errorf("PrestigeLevels = %v", fc.PrestigeLevels)
	}
	if fc.DuesMin.Cents != 20000 || fc.DuesMax.Cents != 1200000 {
		t.Errorf("dues bounds = %d..%d", fc.DuesMin.Cents, fc.DuesMax.Cents)
	}
	if fc.InitiationMin.Cents != 0 || fc.InitiationMax.Cents != 35000000 {
		t.Errorf("initiation bounds = %d..%d", fc.InitiationMin.Cents, fc.InitiationMax.Cents)
	}
}

func TestComputeFacetsSkipsEmptyValues(t *testing.T) {
	clubs := []Club{
		{Name: "A", State: "TX", City: "Austin", MonthlyDues: Money{Cents: 100}},
		{Name: "B", State: "TX", City: "Dallas", MonthlyDues: Money{Cents: 200}, PrestigeLevel: "Elite"},
	}
	fc := ComputeFacets(clubs)
	if len(fc.PrestigeLevels) != 1 || fc.PrestigeLevels[0] != "Elite" {
		t.Errorf("empty prestige should be omitted, got %v", fc.PrestigeLevels)
	}
	if len(fc.MembershipTypes) != 0 {
		t.Errorf("MembershipTypes = %v", fc.MembershipTypes)
	}
}
