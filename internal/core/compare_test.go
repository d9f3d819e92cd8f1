package core

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	clubs := sampleClubs()[:2]
	cmp, err := Compare(clubs)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(cmp.Clubs) != 2 {
		t.Fatalf("Clubs = %d", len(cmp.Clubs))
	}
	if len(cmp.Rows) != 10 {
		t.Fatalf("Rows = %d, want 10", len(cmp.Rows))
	}
	for _, row := range cmp.Rows {
		if len(row.Values) != 2 {
			t.Fatalf("row %q has %d values", row.Field, len(row.Values))
		}
	}

	rows := map[string][]string{}
	for _, r := range cmp.Rows {
		rows[r.Field] = r.Values
	}
	if got := rows["Monthly Dues"][1]; got != "$8,500" {
		t.Errorf("dues formatted as %q", got)
	}
	if got := rows["Initiation Fee"][0]; got != "No Fee" {
		t.Errorf("zero initiation should read No Fee, got %q", got)
	}
	if got := rows["Initiation Fee"][1]; got != "$25,000" {
		t.Errorf("initiation formatted as %q", got)
	}
	if got := rows["Contact Phone"][0]; got != "N/A" {
		t.Errorf("missing phone should read N/A, got %q", got)
	}
}

func TestCompareCountBounds(t *testing.T) {
	clubs := sampleClubs()

	if _, err := Compare(clubs[:1]); !errors.Is(err, ErrCompareCount) {
		t.Errorf("one club: err = %v", err)
	}
	if _, err := Compare(append(clubs, clubs...)); !errors.Is(err, ErrCompareCount) {
		t.Errorf("eight clubs: err = %v", err)
	}
	if _, err := Compare(clubs); err != nil {
		t.Errorf("four clubs should be accepted: %v", err)
	}
}
