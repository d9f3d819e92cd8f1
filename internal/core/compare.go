package core

import "errors"

const (
	MinCompareClubs = 2
	MaxCompareClubs = 4
)

var ErrCompareCount = errors.New("comparison needs between 2 and 4 clubs")

// Comparison is a side-by-side field table for a handful of clubs.
type Comparison struct {
	Clubs []Club
	Rows  []ComparisonRow
}

// ComparisonRow holds one field's formatted value per compared club,
// in the same order as Comparison.Clubs.
type ComparisonRow struct {
	Field  string
	Values []string
}

// Compare builds the detailed comparison table shown when a user selects
// clubs to compare. Money fields are formatted as dollars; a zero initiation
// fee reads "No Fee".
func Compare(clubs []Club) (Comparison, error) {
	if len(clubs) < MinCompareClubs || len(clubs) > MaxCompareClubs {
		return Comparison{}, ErrCompareCount
	}

	rows := []ComparisonRow{
		{Field: "State"},
		{Field: "City"},
		{Field: "Monthly Dues"},
		{Field: "Total Monthly Cost"},
		{Field: "Annual Cost"},
		{Field: "Initiation Fee"},
		{Field: "Prestige Level"},
		{Field: "Membership Type"},
		{Field: "Contact Phone"},
		{Field: "Other Costs"},
	}
	for _, c := range clubs {
		rows[0].Values = append(rows[0].Values, c.State)
		rows[1].Values = append(rows[1].Values, c.City)
		rows[2].Values = append(rows[2].Values, c.MonthlyDues.String())
		rows[3].Values = append(rows[3].Values, c.TotalMonthlyCost().String())
		rows[4].Values = append(rows[4].Values, c.AnnualCost().String())
		if c.InitiationFee.Cents > 0 {
			rows[5].Values = append(rows[5].Values, c.InitiationFee.String())
		} else {
			rows[5].Values = append(rows[5].Values, "No Fee")
		}
		rows[6].Values = append(rows[6].Values, orNA(c.PrestigeLevel))
		rows[7].Values = append(rows[7].Values, orNA(c.MembershipType))
		rows[8].Values = append(rows[8].Values, orNA(c.ContactPhone))
		rows[9].Values = append(rows[9].Values, orNA(c.OtherCosts))
	}
	return Comparison{Clubs: clubs, Rows: rows}, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
