package core

// CostPlan is one side of the savings calculator: what a membership costs
// at a given club, including a monthly food minimum the dataset does not
// track but members budget for.
type CostPlan struct {
	MonthlyDues   Money
	InitiationFee Money
	FoodMinimum   Money
}

// TotalMonthly is dues plus food minimum.
func (p CostPlan) TotalMonthly() Money {
	return Money{Cents: p.MonthlyDues.Cents + p.FoodMinimum.Cents}
}

// SavingsInput drives a current-vs-target club cost comparison.
type SavingsInput struct {
	Current           CostPlan
	Target            CostPlan
	Years             int
	IncludeInitiation bool
}

// SavingsResult reports how much switching from Current to Target saves.
// Positive amounts are savings, negative amounts are cost increases.
type SavingsResult struct {
	Monthly    Money
	Annual     Money
	Initiation Money
	Total      Money // over the full period, initiation included when requested

	// BreakEvenMonths is set when higher monthly costs at the target are
	// offset by a lower initiation fee: the months until the cheaper
	// initiation has paid for itself. Zero when not applicable.
	BreakEvenMonths float64
}

// ComputeSavings evaluates the calculator. Years below one is treated as one.
func ComputeSavings(in SavingsInput) SavingsResult {
	years := in.Years
	if years < 1 {
		years = 1
	}

	monthly := in.Current.TotalMonthly().Cents - in.Target.TotalMonthly().Cents
	annual := monthly * 12
	total := annual * int64(years)

	var initiation int64
	if in.IncludeInitiation {
		initiation = in.Current.InitiationFee.Cents - in.Target.InitiationFee.Cents
		total += initiation
	}

	res := SavingsResult{
		Monthly:    Money{Cents: monthly},
		Annual:     Money{Cents: annual},
		Initiation: Money{Cents: initiation},
		Total:      Money{Cents: total},
	}
	if monthly < 0 && in.IncludeInitiation && initiation > 0 {
		res.BreakEvenMonths = float64(initiation) / float64(-monthly)
	}
	return res
}
