package core

import (
	"regexp"
	"strings"
)

// monthlyFeePattern matches recurring fees embedded in the free-form
// "Other Costs" column, e.g. "Caddies Required: $200/round; Dining Minimum:
// $450/month" contributes 450.
var monthlyFeePattern = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*)/month`)

// MonthlyFees sums the $N/month amounts found in an Other Costs string,
// returned in cents. Unparseable fragments are ignored.
func MonthlyFees(otherCosts string) Money {
	var total int64
	for _, m := range monthlyFeePattern.FindAllStringSubmatch(otherCosts, -1) {
		cents, err := ParseDollarsToCents(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		total += cents
	}
	return Money{Cents: total}
}

// TotalMonthlyCost is the monthly dues plus any recurring monthly fees
// declared under Other Costs.
func (c Club) TotalMonthlyCost() Money {
	return Money{Cents: c.MonthlyDues.Cents + MonthlyFees(c.OtherCosts).Cents}
}

// AnnualCost is the total monthly cost over twelve months.
func (c Club) AnnualCost() Money {
	return Money{Cents: c.TotalMonthlyCost().Cents * 12}
}
