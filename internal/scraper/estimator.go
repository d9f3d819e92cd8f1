package scraper

import (
	"math/rand"
	"time"

	"clubdir/internal/core"
)

// priceRange is an inclusive bound in cents.
type priceRange struct {
	min, max int64
}

// basePricing holds market-research pricing per prestige tier, in cents.
var basePricing = map[string]struct {
	initiation priceRange
	monthly    priceRange
}{
	"Elite":        {priceRange{35000000, 75000000}, priceRange{1500000, 3000000}},
	"Ultra-Luxury": {priceRange{25000000, 50000000}, priceRange{1200000, 2500000}},
	"Luxury":       {priceRange{15000000, 35000000}, priceRange{800000, 2000000}},
	"Premier":      {priceRange{7500000, 20000000}, priceRange{400000, 1200000}},
	"Championship": {priceRange{5000000, 15000000}, priceRange{300000, 800000}},
	"Traditional":  {priceRange{2500000, 10000000}, priceRange{250000, 600000}},
	"Resort":       {priceRange{1000000, 5000000}, priceRange{200000, 500000}},
	"Semi-Private": {priceRange{500000, 2500000}, priceRange{150000, 400000}},
	"Public":       {priceRange{0, 500000}, priceRange{10000, 100000}},
	"Municipal":    {priceRange{0, 100000}, priceRange{5000, 50000}},
}

// locationMultipliers scale estimates by state market premium.
var locationMultipliers = map[string]float64{
	"CA": 1.8, "NY": 1.7, "FL": 1.4, "TX": 1.2, "NJ": 1.6,
	"CT": 1.5, "MA": 1.5, "HI": 1.4, "AZ": 1.1, "NV": 1.2,
}

const defaultMultiplier = 1.0

// Estimator fills in dues and fees for scraped clubs whose listings carry no
// pricing, using prestige tier and state market premium.
type Estimator struct {
	rng *rand.Rand
}

// NewEstimator builds an estimator. A nil source seeds from the clock.
func NewEstimator(rng *rand.Rand) *Estimator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Estimator{rng: rng}
}

// MonthlyDues estimates monthly dues for a prestige tier in a state.
func (e *Estimator) MonthlyDues(prestige, state string) core.Money {
	tier, ok := basePricing[prestige]
	r := tier.monthly
	if !ok {
		r = basePricing["Traditional"].monthly
	}
	return e.estimate(r, state)
}

// InitiationFee estimates the one-time initiation fee.
func (e *Estimator) InitiationFee(prestige, state string) core.Money {
	tier, ok := basePricing[prestige]
	r := tier.initiation
	if !ok {
		r = basePricing["Traditional"].initiation
	}
	return e.estimate(r, state)
}

func (e *Estimator) estimate(r priceRange, state string) core.Money {
	base := r.min
	if r.max > r.min {
		base += e.rng.Int63n(r.max - r.min + 1)
	}
	multiplier, ok := locationMultipliers[state]
	if !ok {
		multiplier = defaultMultiplier
	}
	return core.Money{Cents: int64(float64(base) * multiplier)}
}

// Enhance fills missing pricing on a scraped club in place.
func (e *Estimator) Enhance(c *Club) {
	if c.PrestigeLevel == "" {
		c.PrestigeLevel = "Traditional"
	}
	if c.MonthlyDues.Cents == 0 {
		c.MonthlyDues = e.MonthlyDues(c.PrestigeLevel, c.State)
	}
	if c.InitiationFee.Cents == 0 {
		c.InitiationFee = e.InitiationFee(c.PrestigeLevel, c.State)
	}
}
