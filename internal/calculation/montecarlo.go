package calculation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// RiskSimulatorConfig holds Monte Carlo simulation parameters. Randomness is
// injected through Seed so tests can assert exact distributions.
type RiskSimulatorConfig struct {
	Iterations int
	Sigma      float64 // log-normal shape parameter
	Seed       int64
	// Coinsurance is the member share of costs between the deductible and the
	// out-of-pocket maximum.
	Coinsurance decimal.Decimal
}

// DefaultRiskSimulatorConfig returns the standard 1000-iteration setup.
func DefaultRiskSimulatorConfig(seed int64) RiskSimulatorConfig {
	return RiskSimulatorConfig{
		Iterations:  1000,
		Sigma:       0.6,
		Seed:        seed,
		Coinsurance: decimal.NewFromFloat(0.20),
	}
}

// RiskSimulator simulates the annual out-of-pocket spend distribution for a
// household under a given deductible and out-of-pocket maximum.
type RiskSimulator struct {
	config RiskSimulatorConfig
}

// NewRiskSimulator creates a simulator with the given configuration.
func NewRiskSimulator(config RiskSimulatorConfig) *RiskSimulator {
	if config.Iterations <= 0 {
		config.Iterations = 1000
	}
	if config.Sigma <= 0 {
		config.Sigma = 0.6
	}
	if config.Coinsurance.IsZero() {
		config.Coinsurance = decimal.NewFromFloat(0.20)
	}
	return &RiskSimulator{config: config}
}

// EstimateBaseCost assembles the expected annual medical cost from the health
// profile. The combination order is fixed: additive terms first (visit
// frequency base, ER visits, chronic conditions, medications), then the age
// multiplier, then the tobacco multiplier.
func EstimateBaseCost(profile *domain.HouseholdProfile) decimal.Decimal {
	base := decimal.NewFromInt(800) // baseline routine care

	var health *domain.HealthProfile
	if profile != nil {
		health = profile.Health
	}
	if health != nil {
		base = visitFrequencyCost(health.VisitFrequency)
		base = base.Add(decimal.NewFromInt(int64(health.ERVisitsPerYear)).Mul(decimal.NewFromInt(1500)))
		base = base.Add(decimal.NewFromInt(int64(len(health.ChronicConditions))).Mul(decimal.NewFromInt(2200)))
		base = base.Add(medicationTierCost(health.MedicationCostTier))
	}

	if profile != nil && len(profile.AdultAges) > 0 {
		oldest := profile.AdultAges[0]
		for _, age := range profile.AdultAges {
			if age > oldest {
				oldest = age
			}
		}
		base = base.Mul(ageCostMultiplier(oldest))
	}

	if profile != nil && profile.UsesTobacco() {
		base = base.Mul(decimal.NewFromFloat(1.20))
	}

	return base.Round(2)
}

func visitFrequencyCost(freq domain.VisitFrequency) decimal.Decimal {
	switch freq {
	case domain.VisitRare:
		return decimal.NewFromInt(500)
	case domain.VisitRegular:
		return decimal.NewFromInt(1800)
	case domain.VisitFrequent:
		return decimal.NewFromInt(3600)
	default: // occasional
		return decimal.NewFromInt(1000)
	}
}

func medicationTierCost(tier domain.MedicationCostTier) decimal.Decimal {
	switch tier {
	case domain.MedTierLow:
		return decimal.NewFromInt(300)
	case domain.MedTierModerate:
		return decimal.NewFromInt(1200)
	case domain.MedTierHigh:
		return decimal.NewFromInt(3600)
	case domain.MedTierSpecialty:
		return decimal.NewFromInt(12000)
	default:
		return decimal.Zero
	}
}

func ageCostMultiplier(age int) decimal.Decimal {
	switch {
	case age < 30:
		return decimal.NewFromFloat(0.85)
	case age < 45:
		return decimal.NewFromInt(1)
	case age < 60:
		return decimal.NewFromFloat(1.30)
	default:
		return decimal.NewFromFloat(1.70)
	}
}

// Simulate draws the configured number of annual spend samples from a
// log-normal distribution centered on baseCost, clips each through the
// deductible/coinsurance/OOP-max cost-sharing function, and summarizes the
// realized out-of-pocket distribution. Identical seeds produce identical
// results.
func (rs *RiskSimulator) Simulate(baseCost, deductible, oopMax decimal.Decimal) *domain.MonteCarloResult {
	rng := rand.New(rand.NewSource(rs.config.Seed))
	sigma := rs.config.Sigma

	baseFloat, _ := baseCost.Float64()
	if baseFloat < 0 {
		baseFloat = 0
	}
	// Center the log-normal so its mean equals the base cost.
	mu := -sigma * sigma / 2

	rawOverDeductible := 0
	hitOOPMax := 0
	realized := make([]float64, rs.config.Iterations)

	deductibleFloat, _ := deductible.Float64()
	oopMaxFloat, _ := oopMax.Float64()
	coinsurance, _ := rs.config.Coinsurance.Float64()

	for i := 0; i < rs.config.Iterations; i++ {
		sample := baseFloat * math.Exp(mu+sigma*rng.NormFloat64())
		if sample > deductibleFloat {
			rawOverDeductible++
		}
		oop := applyCostSharing(sample, deductibleFloat, oopMaxFloat, coinsurance)
		if oopMaxFloat > 0 && oop >= oopMaxFloat {
			hitOOPMax++
		}
		realized[i] = oop
	}

	sort.Float64s(realized)

	result := &domain.MonteCarloResult{
		Median:          decimal.NewFromFloat(percentileFloat(realized, 0.50)).Round(2),
		Mean:            decimal.NewFromFloat(meanFloat(realized)).Round(2),
		StdDev:          decimal.NewFromFloat(stdDevFloat(realized)).Round(2),
		SimulationCount: rs.config.Iterations,
		ProbExceedDeductible: decimal.NewFromInt(int64(rawOverDeductible)).
			Div(decimal.NewFromInt(int64(rs.config.Iterations))).Round(4),
		ProbHitOOPMax: decimal.NewFromInt(int64(hitOOPMax)).
			Div(decimal.NewFromInt(int64(rs.config.Iterations))).Round(4),
		Percentiles: map[string]decimal.Decimal{
			"10th": decimal.NewFromFloat(percentileFloat(realized, 0.10)).Round(2),
			"25th": decimal.NewFromFloat(percentileFloat(realized, 0.25)).Round(2),
			"50th": decimal.NewFromFloat(percentileFloat(realized, 0.50)).Round(2),
			"75th": decimal.NewFromFloat(percentileFloat(realized, 0.75)).Round(2),
			"90th": decimal.NewFromFloat(percentileFloat(realized, 0.90)).Round(2),
			"95th": decimal.NewFromFloat(percentileFloat(realized, 0.95)).Round(2),
			"99th": decimal.NewFromFloat(percentileFloat(realized, 0.99)).Round(2),
		},
		ExpectedShortfall: decimal.NewFromFloat(expectedShortfall(realized, 0.95)).Round(2),
	}
	return result
}

// applyCostSharing clips a raw annual spend through the plan's cost-sharing:
// full cost up to the deductible, coinsurance beyond it, capped at the
// out-of-pocket maximum.
func applyCostSharing(spend, deductible, oopMax, coinsurance float64) float64 {
	if spend <= 0 {
		return 0
	}
	oop := spend
	if deductible > 0 && spend > deductible {
		oop = deductible + (spend-deductible)*coinsurance
	}
	if oopMax > 0 && oop > oopMax {
		oop = oopMax
	}
	return oop
}

// percentileFloat interpolates a percentile from an ascending-sorted slice.
func percentileFloat(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := index - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*frac
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevFloat(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := meanFloat(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// expectedShortfall averages the tail beyond the given percentile: the
// expected out-of-pocket cost conditional on landing in the worst 5%.
func expectedShortfall(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	start := int(p * float64(len(sorted)))
	if start >= len(sorted) {
		start = len(sorted) - 1
	}
	return meanFloat(sorted[start:])
}
