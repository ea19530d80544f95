package calculation

import (
	"context"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributionPoint is one edge of the expected-contribution schedule: at
// FPLPercent of the poverty level, the household is expected to spend
// ContributionPct percent of income on the benchmark plan.
type ContributionPoint struct {
	FPLPercent      decimal.Decimal
	ContributionPct decimal.Decimal
}

// SubsidyCalculator computes ACA premium-tax-credit and Medicaid eligibility
// from income, household size, and a benchmark SLCSP premium.
type SubsidyCalculator struct {
	FPL       domain.FPLTable
	Medicaid  domain.MedicaidThresholds
	Schedule  []ContributionPoint // ascending by FPLPercent
	Benchmark BenchmarkSource     // may be nil; estimator is always present
	Estimator BenchmarkSource
}

// NewSubsidyCalculator creates a calculator with default tables and the
// built-in benchmark estimator.
func NewSubsidyCalculator() *SubsidyCalculator {
	return NewSubsidyCalculatorWithTables(domain.DefaultReferenceTables(), nil)
}

// NewSubsidyCalculatorWithTables creates a calculator using loaded reference
// tables and an optional authoritative benchmark source.
func NewSubsidyCalculatorWithTables(tables *domain.ReferenceTables, benchmark BenchmarkSource) *SubsidyCalculator {
	return &SubsidyCalculator{
		FPL:       tables.FPL,
		Medicaid:  tables.Medicaid,
		Schedule:  DefaultContributionSchedule(),
		Benchmark: benchmark,
		Estimator: NewEstimatedBenchmarkSource(tables),
	}
}

// DefaultContributionSchedule returns the piecewise-linear expected
// contribution percentages over the statutory bracket edges.
func DefaultContributionSchedule() []ContributionPoint {
	return []ContributionPoint{
		{FPLPercent: decimal.NewFromInt(150), ContributionPct: decimal.Zero},
		{FPLPercent: decimal.NewFromInt(200), ContributionPct: decimal.NewFromInt(2)},
		{FPLPercent: decimal.NewFromInt(250), ContributionPct: decimal.NewFromInt(4)},
		{FPLPercent: decimal.NewFromInt(300), ContributionPct: decimal.NewFromInt(6)},
		{FPLPercent: decimal.NewFromInt(400), ContributionPct: decimal.NewFromFloat(8.5)},
	}
}

// Calculate runs the eligibility state machine for the household. It never
// returns an error: benchmark unavailability falls back to the estimator and
// is recorded in the result's provenance fields.
func (sc *SubsidyCalculator) Calculate(ctx context.Context, profile *domain.HouseholdProfile) *domain.SubsidyAnalysis {
	analysis := &domain.SubsidyAnalysis{
		MonthlySubsidy: decimal.Zero,
		Source:         domain.SubsidySourceEstimated,
	}

	income := profile.EstimatedIncome()
	householdSize := profile.MemberCount()
	if householdSize < 1 {
		householdSize = 1
	}

	fpl := sc.FPL.AmountFor(householdSize)
	if income.IsZero() || fpl.IsZero() {
		// Zero income is a defined state, not an error: no FPL percentage,
		// no marketplace subsidy. Medicaid screening is still worthwhile.
		analysis.MedicaidEligible = income.IsZero() && householdSize > 0
		if analysis.MedicaidEligible {
			analysis.Notes = append(analysis.Notes,
				"No reported income: household likely qualifies for Medicaid; verify with the state agency")
		}
		return analysis
	}

	fplPct := income.Div(fpl).Mul(decimal.NewFromInt(100))
	analysis.FPLPercentage = fplPct.Round(1)

	benchmark := sc.lookupBenchmark(ctx, profile)
	analysis.BenchmarkPremium = benchmark.MonthlyPremium
	analysis.IsRealSLCSP = benchmark.IsReal
	if benchmark.IsReal {
		analysis.Source = domain.SubsidySourceReal
	}

	medicaidCutoff := sc.Medicaid.ThresholdFor(profile.PrimaryState())
	if fplPct.LessThan(medicaidCutoff) {
		analysis.MedicaidEligible = true
		analysis.Notes = append(analysis.Notes,
			"Household income is below the state Medicaid threshold; marketplace subsidies do not apply")
		return analysis
	}

	// PTC window: 100-400% FPL inclusive.
	if fplPct.LessThan(decimal.NewFromInt(100)) || fplPct.GreaterThan(decimal.NewFromInt(400)) {
		if fplPct.GreaterThan(decimal.NewFromInt(400)) {
			analysis.Notes = append(analysis.Notes,
				"Income exceeds 400% of the federal poverty level; no premium tax credit")
		}
		return analysis
	}

	expectedPct := sc.expectedContributionPct(fplPct)
	analysis.ExpectedContribution = expectedPct

	expectedMonthly := income.Mul(expectedPct).Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	subsidy := benchmark.MonthlyPremium.Sub(expectedMonthly)
	if subsidy.IsNegative() {
		subsidy = decimal.Zero
	}
	analysis.MonthlySubsidy = subsidy.Round(2)
	analysis.SubsidyEligible = subsidy.GreaterThan(decimal.Zero)

	return analysis
}

// expectedContributionPct interpolates the schedule at the household's FPL
// percentage. Below the first edge the expected contribution is zero; above
// the last edge it holds the final value.
func (sc *SubsidyCalculator) expectedContributionPct(fplPct decimal.Decimal) decimal.Decimal {
	if len(sc.Schedule) == 0 {
		return decimal.Zero
	}
	first := sc.Schedule[0]
	if fplPct.LessThanOrEqual(first.FPLPercent) {
		return first.ContributionPct
	}
	for i := 1; i < len(sc.Schedule); i++ {
		prev, next := sc.Schedule[i-1], sc.Schedule[i]
		if fplPct.LessThanOrEqual(next.FPLPercent) {
			span := next.FPLPercent.Sub(prev.FPLPercent)
			if span.IsZero() {
				return next.ContributionPct
			}
			frac := fplPct.Sub(prev.FPLPercent).Div(span)
			return prev.ContributionPct.Add(next.ContributionPct.Sub(prev.ContributionPct).Mul(frac))
		}
	}
	return sc.Schedule[len(sc.Schedule)-1].ContributionPct
}

// lookupBenchmark tries the authoritative source once, then falls back to the
// heuristic estimator. The estimator never fails.
func (sc *SubsidyCalculator) lookupBenchmark(ctx context.Context, profile *domain.HouseholdProfile) *SLCSPResult {
	state := profile.PrimaryState()
	zip := profile.PrimaryZip()
	ages := profile.AllAges()

	if sc.Benchmark != nil && zip != "" {
		if result, err := sc.Benchmark.GetSLCSP(ctx, state, zip, ages); err == nil && result != nil && result.MonthlyPremium.GreaterThan(decimal.Zero) {
			return result
		}
	}

	result, err := sc.Estimator.GetSLCSP(ctx, state, zip, ages)
	if err != nil || result == nil {
		// The estimator is total; this is unreachable in practice but keeps
		// the calculator itself total.
		return &SLCSPResult{MonthlyPremium: decimal.NewFromInt(350), Source: "estimated (flat)"}
	}
	return result
}
