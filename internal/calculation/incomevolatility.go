package calculation

import (
	"fmt"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeVolatilityInput describes a mid-year income change against an
// existing subsidy.
type IncomeVolatilityInput struct {
	CurrentIncome   decimal.Decimal
	ProjectedIncome decimal.Decimal
	HouseholdSize   int
	State           string
	CurrentPremium  decimal.Decimal // monthly, pre-subsidy
	CurrentSubsidy  decimal.Decimal // monthly
	MonthsRemaining int
}

// IncomeVolatilityAnalyzer quantifies tax-reconciliation risk when reported
// income drifts from the income the subsidy was sized on.
type IncomeVolatilityAnalyzer struct {
	FPL      domain.FPLTable
	Medicaid domain.MedicaidThresholds
	Schedule []ContributionPoint
}

// NewIncomeVolatilityAnalyzer creates an analyzer over the default tables.
func NewIncomeVolatilityAnalyzer() *IncomeVolatilityAnalyzer {
	return NewIncomeVolatilityAnalyzerWithTables(domain.DefaultReferenceTables())
}

// NewIncomeVolatilityAnalyzerWithTables creates an analyzer over loaded
// tables.
func NewIncomeVolatilityAnalyzerWithTables(tables *domain.ReferenceTables) *IncomeVolatilityAnalyzer {
	return &IncomeVolatilityAnalyzer{
		FPL:      tables.FPL,
		Medicaid: tables.Medicaid,
		Schedule: DefaultContributionSchedule(),
	}
}

// Analyze computes before/after eligibility, threshold crossings, and the
// estimated reconciliation impact. Zero current income yields a 0% change,
// never a division error.
func (iva *IncomeVolatilityAnalyzer) Analyze(input IncomeVolatilityInput) *domain.IncomeVolatilityAnalysis {
	size := input.HouseholdSize
	if size < 1 {
		size = 1
	}
	fpl := iva.FPL.AmountFor(size)
	hundred := decimal.NewFromInt(100)

	analysis := &domain.IncomeVolatilityAnalysis{}
	if !fpl.IsZero() {
		analysis.FPLPercentBefore = input.CurrentIncome.Div(fpl).Mul(hundred).Round(1)
		analysis.FPLPercentAfter = input.ProjectedIncome.Div(fpl).Mul(hundred).Round(1)
	}

	if input.CurrentIncome.IsZero() {
		analysis.PercentChange = decimal.Zero
	} else {
		analysis.PercentChange = input.ProjectedIncome.Sub(input.CurrentIncome).
			Div(input.CurrentIncome).Mul(hundred).Round(1)
	}

	medicaidCutoff := iva.Medicaid.ThresholdFor(input.State)
	ptcFloor := hundred
	ptcCeiling := decimal.NewFromInt(400)

	analysis.MedicaidBefore = analysis.FPLPercentBefore.GreaterThan(decimal.Zero) && analysis.FPLPercentBefore.LessThan(medicaidCutoff)
	analysis.MedicaidAfter = analysis.FPLPercentAfter.GreaterThan(decimal.Zero) && analysis.FPLPercentAfter.LessThan(medicaidCutoff)
	analysis.SubsidyBefore = inRange(analysis.FPLPercentBefore, ptcFloor, ptcCeiling) && !analysis.MedicaidBefore
	analysis.SubsidyAfter = inRange(analysis.FPLPercentAfter, ptcFloor, ptcCeiling) && !analysis.MedicaidAfter

	analysis.CrossedThreshold = analysis.MedicaidBefore != analysis.MedicaidAfter ||
		analysis.SubsidyBefore != analysis.SubsidyAfter ||
		crossedEdge(analysis.FPLPercentBefore, analysis.FPLPercentAfter, ptcCeiling)

	newSubsidy := iva.subsidyAt(input.ProjectedIncome, analysis.FPLPercentAfter, analysis.MedicaidAfter, input.CurrentPremium)
	monthlyDelta := input.CurrentSubsidy.Sub(newSubsidy)
	months := decimal.NewFromInt(int64(maxInt(input.MonthsRemaining, 0)))
	analysis.EstimatedImpact = monthlyDelta.Mul(months).Round(2)

	analysis.RiskLevel = reconciliationRisk(analysis.EstimatedImpact.Abs())
	analysis.Recommendations, analysis.Warnings = iva.narrative(analysis, monthlyDelta)

	return analysis
}

// subsidyAt re-sizes the subsidy for the projected income against the
// current premium as the benchmark proxy.
func (iva *IncomeVolatilityAnalyzer) subsidyAt(income, fplPct decimal.Decimal, medicaid bool, premium decimal.Decimal) decimal.Decimal {
	if medicaid || !inRange(fplPct, decimal.NewFromInt(100), decimal.NewFromInt(400)) {
		return decimal.Zero
	}
	sc := &SubsidyCalculator{Schedule: iva.Schedule}
	expectedPct := sc.expectedContributionPct(fplPct)
	expectedMonthly := income.Mul(expectedPct).Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	subsidy := premium.Sub(expectedMonthly)
	if subsidy.IsNegative() {
		return decimal.Zero
	}
	return subsidy
}

func (iva *IncomeVolatilityAnalyzer) narrative(analysis *domain.IncomeVolatilityAnalysis, monthlyDelta decimal.Decimal) ([]string, []string) {
	recommendations := []string{
		"Report the income change to the marketplace as soon as it is confirmed",
	}
	warnings := []string{}

	switch {
	case analysis.MedicaidAfter && !analysis.MedicaidBefore:
		recommendations = append(recommendations,
			"The projected income falls below the Medicaid threshold: apply for Medicaid and end marketplace subsidies")
	case !analysis.SubsidyAfter && analysis.SubsidyBefore:
		warnings = append(warnings,
			"The projected income ends premium tax credit eligibility; credits received this year may be repaid at reconciliation")
	case monthlyDelta.GreaterThan(decimal.Zero):
		warnings = append(warnings,
			fmt.Sprintf("The current subsidy overshoots the projected income by about $%s/month; expect a repayment at tax time", monthlyDelta.Round(0)))
	case monthlyDelta.LessThan(decimal.Zero):
		recommendations = append(recommendations,
			fmt.Sprintf("The household is under-claiming by about $%s/month; updating the application raises the advance credit", monthlyDelta.Neg().Round(0)))
	}

	if analysis.RiskLevel == domain.RiskHigh || analysis.RiskLevel == domain.RiskSevere {
		warnings = append(warnings,
			"Set aside the estimated reconciliation amount or adjust withholding now")
	}
	return recommendations, warnings
}

func reconciliationRisk(impact decimal.Decimal) domain.RiskLevel {
	switch {
	case impact.LessThan(decimal.NewFromInt(100)):
		return domain.RiskMinimal
	case impact.LessThan(decimal.NewFromInt(500)):
		return domain.RiskLow
	case impact.LessThan(decimal.NewFromInt(1500)):
		return domain.RiskModerate
	case impact.LessThan(decimal.NewFromInt(3000)):
		return domain.RiskHigh
	default:
		return domain.RiskSevere
	}
}

func inRange(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}

func crossedEdge(before, after, edge decimal.Decimal) bool {
	return before.LessThanOrEqual(edge) != after.LessThanOrEqual(edge)
}
