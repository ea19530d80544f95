package calculation

import (
	"fmt"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// EmployerKeep recommends staying on the employer plan.
	EmployerKeep = "keep_employer"
	// EmployerSwitch recommends moving to the marketplace.
	EmployerSwitch = "switch_marketplace"

	// COBRAAdminLoadFactor is the statutory administrative load on a COBRA
	// continuation premium: 102% of the full plan cost, applied before any
	// rounding.
	COBRAAdminLoadFactor = 1.02
)

// EmployerPlanComparator weighs employer-sponsored coverage against the
// post-subsidy marketplace cost.
type EmployerPlanComparator struct {
	// KeepTolerance is the monthly difference inside which the comparator
	// prefers continuity and recommends keeping the employer plan even when
	// the marketplace is nominally cheaper.
	KeepTolerance decimal.Decimal

	// TypicalEmployeeShare is the assumed monthly employee cost for an
	// average employer plan when no contribution figure is provided.
	TypicalEmployeeShare decimal.Decimal

	// TypicalFullPremium is the assumed full monthly premium of an average
	// employer plan, used to offset a known employer contribution.
	TypicalFullPremium decimal.Decimal
}

// NewEmployerPlanComparator creates a comparator with default assumptions.
func NewEmployerPlanComparator() *EmployerPlanComparator {
	return &EmployerPlanComparator{
		KeepTolerance:        decimal.NewFromInt(50),
		TypicalEmployeeShare: decimal.NewFromInt(200),
		TypicalFullPremium:   decimal.NewFromInt(650),
	}
}

// Compare returns nil when the household has no employer coverage or there is
// no subsidy context to compare against. Otherwise it recommends the cheaper
// side, with a continuity bias toward keeping employer coverage.
func (ec *EmployerPlanComparator) Compare(
	profile *domain.HouseholdProfile,
	subsidy *domain.SubsidyAnalysis,
	marketplaceCost domain.CostRange,
) *domain.EmployerComparison {
	if !profile.HasEmployerInsurance || subsidy == nil {
		return nil
	}

	employerNet := ec.TypicalEmployeeShare
	if profile.EmployerContribution != nil {
		// Contribution offsets the average full premium; floor at zero for a
		// fully employer-paid plan.
		employerNet = ec.TypicalFullPremium.Sub(*profile.EmployerContribution)
		if employerNet.IsNegative() {
			employerNet = decimal.Zero
		}
	}

	marketplaceMid := marketplaceCost.Low.Add(marketplaceCost.High).Div(decimal.NewFromInt(2))
	marketplaceNet := marketplaceMid.Sub(subsidy.MonthlySubsidy)
	if marketplaceNet.IsNegative() {
		marketplaceNet = decimal.Zero
	}

	comparison := &domain.EmployerComparison{
		EmployerNetCost:    employerNet.Round(2),
		MarketplaceNetCost: marketplaceNet.Round(2),
	}

	diff := employerNet.Sub(marketplaceNet)
	if diff.LessThanOrEqual(ec.KeepTolerance) {
		comparison.Recommendation = EmployerKeep
		comparison.MonthlySavings = decimal.Zero
		comparison.ActionItems = []string{
			"Stay enrolled in the employer plan; marketplace savings do not clear the switching threshold",
			"Re-run this comparison at open enrollment or after any premium change",
		}
		if diff.IsNegative() {
			comparison.MonthlySavings = diff.Neg().Round(2)
		}
		return comparison
	}

	comparison.Recommendation = EmployerSwitch
	comparison.MonthlySavings = diff.Round(2)
	comparison.ActionItems = []string{
		fmt.Sprintf("Marketplace coverage saves about $%s/month after subsidy", diff.Round(0)),
		"Confirm the employer plan is not considered affordable coverage before claiming the premium tax credit",
		"Check provider networks before leaving the employer plan",
	}
	return comparison
}

// COBRAMonthlyPremium prices COBRA continuation for a known plan premium:
// the full premium times the 2% administrative load, exact.
func COBRAMonthlyPremium(fullMonthlyPremium decimal.Decimal) decimal.Decimal {
	return fullMonthlyPremium.Mul(decimal.NewFromFloat(COBRAAdminLoadFactor))
}
