package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/domain"
)

func TestIncomeVolatilityZeroCurrentIncome(t *testing.T) {
	analyzer := NewIncomeVolatilityAnalyzer()

	analysis := analyzer.Analyze(IncomeVolatilityInput{
		CurrentIncome:   decimal.Zero,
		ProjectedIncome: decimal.NewFromInt(40000),
		HouseholdSize:   2,
		State:           "CA",
		MonthsRemaining: 6,
	})

	require.NotNil(t, analysis)
	assert.True(t, analysis.PercentChange.IsZero(), "zero income must not divide")
	assert.True(t, analysis.FPLPercentBefore.IsZero())
	assert.True(t, analysis.FPLPercentAfter.GreaterThan(decimal.Zero))
}

func TestIncomeVolatilityRaiseEndsSubsidy(t *testing.T) {
	// A single filer jumping from 250% to well past 400% FPL loses the
	// premium tax credit and crosses the eligibility cliff.
	analyzer := NewIncomeVolatilityAnalyzer()

	analysis := analyzer.Analyze(IncomeVolatilityInput{
		CurrentIncome:   decimal.NewFromInt(37650), // 250% of 15060
		ProjectedIncome: decimal.NewFromInt(90000),
		HouseholdSize:   1,
		State:           "CA",
		CurrentPremium:  decimal.NewFromInt(450),
		CurrentSubsidy:  decimal.NewFromInt(300),
		MonthsRemaining: 6,
	})

	assert.True(t, analysis.SubsidyBefore)
	assert.False(t, analysis.SubsidyAfter)
	assert.True(t, analysis.CrossedThreshold)
	// The whole 300/month subsidy unwinds over 6 months.
	assert.True(t, analysis.EstimatedImpact.Equal(decimal.NewFromInt(1800)),
		"impact = %s", analysis.EstimatedImpact)
	assert.Equal(t, domain.RiskHigh, analysis.RiskLevel)
	assert.NotEmpty(t, analysis.Warnings)
}

func TestIncomeVolatilityDropIntoMedicaid(t *testing.T) {
	analyzer := NewIncomeVolatilityAnalyzer()

	analysis := analyzer.Analyze(IncomeVolatilityInput{
		CurrentIncome:   decimal.NewFromInt(30120), // 200% FPL
		ProjectedIncome: decimal.NewFromInt(15000), // under the 138% cutoff
		HouseholdSize:   1,
		State:           "CA",
		CurrentPremium:  decimal.NewFromInt(450),
		CurrentSubsidy:  decimal.NewFromInt(300),
		MonthsRemaining: 4,
	})

	assert.False(t, analysis.MedicaidBefore)
	assert.True(t, analysis.MedicaidAfter)
	assert.True(t, analysis.CrossedThreshold)

	assert.GreaterOrEqual(t, len(analysis.Recommendations), 2,
		"expected a Medicaid referral alongside the reporting reminder")
}

func TestIncomeVolatilitySmallChangeLowRisk(t *testing.T) {
	analyzer := NewIncomeVolatilityAnalyzer()

	analysis := analyzer.Analyze(IncomeVolatilityInput{
		CurrentIncome:   decimal.NewFromInt(30120),
		ProjectedIncome: decimal.NewFromInt(31000),
		HouseholdSize:   1,
		State:           "CA",
		CurrentPremium:  decimal.NewFromInt(450),
		CurrentSubsidy:  decimal.NewFromInt(399),
		MonthsRemaining: 6,
	})

	assert.True(t, analysis.SubsidyBefore)
	assert.True(t, analysis.SubsidyAfter)
	assert.False(t, analysis.CrossedThreshold)
	assert.Contains(t, []domain.RiskLevel{domain.RiskMinimal, domain.RiskLow}, analysis.RiskLevel)
}

func TestReconciliationRiskTiers(t *testing.T) {
	tests := []struct {
		impact   int64
		expected domain.RiskLevel
	}{
		{50, domain.RiskMinimal},
		{99, domain.RiskMinimal},
		{100, domain.RiskLow},
		{499, domain.RiskLow},
		{500, domain.RiskModerate},
		{1499, domain.RiskModerate},
		{1500, domain.RiskHigh},
		{2999, domain.RiskHigh},
		{3000, domain.RiskSevere},
		{10000, domain.RiskSevere},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, reconciliationRisk(decimal.NewFromInt(tt.impact)),
			"impact %d", tt.impact)
	}
}
