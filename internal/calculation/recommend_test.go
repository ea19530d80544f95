package calculation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/domain"
)

func TestClassifyScenario(t *testing.T) {
	tests := []struct {
		name     string
		profile  *domain.HouseholdProfile
		expected ScenarioType
	}{
		{
			name:     "all adults 65 plus",
			profile:  &domain.HouseholdProfile{AdultAges: []int{70, 68}},
			expected: ScenarioMedicare,
		},
		{
			name:     "medicare adult with younger spouse",
			profile:  &domain.HouseholdProfile{AdultAges: []int{67, 45}},
			expected: ScenarioMixed,
		},
		{
			name:     "medicare adults with a child",
			profile:  &domain.HouseholdProfile{AdultAges: []int{70, 68}, ChildAges: []int{16}},
			expected: ScenarioMixed,
		},
		{
			name:     "medicare flag without qualifying age",
			profile:  &domain.HouseholdProfile{AdultAges: []int{58}, MedicareFlag: true},
			expected: ScenarioMixed,
		},
		{
			name:     "working family",
			profile:  &domain.HouseholdProfile{AdultAges: []int{40, 38}, ChildAges: []int{10, 7}},
			expected: ScenarioNonMedicare,
		},
		{
			name:     "single adult",
			profile:  &domain.HouseholdProfile{AdultAges: []int{29}},
			expected: ScenarioNonMedicare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyScenario(tt.profile))
		})
	}
}

func TestGenerateSingleMedicareAdult(t *testing.T) {
	// One Medicare adult in a single state with no reported income: the low
	// estimate is the per-person Medicare cost scaled only by the state
	// factor, with no IRMAA surcharge in the high estimate.
	gen := NewRecommendationGenerator()
	profile := &domain.HouseholdProfile{
		AdultAges: []int{70},
		Residences: []domain.Residence{
			{State: "CA", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	rec := gen.Generate(profile)
	require.NotNil(t, rec)

	assert.Equal(t, domain.PlanMedicareFamily, rec.PlanType)
	assert.Equal(t, 90, rec.CoverageScore)

	// 320 * 1.12 = 358.40, high = 358.40 * 1.30 = 465.92.
	assert.True(t, rec.MonthlyCost.Low.Equal(decimal.NewFromFloat(358.40)),
		"low = %s", rec.MonthlyCost.Low)
	assert.True(t, rec.MonthlyCost.High.Equal(decimal.NewFromFloat(465.92)),
		"high = %s", rec.MonthlyCost.High)
	assert.NotEmpty(t, rec.Reasoning)
	assert.NotEmpty(t, rec.ActionItems)
	assert.Len(t, rec.Alternatives, 2)
}

func TestGenerateMedicareIRMAASurcharge(t *testing.T) {
	// A high-income Medicare couple picks up a joint-threshold IRMAA
	// surcharge in the high estimate only.
	gen := NewRecommendationGenerator()
	income := decimal.NewFromInt(300000)
	profile := &domain.HouseholdProfile{
		AdultAges:    []int{70, 68},
		AnnualIncome: &income,
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	rec := gen.Generate(profile)

	base := decimal.NewFromInt(320).Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromFloat(0.97))
	assert.True(t, rec.MonthlyCost.Low.Equal(base.Round(2)))
	assert.True(t, rec.MonthlyCost.High.GreaterThan(base.Mul(decimal.NewFromFloat(1.30))),
		"high estimate should include an IRMAA surcharge")
}

func TestGenerateFamilyTwoStateLoad(t *testing.T) {
	gen := NewRecommendationGenerator()
	base := &domain.HouseholdProfile{
		AdultAges: []int{40, 38},
		ChildAges: []int{10, 7},
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 8},
		},
	}

	rec := gen.Generate(base)
	assert.Equal(t, domain.PlanFamilyPPO, rec.PlanType)

	// 1250 + 190 for the second child, scaled by the TX factor.
	expected := decimal.NewFromInt(1440).Mul(decimal.NewFromFloat(0.97))
	assert.True(t, rec.MonthlyCost.Low.Equal(expected.Round(2)),
		"low = %s", rec.MonthlyCost.Low)

	// Adding a non-adjacent second state applies the multi-state load.
	twoState := *base
	twoState.Residences = append([]domain.Residence{}, base.Residences...)
	twoState.Residences = append(twoState.Residences,
		domain.Residence{State: "FL", MonthsPerYear: 4})

	recTwo := gen.Generate(&twoState)
	assert.True(t, recTwo.MonthlyCost.Low.GreaterThan(rec.MonthlyCost.Low))

	// An adjacent pair shares a regional network and skips the load.
	adjacent := *base
	adjacent.Residences = []domain.Residence{
		{State: "CA", IsPrimary: true, MonthsPerYear: 8},
		{State: "NV", MonthsPerYear: 4},
	}
	recAdj := gen.Generate(&adjacent)
	expectedAdj := decimal.NewFromInt(1440).Mul(decimal.NewFromFloat(1.12))
	assert.True(t, recAdj.MonthlyCost.Low.Equal(expectedAdj.Round(2)),
		"low = %s", recAdj.MonthlyCost.Low)
}

func TestGenerateSingleParentDiscount(t *testing.T) {
	gen := NewRecommendationGenerator()
	profile := &domain.HouseholdProfile{
		AdultAges: []int{35},
		ChildAges: []int{6},
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	rec := gen.Generate(profile)

	// 1250 * 0.90 single-parent discount * 0.97 state factor.
	expected := decimal.NewFromInt(1250).Mul(decimal.NewFromFloat(0.90)).Mul(decimal.NewFromFloat(0.97))
	assert.True(t, rec.MonthlyCost.Low.Equal(expected.Round(2)),
		"low = %s", rec.MonthlyCost.Low)
}

func TestGenerateMixedHousehold(t *testing.T) {
	gen := NewRecommendationGenerator()
	profile := &domain.HouseholdProfile{
		AdultAges: []int{67, 45},
		ChildAges: []int{12},
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	rec := gen.Generate(profile)

	assert.Equal(t, domain.PlanMixedHousehold, rec.PlanType)
	// 320 medicare + 485 marketplace adult + 240 child, TX factor.
	expected := decimal.NewFromInt(1045).Mul(decimal.NewFromFloat(0.97))
	assert.True(t, rec.MonthlyCost.Low.Equal(expected.Round(2)),
		"low = %s", rec.MonthlyCost.Low)
	assert.True(t, rec.MonthlyCost.IsValid())
}

func TestGenerateMixedMultiStateScorePenalty(t *testing.T) {
	gen := NewRecommendationGenerator()
	single := &domain.HouseholdProfile{
		AdultAges: []int{67, 45},
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 12},
		},
	}
	multi := &domain.HouseholdProfile{
		AdultAges: []int{67, 45},
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 8},
			{State: "FL", MonthsPerYear: 4},
		},
	}

	assert.Equal(t, 90, gen.Generate(single).CoverageScore)
	assert.Equal(t, 80, gen.Generate(multi).CoverageScore)
}

func TestGenerateEmptyHousehold(t *testing.T) {
	gen := NewRecommendationGenerator()

	for _, profile := range []*domain.HouseholdProfile{nil, {}} {
		rec := gen.Generate(profile)
		require.NotNil(t, rec)
		assert.Equal(t, domain.PlanMarketplace, rec.PlanType)
		assert.True(t, rec.MonthlyCost.Low.IsZero())
		assert.True(t, rec.MonthlyCost.High.IsZero())
		assert.Equal(t, 50, rec.CoverageScore)
		assert.NotEmpty(t, rec.Reasoning)
	}
}

func TestGenerateBudgetNote(t *testing.T) {
	gen := NewRecommendationGenerator()
	profile := &domain.HouseholdProfile{
		AdultAges:     []int{40, 38},
		ChildAges:     []int{10, 7},
		BudgetBracket: domain.BudgetUnder200,
		Residences: []domain.Residence{
			{State: "NY", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	rec := gen.Generate(profile)

	found := false
	for _, line := range rec.Reasoning {
		if strings.Contains(line, "budget") {
			found = true
		}
	}
	assert.True(t, found, "expected a budget warning in the reasoning")
}

func TestGenerateCostRangesAlwaysValid(t *testing.T) {
	gen := NewRecommendationGenerator()
	profiles := []*domain.HouseholdProfile{
		{AdultAges: []int{70}},
		{AdultAges: []int{70, 45}, ChildAges: []int{8}},
		{AdultAges: []int{25}},
		{AdultAges: []int{40, 38}, ChildAges: []int{10, 7, 3}, TobaccoUse: []bool{true, false}},
	}

	for _, profile := range profiles {
		rec := gen.Generate(profile)
		assert.True(t, rec.MonthlyCost.IsValid(), "plan %s: %s > %s",
			rec.PlanType, rec.MonthlyCost.Low, rec.MonthlyCost.High)
		assert.GreaterOrEqual(t, rec.CoverageScore, 0)
		assert.LessOrEqual(t, rec.CoverageScore, 100)
	}
}
