package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/domain"
)

var allAddOnCategories = []domain.AddOnCategory{
	domain.AddOnDental,
	domain.AddOnVision,
	domain.AddOnAccident,
	domain.AddOnCriticalIllness,
	domain.AddOnHospitalIndemnity,
	domain.AddOnDisability,
	domain.AddOnLongTermCare,
	domain.AddOnLife,
}

func TestScoreCategoryPriorityBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.AddOnPriority
	}{
		{100, domain.PriorityHigh},
		{75, domain.PriorityHigh},
		{74, domain.PriorityMedium},
		{50, domain.PriorityMedium},
		{49, domain.PriorityLow},
		{25, domain.PriorityLow},
		{24, domain.PriorityNone},
		{0, domain.PriorityNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, priorityForScore(tt.score), "score %d", tt.score)
	}
}

func TestScoreCategorySmoothness(t *testing.T) {
	// No category may jump more than 30 points across a 5-year age gap.
	engine := NewAddOnEngine()

	for _, category := range allAddOnCategories {
		prev := engine.ScoreCategory(category, 0).ProbabilityScore
		for age := 5; age <= 95; age += 5 {
			score := engine.ScoreCategory(category, age).ProbabilityScore
			diff := score - prev
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, 30, "%s: ages %d-%d jumped %d points", category, age-5, age, diff)
			prev = score
		}
	}
}

func TestScoreCategoryLifecycleShape(t *testing.T) {
	engine := NewAddOnEngine()

	// Disability peaks during working years and collapses after retirement.
	working := engine.ScoreCategory(domain.AddOnDisability, 45).ProbabilityScore
	retired := engine.ScoreCategory(domain.AddOnDisability, 70).ProbabilityScore
	assert.Greater(t, working, 60)
	assert.Less(t, retired, 10)

	// Long-term care rises steeply after 60.
	at55 := engine.ScoreCategory(domain.AddOnLongTermCare, 55).ProbabilityScore
	at75 := engine.ScoreCategory(domain.AddOnLongTermCare, 75).ProbabilityScore
	assert.Greater(t, at75, at55+30)

	// Life insurance rises through family-formation years then falls.
	at40 := engine.ScoreCategory(domain.AddOnLife, 40).ProbabilityScore
	at20 := engine.ScoreCategory(domain.AddOnLife, 20).ProbabilityScore
	at80 := engine.ScoreCategory(domain.AddOnLife, 80).ProbabilityScore
	assert.Greater(t, at40, at20)
	assert.Greater(t, at40, at80)
}

func TestScoreCategoryTotalOverAges(t *testing.T) {
	engine := NewAddOnEngine()

	for _, age := range []int{-5, 0, 40, 95, 130} {
		for _, category := range allAddOnCategories {
			rec := engine.ScoreCategory(category, age)
			assert.GreaterOrEqual(t, rec.ProbabilityScore, 0)
			assert.LessOrEqual(t, rec.ProbabilityScore, 100)
			assert.True(t, rec.EstimatedMonthlyCost.GreaterThanOrEqual(decimal.Zero))
		}
	}
}

func TestAnalyzeHouseholdTakesMaxMemberScore(t *testing.T) {
	engine := NewAddOnEngine()
	profile := &domain.HouseholdProfile{
		AdultAges: []int{70, 30},
		Residences: []domain.Residence{
			{State: "CA", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	analysis := engine.Analyze(profile)
	require.NotNil(t, analysis)
	assert.Len(t, analysis.All, len(allAddOnCategories))

	// The 70-year-old drives long-term-care exposure regardless of the
	// younger member.
	var ltc *domain.AddOnRecommendation
	for i := range analysis.All {
		if analysis.All[i].Category == domain.AddOnLongTermCare {
			ltc = &analysis.All[i]
		}
	}
	require.NotNil(t, ltc)
	solo := engine.ScoreCategory(domain.AddOnLongTermCare, 70).ProbabilityScore
	assert.GreaterOrEqual(t, ltc.ProbabilityScore, solo)
}

func TestAnalyzeRecommendedSortedByPriority(t *testing.T) {
	engine := NewAddOnEngine()
	profile := &domain.HouseholdProfile{AdultAges: []int{45, 42}, ChildAges: []int{12}}

	analysis := engine.Analyze(profile)

	rank := map[domain.AddOnPriority]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    2,
		domain.PriorityNone:   3,
	}
	for i := 1; i < len(analysis.Recommended); i++ {
		prev, cur := analysis.Recommended[i-1], analysis.Recommended[i]
		assert.LessOrEqual(t, rank[prev.Priority], rank[cur.Priority])
		if prev.Priority == cur.Priority {
			assert.GreaterOrEqual(t, prev.ProbabilityScore, cur.ProbabilityScore)
		}
	}
	for _, rec := range analysis.Recommended {
		assert.NotEqual(t, domain.PriorityNone, rec.Priority)
	}
}

func TestAnalyzeHouseholdCostDiscountsExtraMembers(t *testing.T) {
	engine := NewAddOnEngine()

	perMember := decimal.NewFromInt(100)
	family := engine.householdCost(perMember, 3)
	individual := engine.householdCost(perMember, 1)

	// 100 * (1 + 0.6*2) = 220, cheaper than 3 * 100.
	assert.True(t, family.Equal(decimal.NewFromInt(220)), "family = %s", family)
	assert.True(t, individual.Equal(perMember))
	assert.True(t, family.LessThan(perMember.Mul(decimal.NewFromInt(3))))
}

func TestAnalyzeHealthAdjustments(t *testing.T) {
	engine := NewAddOnEngine()
	baseline := &domain.HouseholdProfile{AdultAges: []int{45}}
	chronic := &domain.HouseholdProfile{
		AdultAges:  []int{45},
		TobaccoUse: []bool{true},
		Health: &domain.HealthProfile{
			ChronicConditions: []string{"diabetes", "hypertension"},
		},
	}

	pick := func(analysis *domain.AddOnAnalysis, category domain.AddOnCategory) domain.AddOnRecommendation {
		for _, rec := range analysis.All {
			if rec.Category == category {
				return rec
			}
		}
		t.Fatalf("category %s missing", category)
		return domain.AddOnRecommendation{}
	}

	base := engine.Analyze(baseline)
	adjusted := engine.Analyze(chronic)

	assert.Greater(t,
		pick(adjusted, domain.AddOnCriticalIllness).ProbabilityScore,
		pick(base, domain.AddOnCriticalIllness).ProbabilityScore)
	assert.Greater(t,
		pick(adjusted, domain.AddOnLife).ProbabilityScore,
		pick(base, domain.AddOnLife).ProbabilityScore)
	// Dental is age-driven only.
	assert.Equal(t,
		pick(base, domain.AddOnDental).ProbabilityScore,
		pick(adjusted, domain.AddOnDental).ProbabilityScore)
}

func TestAnalyzeEmptyHousehold(t *testing.T) {
	engine := NewAddOnEngine()

	analysis := engine.Analyze(&domain.HouseholdProfile{})
	require.NotNil(t, analysis)
	assert.Len(t, analysis.All, len(allAddOnCategories))
	assert.True(t, analysis.HouseholdMonthlyCost.GreaterThanOrEqual(decimal.Zero))
}
