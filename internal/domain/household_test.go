package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatesDeduplicatesPreservingOrder(t *testing.T) {
	profile := &HouseholdProfile{
		Residences: []Residence{
			{State: "CA", IsPrimary: true, MonthsPerYear: 6},
			{State: "NV", MonthsPerYear: 3},
			{State: "CA", MonthsPerYear: 2},
			{State: "", MonthsPerYear: 1},
		},
	}
	assert.Equal(t, []string{"CA", "NV"}, profile.States())
}

func TestPrimaryStateFallsBackToFirst(t *testing.T) {
	flagged := &HouseholdProfile{
		Residences: []Residence{
			{State: "NV"},
			{State: "CA", IsPrimary: true},
		},
	}
	assert.Equal(t, "CA", flagged.PrimaryState())

	unflagged := &HouseholdProfile{
		Residences: []Residence{{State: "NV"}, {State: "CA"}},
	}
	assert.Equal(t, "NV", unflagged.PrimaryState())

	assert.Equal(t, "", (&HouseholdProfile{}).PrimaryState())
}

func TestEstimatedIncomeExactWinsOverBracket(t *testing.T) {
	exact := decimal.NewFromInt(71500)
	profile := &HouseholdProfile{
		AnnualIncome:  &exact,
		IncomeBracket: Income100to150K,
	}
	assert.True(t, profile.EstimatedIncome().Equal(exact))
}

func TestEstimatedIncomeBracketMidpoints(t *testing.T) {
	tests := []struct {
		bracket  IncomeBracket
		expected int64
	}{
		{IncomeUnder30K, 22000},
		{Income30to50K, 40000},
		{Income50to75K, 62500},
		{Income75to100K, 87500},
		{Income100to150K, 125000},
		{IncomeOver150K, 185000},
		{IncomeBracket(""), 0},
	}

	for _, tt := range tests {
		profile := &HouseholdProfile{IncomeBracket: tt.bracket}
		got := profile.EstimatedIncome()
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
			"%s: got %s", tt.bracket, got)
	}
}

func TestMedicareEligibilityChecks(t *testing.T) {
	assert.False(t, (&HouseholdProfile{}).AllAdultsMedicareAge(),
		"no adults is not a Medicare household")
	assert.True(t, (&HouseholdProfile{AdultAges: []int{65, 72}}).AllAdultsMedicareAge())
	assert.False(t, (&HouseholdProfile{AdultAges: []int{65, 60}}).AllAdultsMedicareAge())

	assert.True(t, (&HouseholdProfile{AdultAges: []int{58}, MedicareFlag: true}).AnyMedicareEligible())
	assert.True(t, (&HouseholdProfile{AdultAges: []int{40, 66}}).AnyMedicareEligible())
	assert.False(t, (&HouseholdProfile{AdultAges: []int{40}}).AnyMedicareEligible())
}

func TestCostRangeIsValid(t *testing.T) {
	assert.True(t, CostRange{Low: decimal.NewFromInt(100), High: decimal.NewFromInt(200)}.IsValid())
	assert.True(t, CostRange{Low: decimal.NewFromInt(100), High: decimal.NewFromInt(100)}.IsValid())
	assert.False(t, CostRange{Low: decimal.NewFromInt(300), High: decimal.NewFromInt(200)}.IsValid())
	assert.False(t, CostRange{Low: decimal.NewFromInt(-1), High: decimal.NewFromInt(200)}.IsValid())
}
