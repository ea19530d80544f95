package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFPLTableAmountFor(t *testing.T) {
	table := DefaultFPLTable()

	tests := []struct {
		size     int
		expected int64
	}{
		{1, 15060},
		{4, 31200},
		{8, 52720},
		{10, 52720 + 2*5380}, // extrapolated past the table
		{0, 15060},           // clamps to one person
		{-3, 15060},
	}

	for _, tt := range tests {
		got := table.AmountFor(tt.size)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
			"size %d: got %s", tt.size, got)
	}
}

func TestAgeRatingCurveInterpolatesAndClamps(t *testing.T) {
	curve := DefaultAgeRatingCurve()

	// Exact anchors.
	assert.True(t, curve.FactorFor(21).Equal(decimal.NewFromInt(1)))
	assert.True(t, curve.FactorFor(64).Equal(decimal.NewFromInt(3)))

	// Between anchors the factor is strictly increasing.
	prev := curve.FactorFor(21)
	for age := 22; age <= 64; age++ {
		f := curve.FactorFor(age)
		assert.True(t, f.GreaterThanOrEqual(prev), "age %d factor regressed", age)
		prev = f
	}

	// Past the last anchor the curve clamps at the 3x cap.
	assert.True(t, curve.FactorFor(80).Equal(curve.FactorFor(64)))
	// Negative ages clamp to the infant factor.
	assert.True(t, curve.FactorFor(-2).Equal(curve.FactorFor(0)))
}

func TestMedicaidThresholds(t *testing.T) {
	thresholds := DefaultMedicaidThresholds()

	assert.True(t, thresholds.ThresholdFor("CA").Equal(decimal.NewFromInt(138)))
	assert.True(t, thresholds.ThresholdFor("TX").Equal(decimal.NewFromInt(100)))
	assert.True(t, thresholds.ThresholdFor("ZZ").Equal(decimal.NewFromInt(138)),
		"unknown states use the expansion default")
}

func TestStateCostFactorsDefaultToOne(t *testing.T) {
	factors := DefaultStateCostFactors()

	assert.True(t, factors.FactorFor("NY").Equal(decimal.NewFromFloat(1.25)))
	assert.True(t, factors.FactorFor("OH").Equal(decimal.NewFromInt(1)))
	assert.True(t, factors.FactorFor("").Equal(decimal.NewFromInt(1)))
}

func TestAdjacentStatePairKeysAreSorted(t *testing.T) {
	// Lookups sort the two codes before joining, so every key must already
	// be in sorted order or it can never match.
	for key := range DefaultAdjacentStatePairs() {
		assert.Len(t, key, 5)
		assert.Less(t, key[:2], key[3:], "key %q is not sorted", key)
	}
}

func TestIRMAABracketsAscending(t *testing.T) {
	brackets := DefaultIRMAABrackets()

	for i := 1; i < len(brackets); i++ {
		assert.True(t, brackets[i].IncomeThresholdSingle.GreaterThan(brackets[i-1].IncomeThresholdSingle))
		assert.True(t, brackets[i].IncomeThresholdJoint.GreaterThan(brackets[i-1].IncomeThresholdJoint))
		assert.True(t, brackets[i].PartBMonthlySurcharge.GreaterThan(brackets[i-1].PartBMonthlySurcharge))
	}
}
