package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/domain"
)

func TestEstimatedBenchmarkNeverFails(t *testing.T) {
	source := NewEstimatedBenchmarkSource(domain.DefaultReferenceTables())

	for _, ages := range [][]int{nil, {}, {21}, {40, 38, 10}, {70}} {
		result, err := source.GetSLCSP(context.Background(), "CA", "94110", ages)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsReal)
		assert.True(t, result.MonthlyPremium.GreaterThan(decimal.Zero))
	}
}

func TestEstimatedBenchmarkAge21Anchor(t *testing.T) {
	// At the age-21 anchor with no state factor, the estimate is exactly the
	// silver base premium.
	source := NewEstimatedBenchmarkSource(domain.DefaultReferenceTables())

	result, err := source.GetSLCSP(context.Background(), "OH", "", []int{21})
	require.NoError(t, err)
	assert.True(t, result.MonthlyPremium.Equal(decimal.NewFromInt(350)),
		"premium = %s", result.MonthlyPremium)
}

func TestEstimatedBenchmarkScalesWithAgeAndState(t *testing.T) {
	source := NewEstimatedBenchmarkSource(domain.DefaultReferenceTables())
	ctx := context.Background()

	young, _ := source.GetSLCSP(ctx, "CA", "", []int{25})
	old, _ := source.GetSLCSP(ctx, "CA", "", []int{64})
	assert.True(t, old.MonthlyPremium.GreaterThan(young.MonthlyPremium))

	cheap, _ := source.GetSLCSP(ctx, "TX", "", []int{40})
	pricey, _ := source.GetSLCSP(ctx, "NY", "", []int{40})
	assert.True(t, pricey.MonthlyPremium.GreaterThan(cheap.MonthlyPremium))
}

func TestEstimatedBenchmarkSumsMembers(t *testing.T) {
	source := NewEstimatedBenchmarkSource(domain.DefaultReferenceTables())
	ctx := context.Background()

	solo, _ := source.GetSLCSP(ctx, "OH", "", []int{40})
	couple, _ := source.GetSLCSP(ctx, "OH", "", []int{40, 40})
	assert.True(t, couple.MonthlyPremium.Equal(solo.MonthlyPremium.Mul(decimal.NewFromInt(2))))
}
