package calculation

import (
	"context"
	"fmt"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// SLCSPResult is the benchmark premium used to size premium tax credits: the
// second-lowest-cost silver plan for the household's rating area and ages.
type SLCSPResult struct {
	MonthlyPremium decimal.Decimal `json:"monthlyPremium"`
	IsReal         bool            `json:"isReal"`
	Source         string          `json:"source"`
	PlanName       string          `json:"planName,omitempty"`
}

// BenchmarkSource provides SLCSP premiums. The production implementation
// proxies the marketplace API and lives outside this module; the engine only
// depends on this interface and always has the estimator to fall back on.
type BenchmarkSource interface {
	GetSLCSP(ctx context.Context, state, zip string, ages []int) (*SLCSPResult, error)
}

// EstimatedBenchmarkSource derives a heuristic SLCSP from the age-rating
// curve and state cost factors. It never fails and marks results estimated.
type EstimatedBenchmarkSource struct {
	AgeRating  domain.AgeRatingCurve
	StateCosts domain.StateCostFactors

	// SilverBasePremium is the age-21 single-state silver premium the curve
	// scales from.
	SilverBasePremium decimal.Decimal
}

// NewEstimatedBenchmarkSource creates the built-in estimator.
func NewEstimatedBenchmarkSource(tables *domain.ReferenceTables) *EstimatedBenchmarkSource {
	return &EstimatedBenchmarkSource{
		AgeRating:         tables.AgeRating,
		StateCosts:        tables.StateCosts,
		SilverBasePremium: decimal.NewFromInt(350),
	}
}

// GetSLCSP estimates the household benchmark premium by summing per-member
// age-rated premiums and applying the state factor.
func (s *EstimatedBenchmarkSource) GetSLCSP(ctx context.Context, state, zip string, ages []int) (*SLCSPResult, error) {
	total := decimal.Zero
	for _, age := range ages {
		total = total.Add(s.SilverBasePremium.Mul(s.AgeRating.FactorFor(age)))
	}
	if len(ages) == 0 {
		total = s.SilverBasePremium
	}
	total = total.Mul(s.StateCosts.FactorFor(state))

	return &SLCSPResult{
		MonthlyPremium: total.Round(2),
		IsReal:         false,
		Source:         fmt.Sprintf("estimated (%s age curve)", sourceLabel(state)),
	}, nil
}

func sourceLabel(state string) string {
	if state == "" {
		return "national"
	}
	return state
}
