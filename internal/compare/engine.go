package compare

import (
	"context"
	"fmt"

	"github.com/coverscope/coverscope/internal/calculation"
	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult pairs two analyses of variant households and the cost
// deltas between them.
type ComparisonResult struct {
	BaseName        string                          `json:"baseName"`
	VariantName     string                          `json:"variantName"`
	Base            *domain.InsuranceRecommendation `json:"base"`
	Variant         *domain.InsuranceRecommendation `json:"variant"`
	MonthlyLowDelta decimal.Decimal                 `json:"monthlyLowDelta"`
	MonthlyHighDelta decimal.Decimal                `json:"monthlyHighDelta"`
	SubsidyDelta    decimal.Decimal                 `json:"subsidyDelta"`
	Narrative       []string                        `json:"narrative"`
}

// Engine runs paired analyses for what-if comparisons.
type Engine struct {
	Analysis *calculation.Engine
}

// NewEngine creates a comparison engine around an analysis engine.
func NewEngine(analysis *calculation.Engine) *Engine {
	return &Engine{Analysis: analysis}
}

// Compare analyzes both households and summarizes the differences.
func (e *Engine) Compare(ctx context.Context, baseName string, base *domain.HouseholdProfile, variantName string, variant *domain.HouseholdProfile) *ComparisonResult {
	baseRec := e.Analysis.AnalyzeInsurance(ctx, base)
	variantRec := e.Analysis.AnalyzeInsurance(ctx, variant)

	result := &ComparisonResult{
		BaseName:         baseName,
		VariantName:      variantName,
		Base:             baseRec,
		Variant:          variantRec,
		MonthlyLowDelta:  variantRec.MonthlyCost.Low.Sub(baseRec.MonthlyCost.Low).Round(2),
		MonthlyHighDelta: variantRec.MonthlyCost.High.Sub(baseRec.MonthlyCost.High).Round(2),
	}

	if baseRec.Subsidy != nil && variantRec.Subsidy != nil {
		result.SubsidyDelta = variantRec.Subsidy.MonthlySubsidy.Sub(baseRec.Subsidy.MonthlySubsidy).Round(2)
	}

	result.Narrative = e.narrate(result)
	return result
}

func (e *Engine) narrate(result *ComparisonResult) []string {
	narrative := []string{}

	if result.Base.PlanType != result.Variant.PlanType {
		narrative = append(narrative, fmt.Sprintf("The recommended plan changes from %s to %s",
			result.Base.PlanType, result.Variant.PlanType))
	}

	switch {
	case result.MonthlyLowDelta.GreaterThan(decimal.Zero):
		narrative = append(narrative, fmt.Sprintf("%s costs about $%s more per month at the low end",
			result.VariantName, result.MonthlyLowDelta.Round(0)))
	case result.MonthlyLowDelta.LessThan(decimal.Zero):
		narrative = append(narrative, fmt.Sprintf("%s saves about $%s per month at the low end",
			result.VariantName, result.MonthlyLowDelta.Neg().Round(0)))
	default:
		narrative = append(narrative, "Low-end monthly costs are unchanged")
	}

	if !result.SubsidyDelta.IsZero() {
		direction := "raises"
		amount := result.SubsidyDelta
		if amount.LessThan(decimal.Zero) {
			direction = "lowers"
			amount = amount.Neg()
		}
		narrative = append(narrative, fmt.Sprintf("The change %s the monthly subsidy by about $%s", direction, amount.Round(0)))
	}

	if delta := result.Variant.CoverageScore - result.Base.CoverageScore; delta != 0 {
		narrative = append(narrative, fmt.Sprintf("Network coverage score moves from %d to %d",
			result.Base.CoverageScore, result.Variant.CoverageScore))
	}

	return narrative
}
