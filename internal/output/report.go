package output

import (
	"fmt"
	"strings"

	"github.com/coverscope/coverscope/internal/compare"
	"github.com/coverscope/coverscope/internal/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// FormatJSON renders any result aggregate as indented JSON. The field names
// and nesting of the recommendation are a stable contract with the HTTP/UI
// layer, so this is a plain marshal with no reshaping.
func FormatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

// FormatRecommendation renders a console report for one analysis.
func FormatRecommendation(rec *domain.InsuranceRecommendation) string {
	var b strings.Builder

	b.WriteString("INSURANCE RECOMMENDATION\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Household:       %s\n", rec.HouseholdDescription)
	fmt.Fprintf(&b, "Recommended:     %s\n", rec.PlanType)
	fmt.Fprintf(&b, "Coverage score:  %d/100\n", rec.CoverageScore)
	fmt.Fprintf(&b, "Monthly cost:    $%s - $%s\n\n", rec.MonthlyCost.Low.Round(0), rec.MonthlyCost.High.Round(0))

	writeList(&b, "Why", rec.Reasoning)
	writeList(&b, "Next steps", rec.ActionItems)

	if rec.Subsidy != nil {
		b.WriteString("Subsidy\n-------\n")
		switch {
		case rec.Subsidy.MedicaidEligible:
			b.WriteString("  Medicaid-eligible household\n")
		case rec.Subsidy.SubsidyEligible:
			fmt.Fprintf(&b, "  Premium tax credit: $%s/month (%s%% FPL, benchmark $%s, %s)\n",
				rec.Subsidy.MonthlySubsidy.Round(0), rec.Subsidy.FPLPercentage,
				rec.Subsidy.BenchmarkPremium.Round(0), rec.Subsidy.Source)
		default:
			fmt.Fprintf(&b, "  No subsidy (%s%% FPL)\n", rec.Subsidy.FPLPercentage)
		}
		b.WriteString("\n")
	}

	if rec.Employer != nil {
		b.WriteString("Employer comparison\n-------------------\n")
		fmt.Fprintf(&b, "  %s (employer $%s vs marketplace $%s/month)\n\n",
			rec.Employer.Recommendation, rec.Employer.EmployerNetCost.Round(0), rec.Employer.MarketplaceNetCost.Round(0))
	}

	if rec.AddOns != nil && len(rec.AddOns.Recommended) > 0 {
		b.WriteString("Add-on coverage\n---------------\n")
		for _, addOn := range rec.AddOns.Recommended {
			fmt.Fprintf(&b, "  %-18s %-6s score %3d  ~$%s/month\n",
				addOn.Category, addOn.Priority, addOn.ProbabilityScore, addOn.EstimatedMonthlyCost.Round(0))
		}
		fmt.Fprintf(&b, "  Household total (with family discount): $%s/month\n\n", rec.AddOns.HouseholdMonthlyCost.Round(0))
	}

	if rec.Projection != nil && len(rec.Projection.Years) > 0 {
		b.WriteString("Projection\n----------\n")
		fmt.Fprintf(&b, "  %d-year projected total: $%s\n", len(rec.Projection.Years), rec.Projection.TotalProjected.Round(0))
		for _, year := range rec.Projection.Years {
			if year.Transition != nil {
				fmt.Fprintf(&b, "  Age %d: %s\n", year.Transition.Age, year.Transition.Event)
			}
		}
		b.WriteString("\n")
	}

	if rec.RiskProfile != nil {
		b.WriteString("Out-of-pocket risk\n------------------\n")
		fmt.Fprintf(&b, "  Median $%s, p90 $%s, chance of exceeding deductible %s%%\n\n",
			rec.RiskProfile.Median.Round(0),
			rec.RiskProfile.Percentiles["90th"].Round(0),
			rec.RiskProfile.ProbExceedDeductible.Mul(decimal.NewFromInt(100)).Round(0))
	}

	if len(rec.Alternatives) > 0 {
		b.WriteString("Alternatives\n------------\n")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(&b, "  %s ($%s - $%s/month)\n", alt.Name, alt.CostRange.Low.Round(0), alt.CostRange.High.Round(0))
		}
	}

	return b.String()
}

// FormatComparison renders a console report for a two-way comparison.
func FormatComparison(result *compare.ComparisonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COMPARISON: %s vs %s\n", result.BaseName, result.VariantName)
	b.WriteString("===========\n\n")
	fmt.Fprintf(&b, "%-22s %-18s %-18s\n", "", result.BaseName, result.VariantName)
	fmt.Fprintf(&b, "%-22s %-18s %-18s\n", "Plan",
		string(result.Base.PlanType), string(result.Variant.PlanType))
	fmt.Fprintf(&b, "%-22s $%-17s $%-17s\n", "Monthly low",
		result.Base.MonthlyCost.Low.Round(0), result.Variant.MonthlyCost.Low.Round(0))
	fmt.Fprintf(&b, "%-22s $%-17s $%-17s\n", "Monthly high",
		result.Base.MonthlyCost.High.Round(0), result.Variant.MonthlyCost.High.Round(0))
	fmt.Fprintf(&b, "%-22s %-18d %-18d\n", "Coverage score",
		result.Base.CoverageScore, result.Variant.CoverageScore)
	b.WriteString("\n")
	writeList(&b, "Summary", result.Narrative)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}
