package main

import (
	"fmt"
	"strings"

	"github.com/coverscope/coverscope/internal/compare"
	"github.com/coverscope/coverscope/internal/domain"
)

func formatSEP(sep *domain.SpecialEnrollmentPeriod) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SPECIAL ENROLLMENT PERIOD: %s\n", sep.Reason)
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Event date:         %s\n", sep.EventDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Enrollment window:  %s to %s\n",
		sep.WindowStart.Format("2006-01-02"), sep.WindowEnd.Format("2006-01-02"))
	if sep.IsActive {
		fmt.Fprintf(&b, "Status:             ACTIVE, %d days remaining (urgency: %s)\n",
			sep.DaysRemaining, sep.Urgency)
	} else {
		fmt.Fprintf(&b, "Status:             not active\n")
	}
	fmt.Fprintf(&b, "Coverage effective: %s\n", sep.CoverageEffectiveDate.Format("2006-01-02"))
	if len(sep.RequiredDocuments) > 0 {
		fmt.Fprintln(&b, "Required documents:")
		for _, doc := range sep.RequiredDocuments {
			fmt.Fprintf(&b, "  - %s\n", doc)
		}
	}
	return b.String()
}

func formatTransitions(transitions []domain.AgeTransition) string {
	if len(transitions) == 0 {
		return "No upcoming coverage milestones.\n"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "UPCOMING COVERAGE MILESTONES")
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	for _, t := range transitions {
		fmt.Fprintf(&b, "\nAge %d on %s (%d days, urgency: %s)\n",
			t.MilestoneAge, t.Date.Format("2006-01-02"), t.DaysUntil, t.Urgency)
		fmt.Fprintf(&b, "  %s\n", t.Event)
		for _, action := range t.Actions {
			fmt.Fprintf(&b, "  - %s\n", action)
		}
	}
	return b.String()
}

func formatIncomeChange(analysis *domain.IncomeVolatilityAnalysis) string {
	var b strings.Builder

	fmt.Fprintln(&b, "INCOME CHANGE ANALYSIS")
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Federal poverty level: %s%% -> %s%% (%s%% income change)\n",
		analysis.FPLPercentBefore.Round(0), analysis.FPLPercentAfter.Round(0), analysis.PercentChange.Round(1))
	fmt.Fprintf(&b, "Subsidy eligible:      %t -> %t\n", analysis.SubsidyBefore, analysis.SubsidyAfter)
	fmt.Fprintf(&b, "Medicaid eligible:     %t -> %t\n", analysis.MedicaidBefore, analysis.MedicaidAfter)
	if analysis.CrossedThreshold {
		fmt.Fprintln(&b, "An eligibility threshold was crossed; report this change promptly.")
	}
	fmt.Fprintf(&b, "Estimated reconciliation impact: $%s (risk: %s)\n",
		analysis.EstimatedImpact.Round(0), analysis.RiskLevel)

	for _, warning := range analysis.Warnings {
		fmt.Fprintf(&b, "! %s\n", warning)
	}
	for _, rec := range analysis.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func formatJobChange(plan *compare.JobChangePlan) string {
	var b strings.Builder

	fmt.Fprintln(&b, "JOB CHANGE COVERAGE PLAN")
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	if plan.SEP != nil {
		if plan.SEP.IsActive {
			fmt.Fprintf(&b, "Enrollment window: open until %s (%d days, urgency: %s)\n",
				plan.SEP.WindowEnd.Format("2006-01-02"), plan.SEP.DaysRemaining, plan.SEP.Urgency)
		} else {
			fmt.Fprintln(&b, "Enrollment window: closed")
		}
	}
	fmt.Fprintf(&b, "COBRA continuation: $%s/month\n", plan.COBRAMonthly.Round(0))
	if plan.Marketplace != nil {
		fmt.Fprintf(&b, "Marketplace range:  $%s to $%s/month\n",
			plan.Marketplace.MonthlyCost.Low.Round(0), plan.Marketplace.MonthlyCost.High.Round(0))
		if plan.Marketplace.Subsidy != nil && plan.Marketplace.Subsidy.MonthlySubsidy.IsPositive() {
			fmt.Fprintf(&b, "Estimated subsidy:  $%s/month\n", plan.Marketplace.Subsidy.MonthlySubsidy.Round(0))
		}
	}
	for _, line := range plan.Recommendation {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

func formatMedicarePlan(plan *compare.MedicareTransitionPlan) string {
	var b strings.Builder

	fmt.Fprintln(&b, "MEDICARE TRANSITION PLAN")
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	for _, t := range plan.Transitions {
		fmt.Fprintf(&b, "Age %d on %s (%d days out): %s\n",
			t.MilestoneAge, t.Date.Format("2006-01-02"), t.DaysUntil, t.Event)
	}
	if plan.CurrentCoverage != nil {
		fmt.Fprintf(&b, "Current coverage:  %s ($%s to $%s/month)\n",
			plan.CurrentCoverage.PlanType,
			plan.CurrentCoverage.MonthlyCost.Low.Round(0), plan.CurrentCoverage.MonthlyCost.High.Round(0))
	}
	for _, line := range plan.Recommendation {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}
