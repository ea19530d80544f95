package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/coverscope/coverscope/internal/calculation"
	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// JobChangeInput configures the job-change wizard.
type JobChangeInput struct {
	Household        *domain.HouseholdProfile
	SeparationDate   time.Time
	EvaluationDate   time.Time
	CurrentPremium   decimal.Decimal // full monthly premium of the employer plan
	ProjectedIncome  *decimal.Decimal
	MonthsRemaining  int
}

/// JobChangePlan is the wizard output: the enrollment window, the COBRA price,
// both coverage paths, and the recommended one.
type JobChangePlan struct {
	SEP            *domain.SpecialEnrollmentPeriod `json:"specialEnrollmentPeriod"`
	COBRAMonthly   decimal.Decimal                 `json:"cobraMonthly"`
	WithEmployer   *domain.InsuranceRecommendation `json:"withEmployer"`
	Marketplace    *domain.InsuranceRecommendation `json:"marketplace"`
	IncomeAnalysis *domain.IncomeVolatilityAnalysis `json:"incomeAnalysis,omitempty"`
	Recommendation []string                        `json:"recommendation"`
}

// MedicareTransitionInput configures the Medicare-transition wizard.
type MedicareTransitionInput struct {
	Household      *domain.HouseholdProfile
	BirthDate      time.Time
	EvaluationDate time.Time
}

// MedicareTransitionPlan maps the path onto Medicare for a member
// approaching 65.
type MedicareTransitionPlan struct {
	Transitions    []domain.AgeTransition          `json:"transitions"`
	CurrentCoverage *domain.InsuranceRecommendation `json:"currentCoverage"`
	Subsidy        *domain.SubsidyAnalysis         `json:"subsidy,omitempty"`
	Recommendation []string                        `json:"recommendation"`
}

// JobChangeWizard walks a household losing employer coverage through its
// options: the special enrollment window, COBRA continuation, and the
// marketplace with and without the employer plan in the comparison.
type JobChangeWizard struct {
	Analysis *calculation.Engine
	SEP      *calculation.SEPCalculator
	Income   *calculation.IncomeVolatilityAnalyzer
}

// NewJobChangeWizard creates the wizard around an analysis engine.
func NewJobChangeWizard(analysis *calculation.Engine) *JobChangeWizard {
	return &JobChangeWizard{
		Analysis: analysis,
		SEP:      calculation.NewSEPCalculator(),
		Income:   calculation.NewIncomeVolatilityAnalyzerWithTables(analysis.Tables),
	}
}

// Run executes the wizard flow.
func (w *JobChangeWizard) Run(ctx context.Context, input JobChangeInput) *JobChangePlan {
	plan := &JobChangePlan{
		SEP:          w.SEP.Calculate(domain.SEPJobChange, input.SeparationDate, input.EvaluationDate),
		COBRAMonthly: calculation.COBRAMonthlyPremium(input.CurrentPremium).Round(2),
	}

	// Analyze both sides of the decision: keeping employer coverage in the
	// picture vs shopping the marketplace as uninsured.
	withEmployer := cloneProfile(input.Household)
	withEmployer.HasEmployerInsurance = true
	plan.WithEmployer = w.Analysis.AnalyzeInsurance(ctx, withEmployer)

	marketplace := cloneProfile(input.Household)
	marketplace.HasEmployerInsurance = false
	marketplace.EmployerContribution = nil
	plan.Marketplace = w.Analysis.AnalyzeInsurance(ctx, marketplace)

	if input.ProjectedIncome != nil && input.Household != nil {
		subsidy := decimal.Zero
		if plan.Marketplace.Subsidy != nil {
			subsidy = plan.Marketplace.Subsidy.MonthlySubsidy
		}
		plan.IncomeAnalysis = w.Income.Analyze(calculation.IncomeVolatilityInput{
			CurrentIncome:   input.Household.EstimatedIncome(),
			ProjectedIncome: *input.ProjectedIncome,
			HouseholdSize:   input.Household.MemberCount(),
			State:           input.Household.PrimaryState(),
			CurrentPremium:  input.CurrentPremium,
			CurrentSubsidy:  subsidy,
			MonthsRemaining: input.MonthsRemaining,
		})
	}

	plan.Recommendation = w.recommend(plan)
	return plan
}

func (w *JobChangeWizard) recommend(plan *JobChangePlan) []string {
	recommendation := []string{}

	if plan.SEP.IsActive {
		recommendation = append(recommendation,
			fmt.Sprintf("The special enrollment window is open for %d more days (closes %s)",
				plan.SEP.DaysRemaining, plan.SEP.WindowEnd.Format("2006-01-02")))
	} else {
		recommendation = append(recommendation,
			"The special enrollment window is not active; the next chance is open enrollment unless another qualifying event occurs")
	}

	marketplaceNet := plan.Marketplace.MonthlyCost.Low
	if plan.Marketplace.Subsidy != nil {
		marketplaceNet = marketplaceNet.Sub(plan.Marketplace.Subsidy.MonthlySubsidy)
		if marketplaceNet.IsNegative() {
			marketplaceNet = decimal.Zero
		}
	}

	if marketplaceNet.LessThan(plan.COBRAMonthly) {
		recommendation = append(recommendation,
			fmt.Sprintf("Marketplace coverage (~$%s/month after subsidy) undercuts COBRA ($%s/month); elect COBRA only to bridge a short gap",
				marketplaceNet.Round(0), plan.COBRAMonthly.Round(0)))
	} else {
		recommendation = append(recommendation,
			fmt.Sprintf("COBRA ($%s/month) is competitive with the marketplace here; it also preserves the current network and deductible progress",
				plan.COBRAMonthly.Round(0)))
	}

	if plan.IncomeAnalysis != nil && len(plan.IncomeAnalysis.Warnings) > 0 {
		recommendation = append(recommendation, plan.IncomeAnalysis.Warnings...)
	}

	return recommendation
}

// MedicareTransitionWizard maps the runway to 65 for the household's oldest
// member: upcoming milestones, what happens to any subsidy, and enrollment
// actions.
type MedicareTransitionWizard struct {
	Analysis    *calculation.Engine
	Transitions *calculation.AgeTransitionAnalyzer
}

// NewMedicareTransitionWizard creates the wizard around an analysis engine.
func NewMedicareTransitionWizard(analysis *calculation.Engine) *MedicareTransitionWizard {
	return &MedicareTransitionWizard{
		Analysis:    analysis,
		Transitions: calculation.NewAgeTransitionAnalyzer(),
	}
}

// Run executes the wizard flow.
func (w *MedicareTransitionWizard) Run(ctx context.Context, input MedicareTransitionInput) *MedicareTransitionPlan {
	plan := &MedicareTransitionPlan{
		Transitions:     w.Transitions.UpcomingTransitions(input.BirthDate, input.EvaluationDate),
		CurrentCoverage: w.Analysis.AnalyzeInsurance(ctx, input.Household),
	}
	if plan.CurrentCoverage != nil {
		plan.Subsidy = plan.CurrentCoverage.Subsidy
	}
	plan.Recommendation = w.recommend(plan)
	return plan
}

func (w *MedicareTransitionWizard) recommend(plan *MedicareTransitionPlan) []string {
	recommendation := []string{}

	for _, transition := range plan.Transitions {
		if transition.MilestoneAge == 65 {
			recommendation = append(recommendation,
				fmt.Sprintf("Medicare initial enrollment opens around %s (%d days out); missing it means lifetime late penalties",
					transition.Date.AddDate(0, -3, 0).Format("2006-01-02"), transition.DaysUntil))
			break
		}
	}
	if len(recommendation) == 0 {
		recommendation = append(recommendation,
			"No Medicare milestone ahead for this member; revisit closer to age 64")
	}

	if plan.Subsidy != nil && plan.Subsidy.SubsidyEligible {
		recommendation = append(recommendation,
			"Current marketplace subsidies end when Medicare eligibility begins; budget for the premium change")
	}

	recommendation = append(recommendation,
		"Compare Medigap plus Part D against Medicare Advantage before the window opens")
	return recommendation
}

// cloneProfile copies a profile shallowly enough for what-if mutation of the
// employer fields.
func cloneProfile(profile *domain.HouseholdProfile) *domain.HouseholdProfile {
	if profile == nil {
		return &domain.HouseholdProfile{}
	}
	clone := *profile
	return &clone
}
