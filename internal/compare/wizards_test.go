package compare

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/calculation"
	"github.com/coverscope/coverscope/internal/domain"
)

func TestJobChangeWizardRun(t *testing.T) {
	wizard := NewJobChangeWizard(calculation.NewEngine())
	income := decimal.NewFromInt(55000)
	household := &domain.HouseholdProfile{
		AdultAges:            []int{38, 36},
		ChildAges:            []int{5},
		AnnualIncome:         &income,
		HasEmployerInsurance: true,
		Residences: []domain.Residence{
			{State: "CA", ZipCode: "94110", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	separation := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	plan := wizard.Run(context.Background(), JobChangeInput{
		Household:      household,
		SeparationDate: separation,
		EvaluationDate: separation.AddDate(0, 0, 10),
		CurrentPremium: decimal.NewFromInt(650),
	})
	require.NotNil(t, plan)

	require.NotNil(t, plan.SEP)
	assert.Equal(t, domain.SEPJobChange, plan.SEP.Reason)
	assert.True(t, plan.SEP.IsActive)
	assert.Equal(t, 50, plan.SEP.DaysRemaining)

	// COBRA at the statutory 102% load.
	assert.True(t, plan.COBRAMonthly.Equal(decimal.NewFromInt(663)),
		"cobra = %s", plan.COBRAMonthly)

	require.NotNil(t, plan.WithEmployer)
	require.NotNil(t, plan.Marketplace)
	assert.True(t, plan.WithEmployer.MonthlyCost.IsValid())
	assert.True(t, plan.Marketplace.MonthlyCost.IsValid())
	assert.Nil(t, plan.Marketplace.Employer, "marketplace leg drops the employer flag")
	assert.Nil(t, plan.IncomeAnalysis, "no projected income given")
	assert.NotEmpty(t, plan.Recommendation)
}

func TestJobChangeWizardWithIncomeDrop(t *testing.T) {
	wizard := NewJobChangeWizard(calculation.NewEngine())
	income := decimal.NewFromInt(80000)
	household := &domain.HouseholdProfile{
		AdultAges:            []int{45},
		AnnualIncome:         &income,
		HasEmployerInsurance: true,
		Residences: []domain.Residence{
			{State: "TX", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	projected := decimal.NewFromInt(35000)
	separation := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	plan := wizard.Run(context.Background(), JobChangeInput{
		Household:       household,
		SeparationDate:  separation,
		EvaluationDate:  separation,
		CurrentPremium:  decimal.NewFromInt(500),
		ProjectedIncome: &projected,
		MonthsRemaining: 7,
	})

	require.NotNil(t, plan.IncomeAnalysis)
	assert.True(t, plan.IncomeAnalysis.FPLPercentAfter.LessThan(plan.IncomeAnalysis.FPLPercentBefore))
}

func TestMedicareTransitionWizardRun(t *testing.T) {
	wizard := NewMedicareTransitionWizard(calculation.NewEngine())
	income := decimal.NewFromInt(50000)
	household := &domain.HouseholdProfile{
		AdultAges:    []int{64},
		AnnualIncome: &income,
		Residences: []domain.Residence{
			{State: "CA", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	evaluated := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	plan := wizard.Run(context.Background(), MedicareTransitionInput{
		Household:      household,
		BirthDate:      time.Date(1961, 7, 1, 0, 0, 0, 0, time.UTC),
		EvaluationDate: evaluated,
	})
	require.NotNil(t, plan)

	require.NotEmpty(t, plan.Transitions)
	assert.Equal(t, 65, plan.Transitions[0].MilestoneAge)
	require.NotNil(t, plan.CurrentCoverage)
	require.NotEmpty(t, plan.Recommendation)
	assert.Contains(t, plan.Recommendation[0], "initial enrollment",
		"the first line points at the enrollment window")
}

func TestMedicareTransitionWizardNoMilestonesLeft(t *testing.T) {
	wizard := NewMedicareTransitionWizard(calculation.NewEngine())
	household := &domain.HouseholdProfile{
		AdultAges: []int{80},
		Residences: []domain.Residence{
			{State: "FL", IsPrimary: true, MonthsPerYear: 12},
		},
	}

	plan := wizard.Run(context.Background(), MedicareTransitionInput{
		Household:      household,
		BirthDate:      time.Date(1946, 1, 1, 0, 0, 0, 0, time.UTC),
		EvaluationDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Empty(t, plan.Transitions)
	assert.NotEmpty(t, plan.Recommendation, "still advises revisiting later")
}
