package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/domain"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempYAML(t, `
household:
  adult_ages: [42, 40]
  child_ages: [12, 9]
  tobacco_use: [false, false]
  annual_income: 65000
  residences:
    - state: CA
      zip: "94110"
      primary: true
      months_per_year: 8
    - state: NV
      months_per_year: 4
  health:
    visit_frequency: occasional
    chronic_conditions: [asthma]
options:
  projection_years: 15
  risk_seed: 42
`)

	input, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []int{42, 40}, input.Household.AdultAges)
	assert.Equal(t, []int{12, 9}, input.Household.ChildAges)
	assert.Equal(t, "CA", input.Household.PrimaryState())
	assert.Equal(t, "94110", input.Household.PrimaryZip())
	require.NotNil(t, input.Household.AnnualIncome)
	assert.True(t, input.Household.AnnualIncome.Equal(decimal.NewFromInt(65000)))
	require.NotNil(t, input.Household.Health)
	assert.Equal(t, domain.VisitOccasional, input.Household.Health.VisitFrequency)
	assert.Equal(t, 15, input.Options.ProjectionYears)
	assert.Equal(t, int64(42), input.Options.RiskSeed)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("/nonexistent/input.yaml")
	assert.Error(t, err)
}

func TestLoadFromFileBadYAML(t *testing.T) {
	path := writeTempYAML(t, "household: [what")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		input   *AnalysisInput
		wantErr string
	}{
		{
			name:    "nil household",
			input:   &AnalysisInput{},
			wantErr: "household is required",
		},
		{
			name: "adult too young",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges: []int{15},
			}},
			wantErr: "list members under 18 as children",
		},
		{
			name: "adult age out of range",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges: []int{130},
			}},
			wantErr: "invalid age",
		},
		{
			name: "child too old",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges: []int{40},
				ChildAges: []int{26},
			}},
			wantErr: "age off at 26",
		},
		{
			name: "too many tobacco flags",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges:  []int{40},
				TobaccoUse: []bool{true, false},
			}},
			wantErr: "tobacco flags",
		},
		{
			name: "residence missing state",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges:  []int{40},
				Residences: []domain.Residence{{MonthsPerYear: 12}},
			}},
			wantErr: "missing a state",
		},
		{
			name: "residence months exceed a year",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges: []int{40},
				Residences: []domain.Residence{
					{State: "CA", MonthsPerYear: 8},
					{State: "NV", MonthsPerYear: 6},
				},
			}},
			wantErr: "must not exceed 12",
		},
		{
			name: "two primary residences",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges: []int{40},
				Residences: []domain.Residence{
					{State: "CA", IsPrimary: true, MonthsPerYear: 6},
					{State: "NV", IsPrimary: true, MonthsPerYear: 6},
				},
			}},
			wantErr: "one residence can be primary",
		},
		{
			name: "negative income",
			input: &AnalysisInput{Household: &domain.HouseholdProfile{
				AdultAges:    []int{40},
				AnnualIncome: &negative,
			}},
			wantErr: "income cannot be negative",
		},
		{
			name: "projection horizon too long",
			input: &AnalysisInput{
				Household: &domain.HouseholdProfile{AdultAges: []int{40}},
				Options:   RunOptions{ProjectionYears: 61},
			},
			wantErr: "between 0 and 60",
		},
		{
			name: "valid minimal input",
			input: &AnalysisInput{
				Household: &domain.HouseholdProfile{AdultAges: []int{40}},
			},
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateInput(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
