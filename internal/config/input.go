package config

import (
	"fmt"
	"os"

	"github.com/coverscope/coverscope/internal/domain"
	"gopkg.in/yaml.v3"
)

// AnalysisInput is the on-disk analysis request: a household profile plus
// optional run settings.
type AnalysisInput struct {
	Household *domain.HouseholdProfile `yaml:"household" json:"household"`
	Options   RunOptions               `yaml:"options" json:"options"`
}

// RunOptions tune a single analysis run.
type RunOptions struct {
	ProjectionYears int   `yaml:"projection_years" json:"projection_years"`
	RiskSeed        int64 `yaml:"risk_seed" json:"risk_seed"`
}

// InputParser handles parsing of analysis input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an analysis request from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*AnalysisInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input AnalysisInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInput checks structural invariants the engine assumes. The engine
// itself tolerates a minimal household; the parser catches inputs that are
// outright contradictory.
func (ip *InputParser) ValidateInput(input *AnalysisInput) error {
	if input.Household == nil {
		return fmt.Errorf("household is required")
	}
	hh := input.Household

	for i, age := range hh.AdultAges {
		if age < 0 || age > 120 {
			return fmt.Errorf("adult %d has an invalid age %d", i, age)
		}
		if age < 18 {
			return fmt.Errorf("adult %d is %d years old; list members under 18 as children", i, age)
		}
	}
	for i, age := range hh.ChildAges {
		if age < 0 || age >= 26 {
			return fmt.Errorf("child %d has an invalid age %d (dependents age off at 26)", i, age)
		}
	}

	if len(hh.TobaccoUse) > len(hh.AdultAges) {
		return fmt.Errorf("tobacco flags (%d) exceed adult count (%d)", len(hh.TobaccoUse), len(hh.AdultAges))
	}

	totalMonths := 0
	primaries := 0
	for i, r := range hh.Residences {
		if r.State == "" {
			return fmt.Errorf("residence %d is missing a state code", i)
		}
		if r.MonthsPerYear < 0 || r.MonthsPerYear > 12 {
			return fmt.Errorf("residence %d has invalid months per year %d", i, r.MonthsPerYear)
		}
		totalMonths += r.MonthsPerYear
		if r.IsPrimary {
			primaries++
		}
	}
	if totalMonths > 12 {
		return fmt.Errorf("residence months sum to %d; they must not exceed 12", totalMonths)
	}
	if primaries > 1 {
		return fmt.Errorf("only one residence can be primary")
	}

	if hh.AnnualIncome != nil && hh.AnnualIncome.IsNegative() {
		return fmt.Errorf("annual income cannot be negative")
	}
	if hh.EmployerContribution != nil && hh.EmployerContribution.IsNegative() {
		return fmt.Errorf("employer contribution cannot be negative")
	}

	if input.Options.ProjectionYears < 0 || input.Options.ProjectionYears > 60 {
		return fmt.Errorf("projection years must be between 0 and 60")
	}

	return nil
}
