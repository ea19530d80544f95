package domain

import (
	"github.com/shopspring/decimal"
)

// HouseholdProfile is the validated input for a single analysis request.
// Upstream validation (HTTP layer) is responsible for shape; everything in
// this package must still behave sensibly on a minimal or empty profile.
type HouseholdProfile struct {
	AdultAges    []int       `yaml:"adult_ages" json:"adultAges"`
	ChildAges    []int       `yaml:"child_ages" json:"childAges"`
	TobaccoUse   []bool      `yaml:"tobacco_use" json:"tobaccoUse"` // parallel to AdultAges
	Residences   []Residence `yaml:"residences" json:"residences"`
	MedicareFlag bool        `yaml:"medicare_eligible" json:"medicareEligible"`

	// Income may be exact or a bracket; exact wins when both are present.
	AnnualIncome  *decimal.Decimal `yaml:"annual_income" json:"annualIncome,omitempty"`
	IncomeBracket IncomeBracket    `yaml:"income_bracket" json:"incomeBracket,omitempty"`

	HasEmployerInsurance bool             `yaml:"has_employer_insurance" json:"hasEmployerInsurance"`
	EmployerContribution *decimal.Decimal `yaml:"employer_contribution" json:"employerContribution,omitempty"` // monthly

	BudgetBracket BudgetBracket  `yaml:"budget_bracket" json:"budgetBracket,omitempty"`
	Health        *HealthProfile `yaml:"health" json:"health,omitempty"`
}

// Residence is one home in a multi-residence household.
type Residence struct {
	State         string `yaml:"state" json:"state"`
	ZipCode       string `yaml:"zip" json:"zipCode"`
	IsPrimary     bool   `yaml:"primary" json:"isPrimary"`
	MonthsPerYear int    `yaml:"months_per_year" json:"monthsPerYear"` // residences must sum to <= 12
}

// HealthProfile captures the inputs the risk simulator draws on.
type HealthProfile struct {
	ChronicConditions  []string           `yaml:"chronic_conditions" json:"chronicConditions"`
	VisitFrequency     VisitFrequency     `yaml:"visit_frequency" json:"visitFrequency"`
	ERVisitsPerYear    int                `yaml:"er_visits_per_year" json:"erVisitsPerYear"`
	MedicationCostTier MedicationCostTier `yaml:"medication_cost_tier" json:"medicationCostTier"`
}

// VisitFrequency buckets expected routine utilization.
type VisitFrequency string

const (
	VisitRare     VisitFrequency = "rare"
	VisitOccasional VisitFrequency = "occasional"
	VisitRegular  VisitFrequency = "regular"
	VisitFrequent VisitFrequency = "frequent"
)

// MedicationCostTier buckets ongoing prescription spend.
type MedicationCostTier string

const (
	MedTierNone     MedicationCostTier = "none"
	MedTierLow      MedicationCostTier = "low"
	MedTierModerate MedicationCostTier = "moderate"
	MedTierHigh     MedicationCostTier = "high"
	MedTierSpecialty MedicationCostTier = "specialty"
)

// IncomeBracket is the coarse income input used when no exact figure is given.
type IncomeBracket string

const (
	IncomeUnder30K  IncomeBracket = "under_30k"
	Income30to50K   IncomeBracket = "30k_50k"
	Income50to75K   IncomeBracket = "50k_75k"
	Income75to100K  IncomeBracket = "75k_100k"
	Income100to150K IncomeBracket = "100k_150k"
	IncomeOver150K  IncomeBracket = "over_150k"
)

// BudgetBracket is the requested monthly premium budget.
type BudgetBracket string

const (
	BudgetUnder200 BudgetBracket = "under_200"
	Budget200to400 BudgetBracket = "200_400"
	Budget400to700 BudgetBracket = "400_700"
	Budget700to1200 BudgetBracket = "700_1200"
	BudgetOver1200 BudgetBracket = "over_1200"
)

// MemberCount returns the total number of household members.
func (hp *HouseholdProfile) MemberCount() int {
	return len(hp.AdultAges) + len(hp.ChildAges)
}

// AllAges returns adult ages followed by child ages.
func (hp *HouseholdProfile) AllAges() []int {
	ages := make([]int, 0, hp.MemberCount())
	ages = append(ages, hp.AdultAges...)
	ages = append(ages, hp.ChildAges...)
	return ages
}

// States returns the deduplicated residence state codes, preserving first-seen
// order. The coverage scorer requires a deduped set.
func (hp *HouseholdProfile) States() []string {
	seen := make(map[string]bool, len(hp.Residences))
	states := []string{}
	for _, r := range hp.Residences {
		if r.State == "" || seen[r.State] {
			continue
		}
		seen[r.State] = true
		states = append(states, r.State)
	}
	return states
}

// PrimaryState returns the state of the primary residence, falling back to
// the first residence when none is flagged.
func (hp *HouseholdProfile) PrimaryState() string {
	for _, r := range hp.Residences {
		if r.IsPrimary {
			return r.State
		}
	}
	if len(hp.Residences) > 0 {
		return hp.Residences[0].State
	}
	return ""
}

// PrimaryZip returns the ZIP code of the primary residence, if any.
func (hp *HouseholdProfile) PrimaryZip() string {
	for _, r := range hp.Residences {
		if r.IsPrimary {
			return r.ZipCode
		}
	}
	if len(hp.Residences) > 0 {
		return hp.Residences[0].ZipCode
	}
	return ""
}

// EstimatedIncome resolves exact income or the bracket midpoint. Returns
// decimal.Zero when neither is available.
func (hp *HouseholdProfile) EstimatedIncome() decimal.Decimal {
	if hp.AnnualIncome != nil {
		return *hp.AnnualIncome
	}
	midpoints := map[IncomeBracket]int64{
		IncomeUnder30K:  22000,
		Income30to50K:   40000,
		Income50to75K:   62500,
		Income75to100K:  87500,
		Income100to150K: 125000,
		IncomeOver150K:  185000,
	}
	if mid, ok := midpoints[hp.IncomeBracket]; ok {
		return decimal.NewFromInt(mid)
	}
	return decimal.Zero
}

// AllAdultsMedicareAge reports whether every adult is 65 or older. False for a
// household with no adults.
func (hp *HouseholdProfile) AllAdultsMedicareAge() bool {
	if len(hp.AdultAges) == 0 {
		return false
	}
	for _, age := range hp.AdultAges {
		if age < 65 {
			return false
		}
	}
	return true
}

// AnyMedicareEligible reports whether any adult is 65+ or the household
// carries an explicit Medicare-eligibility flag.
func (hp *HouseholdProfile) AnyMedicareEligible() bool {
	if hp.MedicareFlag {
		return true
	}
	for _, age := range hp.AdultAges {
		if age >= 65 {
			return true
		}
	}
	return false
}

// UsesTobacco reports whether any adult has a tobacco flag set.
func (hp *HouseholdProfile) UsesTobacco() bool {
	for _, t := range hp.TobaccoUse {
		if t {
			return true
		}
	}
	return false
}
