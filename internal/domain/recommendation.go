package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanType tags the recommended plan family. The cost/reasoning strategy
// table in the calculation package is keyed on this type.
type PlanType string

const (
	PlanMedicareFamily PlanType = "medicare_family"
	PlanMixedHousehold PlanType = "mixed_household"
	PlanFamilyPPO      PlanType = "family_ppo"
	PlanIndividualPPO  PlanType = "individual_ppo"
	PlanMarketplace    PlanType = "marketplace"
)

// CostRange is a monthly {low, high} premium estimate. Invariant: both values
// are non-negative and Low <= High.
type CostRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// IsValid reports whether the range satisfies its invariant.
func (cr CostRange) IsValid() bool {
	return !cr.Low.IsNegative() && cr.Low.LessThanOrEqual(cr.High)
}

// SubsidySource labels where the benchmark premium came from.
type SubsidySource string

const (
	SubsidySourceReal      SubsidySource = "real"
	SubsidySourceEstimated SubsidySource = "estimated"
)

// SubsidyAnalysis is the outcome of the ACA subsidy/Medicaid eligibility
// state machine keyed on FPL percentage. Medicaid eligibility and subsidy
// eligibility are mutually exclusive.
type SubsidyAnalysis struct {
	MedicaidEligible     bool            `json:"medicaidEligible"`
	SubsidyEligible      bool            `json:"subsidyEligible"`
	MonthlySubsidy       decimal.Decimal `json:"monthlySubsidy"`
	FPLPercentage        decimal.Decimal `json:"fplPercentage"`
	BenchmarkPremium     decimal.Decimal `json:"benchmarkPremium"`
	ExpectedContribution decimal.Decimal `json:"expectedContributionPct"` // % of income
	Source               SubsidySource   `json:"source"`
	IsRealSLCSP          bool            `json:"isRealSlcsp"`
	Notes                []string        `json:"notes,omitempty"`
}

// EmployerComparison weighs employer-sponsored coverage against post-subsidy
// marketplace coverage.
type EmployerComparison struct {
	Recommendation      string          `json:"recommendation"` // keep_employer | switch_marketplace
	EmployerNetCost     decimal.Decimal `json:"employerNetCost"`
	MarketplaceNetCost  decimal.Decimal `json:"marketplaceNetCost"`
	MonthlySavings      decimal.Decimal `json:"monthlySavings"`
	ActionItems         []string        `json:"actionItems"`
}

// RiskLevel is the 5-level ordinal used by add-on scoring and the
// income-volatility analyzer.
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

// AddOnCategory is one of the eight optional coverage lines the actuarial
// engine scores.
type AddOnCategory string

const (
	AddOnDental           AddOnCategory = "dental"
	AddOnVision           AddOnCategory = "vision"
	AddOnAccident         AddOnCategory = "accident"
	AddOnCriticalIllness  AddOnCategory = "critical_illness"
	AddOnHospitalIndemnity AddOnCategory = "hospital_indemnity"
	AddOnDisability       AddOnCategory = "disability"
	AddOnLongTermCare     AddOnCategory = "long_term_care"
	AddOnLife             AddOnCategory = "life"
)

// AddOnPriority buckets a probability score: >=75 high, 50-74 medium,
// 25-49 low, below 25 excluded from the filtered list.
type AddOnPriority string

const (
	PriorityHigh   AddOnPriority = "high"
	PriorityMedium AddOnPriority = "medium"
	PriorityLow    AddOnPriority = "low"
	PriorityNone   AddOnPriority = "none"
)

// AddOnRecommendation scores one coverage category for the household.
// The household probability is the maximum across members, not the sum.
type AddOnRecommendation struct {
	Category         AddOnCategory   `json:"category"`
	ProbabilityScore int             `json:"probabilityScore"` // 0-100
	RiskLevel        RiskLevel       `json:"riskLevel"`
	CostMultiplier   decimal.Decimal `json:"costMultiplier"` // >= 1
	UtilizationRate  decimal.Decimal `json:"utilizationRate"` // 0..1
	Priority         AddOnPriority   `json:"priority"`
	EstimatedMonthlyCost decimal.Decimal `json:"estimatedMonthlyCost"`
	Reasons          []string        `json:"reasons"`
}

// AddOnAnalysis is the full actuarial result set across categories.
type AddOnAnalysis struct {
	Recommended       []AddOnRecommendation `json:"recommended"` // priority >= low, sorted
	All               []AddOnRecommendation `json:"all"`
	HouseholdMonthlyCost decimal.Decimal    `json:"householdMonthlyCost"` // family discount applied
}

// TransitionEvent annotates a milestone age inside a projection year.
type TransitionEvent struct {
	Age         int      `json:"age"`
	Event       string   `json:"event"`
	Impact      string   `json:"impact"`
	Urgency     string   `json:"urgency"`
	Actions     []string `json:"actions,omitempty"`
}

// YearProjection is one row of a multi-year cost projection.
type YearProjection struct {
	Year           int              `json:"year"`
	Age            int              `json:"age"`
	Premium        decimal.Decimal  `json:"premium"`
	MedicalCost    decimal.Decimal  `json:"medicalCost"`
	OutOfPocket    decimal.Decimal  `json:"outOfPocket"`
	CumulativeCost decimal.Decimal  `json:"cumulativeCost"`
	ConfidenceLow  decimal.Decimal  `json:"confidenceLow"`  // p10
	ConfidenceMid  decimal.Decimal  `json:"confidenceMid"`  // p50
	ConfidenceHigh decimal.Decimal  `json:"confidenceHigh"` // p90
	Transition     *TransitionEvent `json:"transition,omitempty"`
}

// LifetimeProjection is an ordered sequence of yearly projections.
type LifetimeProjection struct {
	StartAge       int              `json:"startAge"`
	Years          []YearProjection `json:"years"`
	TotalProjected decimal.Decimal  `json:"totalProjected"`
}

// MonteCarloResult summarizes the simulated annual out-of-pocket spend
// distribution. Percentiles are monotonically non-decreasing by rank.
type MonteCarloResult struct {
	Median                decimal.Decimal            `json:"median"`
	Mean                  decimal.Decimal            `json:"mean"`
	StdDev                decimal.Decimal            `json:"stdDev"`
	Percentiles           map[string]decimal.Decimal `json:"percentiles"` // "10th".."99th"
	ProbExceedDeductible  decimal.Decimal            `json:"probabilityOfExceedingDeductible"`
	ProbHitOOPMax         decimal.Decimal            `json:"probabilityOfHittingOopMax"`
	ExpectedShortfall     decimal.Decimal            `json:"expectedValueAtRisk"` // mean of worst 5%
	SimulationCount       int                        `json:"simulationCount"`
}

// SEPReason enumerates qualifying life events.
type SEPReason string

const (
	SEPLossOfCoverage SEPReason = "loss_of_coverage"
	SEPMoved          SEPReason = "moved"
	SEPMarriage       SEPReason = "marriage"
	SEPDivorce        SEPReason = "divorce"
	SEPBirthAdoption  SEPReason = "birth_adoption"
	SEPJobChange      SEPReason = "job_change"
	SEPIncomeChange   SEPReason = "income_change"
	SEPOther          SEPReason = "other"
)

// SEPUrgency tiers days-remaining into an action urgency.
type SEPUrgency string

const (
	SEPUrgencyLow      SEPUrgency = "low"
	SEPUrgencyModerate SEPUrgency = "moderate"
	SEPUrgencyHigh     SEPUrgency = "high"
	SEPUrgencyCritical SEPUrgency = "critical"
)

// SpecialEnrollmentPeriod is immutable once computed from a life-event date
// and an evaluation date.
type SpecialEnrollmentPeriod struct {
	Reason                SEPReason  `json:"reason"`
	EventDate             time.Time  `json:"eventDate"`
	WindowStart           time.Time  `json:"windowStart"`
	WindowEnd             time.Time  `json:"windowEnd"`
	CoverageEffectiveDate time.Time  `json:"coverageEffectiveDate"`
	DaysRemaining         int        `json:"daysRemaining"` // negative once expired
	IsActive              bool       `json:"isActive"`
	Urgency               SEPUrgency `json:"urgency"`
	RequiredDocuments     []string   `json:"requiredDocuments"`
}

// AgeTransition is one upcoming milestone for one household member.
type AgeTransition struct {
	MilestoneAge int       `json:"milestoneAge"`
	Date         time.Time `json:"date"`
	DaysUntil    int       `json:"daysUntil"`
	Event        string    `json:"event"`
	Impacts      []string  `json:"impacts"`
	Actions      []string  `json:"actions"`
	Urgency      SEPUrgency `json:"urgency"`
}

// IncomeVolatilityAnalysis quantifies mid-year income-change reconciliation
// risk for an existing subsidy.
type IncomeVolatilityAnalysis struct {
	FPLPercentBefore    decimal.Decimal `json:"fplPercentBefore"`
	FPLPercentAfter     decimal.Decimal `json:"fplPercentAfter"`
	PercentChange       decimal.Decimal `json:"percentChange"`
	MedicaidBefore      bool            `json:"medicaidBefore"`
	MedicaidAfter       bool            `json:"medicaidAfter"`
	SubsidyBefore       bool            `json:"subsidyBefore"`
	SubsidyAfter        bool            `json:"subsidyAfter"`
	CrossedThreshold    bool            `json:"crossedThreshold"`
	EstimatedImpact     decimal.Decimal `json:"estimatedReconciliationImpact"`
	RiskLevel           RiskLevel       `json:"riskLevel"`
	Recommendations     []string        `json:"recommendations"`
	Warnings            []string        `json:"warnings,omitempty"`
}

// AlternativeOption is one of the 1-3 alternatives a generator emits
// alongside its primary recommendation.
type AlternativeOption struct {
	Name      string    `json:"name"`
	PlanType  PlanType  `json:"planType"`
	CostRange CostRange `json:"costRange"`
	Pros      []string  `json:"pros"`
	Cons      []string  `json:"cons"`
}

// InsuranceRecommendation is the aggregate root the orchestrator builds
// incrementally. Enrichment steps may attach or omit a sub-analysis but never
// remove a previously attached one.
type InsuranceRecommendation struct {
	PlanType             PlanType            `json:"planType"`
	HouseholdDescription string              `json:"householdDescription"`
	CoverageScore        int                 `json:"coverageScore"` // 0-100
	MonthlyCost          CostRange           `json:"monthlyCost"`
	Reasoning            []string            `json:"reasoning"`
	ActionItems          []string            `json:"actionItems"`
	Alternatives         []AlternativeOption `json:"alternatives,omitempty"`

	Subsidy     *SubsidyAnalysis    `json:"subsidy,omitempty"`
	Employer    *EmployerComparison `json:"employerComparison,omitempty"`
	AddOns      *AddOnAnalysis      `json:"addOns,omitempty"`
	Projection  *LifetimeProjection `json:"projection,omitempty"`
	RiskProfile *MonteCarloResult   `json:"riskProfile,omitempty"`
}
