package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FPLTable holds Federal Poverty Level amounts by household size. Sizes past
// the largest tabulated entry extrapolate linearly by the per-person
// increment.
type FPLTable struct {
	BaseAmounts        map[int]decimal.Decimal `yaml:"base_amounts" json:"base_amounts"`
	PerAdditionalPerson decimal.Decimal        `yaml:"per_additional_person" json:"per_additional_person"`
}

// AmountFor returns the FPL for a household of the given size. Size is
// clamped to at least one person.
func (t FPLTable) AmountFor(householdSize int) decimal.Decimal {
	if householdSize < 1 {
		householdSize = 1
	}
	if amount, ok := t.BaseAmounts[householdSize]; ok {
		return amount
	}
	maxSize := 0
	for size := range t.BaseAmounts {
		if size > maxSize {
			maxSize = size
		}
	}
	if maxSize == 0 {
		return decimal.Zero
	}
	extra := decimal.NewFromInt(int64(householdSize - maxSize))
	return t.BaseAmounts[maxSize].Add(t.PerAdditionalPerson.Mul(extra))
}

// DefaultFPLTable returns the 2024 federal poverty guidelines (48 contiguous
// states).
func DefaultFPLTable() FPLTable {
	return FPLTable{
		BaseAmounts: map[int]decimal.Decimal{
			1: decimal.NewFromInt(15060),
			2: decimal.NewFromInt(20440),
			3: decimal.NewFromInt(25820),
			4: decimal.NewFromInt(31200),
			5: decimal.NewFromInt(36580),
			6: decimal.NewFromInt(41960),
			7: decimal.NewFromInt(47340),
			8: decimal.NewFromInt(52720),
		},
		PerAdditionalPerson: decimal.NewFromInt(5380),
	}
}

// IRMAABracket is one Medicare income-related premium surcharge tier.
type IRMAABracket struct {
	IncomeThresholdSingle decimal.Decimal `yaml:"income_threshold_single" json:"income_threshold_single"`
	IncomeThresholdJoint  decimal.Decimal `yaml:"income_threshold_joint" json:"income_threshold_joint"`
	PartBMonthlySurcharge decimal.Decimal `yaml:"part_b_monthly_surcharge" json:"part_b_monthly_surcharge"`
}

// DefaultIRMAABrackets returns the 2025 IRMAA tiers (keyed on MAGI from two
// years prior; the engine applies them against current estimated income).
func DefaultIRMAABrackets() []IRMAABracket {
	return []IRMAABracket{
		{
			IncomeThresholdSingle: decimal.NewFromInt(103000),
			IncomeThresholdJoint:  decimal.NewFromInt(206000),
			PartBMonthlySurcharge: decimal.NewFromFloat(69.90),
		},
		{
			IncomeThresholdSingle: decimal.NewFromInt(129000),
			IncomeThresholdJoint:  decimal.NewFromInt(258000),
			PartBMonthlySurcharge: decimal.NewFromFloat(174.70),
		},
		{
			IncomeThresholdSingle: decimal.NewFromInt(161000),
			IncomeThresholdJoint:  decimal.NewFromInt(322000),
			PartBMonthlySurcharge: decimal.NewFromFloat(279.50),
		},
		{
			IncomeThresholdSingle: decimal.NewFromInt(193000),
			IncomeThresholdJoint:  decimal.NewFromInt(386000),
			PartBMonthlySurcharge: decimal.NewFromFloat(384.30),
		},
		{
			IncomeThresholdSingle: decimal.NewFromInt(500000),
			IncomeThresholdJoint:  decimal.NewFromInt(750000),
			PartBMonthlySurcharge: decimal.NewFromFloat(489.10),
		},
	}
}

// AgeRatingCurve maps exact ages to ACA premium rating factors. Ages between
// tabulated points interpolate linearly; ages past the last point clamp.
type AgeRatingCurve struct {
	Points map[int]decimal.Decimal `yaml:"points" json:"points"`
}

// FactorFor returns the rating factor for an age. Negative ages clamp to 0.
func (c AgeRatingCurve) FactorFor(age int) decimal.Decimal {
	if age < 0 {
		age = 0
	}
	if f, ok := c.Points[age]; ok {
		return f
	}
	ages := make([]int, 0, len(c.Points))
	for a := range c.Points {
		ages = append(ages, a)
	}
	if len(ages) == 0 {
		return decimal.NewFromInt(1)
	}
	sort.Ints(ages)
	if age <= ages[0] {
		return c.Points[ages[0]]
	}
	if age >= ages[len(ages)-1] {
		return c.Points[ages[len(ages)-1]]
	}
	for i := 1; i < len(ages); i++ {
		if age < ages[i] {
			lo, hi := ages[i-1], ages[i]
			span := decimal.NewFromInt(int64(hi - lo))
			frac := decimal.NewFromInt(int64(age - lo)).Div(span)
			return c.Points[lo].Add(c.Points[hi].Sub(c.Points[lo]).Mul(frac))
		}
	}
	return c.Points[ages[len(ages)-1]]
}

// DefaultAgeRatingCurve returns the federal standard age curve (3:1 ratio,
// age 21 = 1.000), coarsened to interpolation anchor points.
func DefaultAgeRatingCurve() AgeRatingCurve {
	return AgeRatingCurve{
		Points: map[int]decimal.Decimal{
			0:  decimal.NewFromFloat(0.765),
			14: decimal.NewFromFloat(0.765),
			18: decimal.NewFromFloat(0.897),
			21: decimal.NewFromFloat(1.000),
			25: decimal.NewFromFloat(1.004),
			30: decimal.NewFromFloat(1.135),
			35: decimal.NewFromFloat(1.222),
			40: decimal.NewFromFloat(1.278),
			45: decimal.NewFromFloat(1.444),
			50: decimal.NewFromFloat(1.786),
			55: decimal.NewFromFloat(2.230),
			60: decimal.NewFromFloat(2.714),
			64: decimal.NewFromFloat(3.000),
		},
	}
}

// StateCostFactors is the versioned state -> premium multiplier table.
// Unknown states get 1.0.
type StateCostFactors struct {
	Factors map[string]decimal.Decimal `yaml:"factors" json:"factors"`
}

// FactorFor returns the cost multiplier for a state code.
func (s StateCostFactors) FactorFor(state string) decimal.Decimal {
	if f, ok := s.Factors[state]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

// DefaultStateCostFactors returns the built-in state premium multipliers.
func DefaultStateCostFactors() StateCostFactors {
	return StateCostFactors{
		Factors: map[string]decimal.Decimal{
			"AK": decimal.NewFromFloat(1.40),
			"AZ": decimal.NewFromFloat(0.98),
			"CA": decimal.NewFromFloat(1.12),
			"CO": decimal.NewFromFloat(1.02),
			"FL": decimal.NewFromFloat(1.05),
			"GA": decimal.NewFromFloat(1.00),
			"IL": decimal.NewFromFloat(1.03),
			"MA": decimal.NewFromFloat(1.10),
			"MD": decimal.NewFromFloat(0.95),
			"MI": decimal.NewFromFloat(0.93),
			"MN": decimal.NewFromFloat(0.90),
			"NC": decimal.NewFromFloat(1.04),
			"NH": decimal.NewFromFloat(0.92),
			"NJ": decimal.NewFromFloat(1.08),
			"NV": decimal.NewFromFloat(1.00),
			"NY": decimal.NewFromFloat(1.25),
			"OR": decimal.NewFromFloat(1.01),
			"PA": decimal.NewFromFloat(0.99),
			"TX": decimal.NewFromFloat(0.97),
			"VT": decimal.NewFromFloat(1.35),
			"WA": decimal.NewFromFloat(1.02),
			"WV": decimal.NewFromFloat(1.45),
			"WY": decimal.NewFromFloat(1.38),
		},
	}
}

// DefaultPopularStates returns the states treated as widely-networked:
// every national carrier offers broad coverage across this set, so an
// all-popular multi-state footprint scores well.
func DefaultPopularStates() map[string]bool {
	return map[string]bool{
		"CA": true, "TX": true, "FL": true, "NY": true,
		"AZ": true, "WA": true, "IL": true, "PA": true,
		"NC": true, "GA": true,
	}
}

// DefaultAdjacentStatePairs returns the recognized adjacent two-state pairs
// for which regional carriers commonly offer cross-border networks. Keys are
// the pair sorted alphabetically and joined with "-".
func DefaultAdjacentStatePairs() map[string]bool {
	return map[string]bool{
		"CA-NV": true, "CA-OR": true, "AZ-CA": true,
		"NJ-NY": true, "CT-NY": true, "NY-PA": true,
		"MD-VA": true, "DC-MD": true, "DC-VA": true,
		"FL-GA": true, "OK-TX": true, "NM-TX": true,
		"OR-WA": true, "IL-WI": true, "IL-IN": true,
		"MA-NH": true, "MN-WI": true, "NC-SC": true,
		"NJ-PA": true, "CO-NM": true, "AZ-NV": true,
	}
}

// MedicaidThresholds holds state Medicaid eligibility cutoffs as percentages
// of FPL. Expansion states use the 138% floor; non-expansion states carry an
// explicit 100% override.
type MedicaidThresholds struct {
	DefaultPercent decimal.Decimal            `yaml:"default_percent" json:"default_percent"`
	StateOverrides map[string]decimal.Decimal `yaml:"state_overrides" json:"state_overrides"`
}

// ThresholdFor returns the Medicaid FPL-percentage cutoff for a state.
func (m MedicaidThresholds) ThresholdFor(state string) decimal.Decimal {
	if pct, ok := m.StateOverrides[state]; ok {
		return pct
	}
	return m.DefaultPercent
}

// DefaultMedicaidThresholds returns the 138% expansion floor with
// non-expansion state overrides.
func DefaultMedicaidThresholds() MedicaidThresholds {
	hundred := decimal.NewFromInt(100)
	return MedicaidThresholds{
		DefaultPercent: decimal.NewFromInt(138),
		StateOverrides: map[string]decimal.Decimal{
			"AL": hundred, "FL": hundred, "GA": hundred, "KS": hundred,
			"MS": hundred, "SC": hundred, "TN": hundred, "TX": hundred,
			"WI": hundred, "WY": hundred,
		},
	}
}

// PlanCostConstants are the fixed per-person monthly cost inputs the
// recommendation generators price from, before state adjustment.
type PlanCostConstants struct {
	MedicarePerPerson    decimal.Decimal `yaml:"medicare_per_person" json:"medicare_per_person"`
	AdultPPO             decimal.Decimal `yaml:"adult_ppo" json:"adult_ppo"`
	ChildCost            decimal.Decimal `yaml:"child_cost" json:"child_cost"`
	FamilyBase           decimal.Decimal `yaml:"family_base" json:"family_base"`
	AdditionalChild      decimal.Decimal `yaml:"additional_child" json:"additional_child"`
	SingleParentDiscount decimal.Decimal `yaml:"single_parent_discount" json:"single_parent_discount"` // multiplier < 1
	MultiStateLoad       decimal.Decimal `yaml:"multi_state_load" json:"multi_state_load"`             // multiplier >= 1
}

// DefaultPlanCostConstants returns the built-in monthly cost constants.
func DefaultPlanCostConstants() PlanCostConstants {
	return PlanCostConstants{
		MedicarePerPerson:    decimal.NewFromInt(320),
		AdultPPO:             decimal.NewFromInt(485),
		ChildCost:            decimal.NewFromInt(240),
		FamilyBase:           decimal.NewFromInt(1250),
		AdditionalChild:      decimal.NewFromInt(190),
		SingleParentDiscount: decimal.NewFromFloat(0.90),
		MultiStateLoad:       decimal.NewFromFloat(1.12),
	}
}

// InflationDefaults are the annual growth factors the projection engine
// compounds with.
type InflationDefaults struct {
	Premium     decimal.Decimal `yaml:"premium" json:"premium"`
	MedicalCost decimal.Decimal `yaml:"medical_cost" json:"medical_cost"`
}

// DefaultInflationRates returns the default premium and medical-cost growth
// rates.
func DefaultInflationRates() InflationDefaults {
	return InflationDefaults{
		Premium:     decimal.NewFromFloat(0.05),
		MedicalCost: decimal.NewFromFloat(0.06),
	}
}

// ReferenceTables bundles every static table the engine consumes. Loaded
// once, read-only afterwards, safe for concurrent reads.
type ReferenceTables struct {
	FPL                FPLTable           `yaml:"fpl" json:"fpl"`
	IRMAA              []IRMAABracket     `yaml:"irmaa" json:"irmaa"`
	AgeRating          AgeRatingCurve     `yaml:"age_rating" json:"age_rating"`
	StateCosts         StateCostFactors   `yaml:"state_costs" json:"state_costs"`
	PopularStates      map[string]bool    `yaml:"popular_states" json:"popular_states"`
	AdjacentStatePairs map[string]bool    `yaml:"adjacent_state_pairs" json:"adjacent_state_pairs"`
	Medicaid           MedicaidThresholds `yaml:"medicaid" json:"medicaid"`
	PlanCosts          PlanCostConstants  `yaml:"plan_costs" json:"plan_costs"`
	Inflation          InflationDefaults  `yaml:"inflation" json:"inflation"`
}

// DefaultReferenceTables returns the built-in reference table set.
func DefaultReferenceTables() *ReferenceTables {
	return &ReferenceTables{
		FPL:                DefaultFPLTable(),
		IRMAA:              DefaultIRMAABrackets(),
		AgeRating:          DefaultAgeRatingCurve(),
		StateCosts:         DefaultStateCostFactors(),
		PopularStates:      DefaultPopularStates(),
		AdjacentStatePairs: DefaultAdjacentStatePairs(),
		Medicaid:           DefaultMedicaidThresholds(),
		PlanCosts:          DefaultPlanCostConstants(),
		Inflation:          DefaultInflationRates(),
	}
}
