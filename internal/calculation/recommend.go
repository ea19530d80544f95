package calculation

import (
	"fmt"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioType is the household classification the generators branch on.
// Exactly one scenario applies per request.
type ScenarioType string

const (
	ScenarioMedicare    ScenarioType = "medicare"
	ScenarioMixed       ScenarioType = "mixed"
	ScenarioNonMedicare ScenarioType = "non_medicare"
)

// ClassifyScenario evaluates the single transition rule: all adults 65+ with
// no children is Medicare; any Medicare-eligible member alongside others is
// mixed; otherwise non-Medicare.
func ClassifyScenario(profile *domain.HouseholdProfile) ScenarioType {
	if profile.AllAdultsMedicareAge() && len(profile.ChildAges) == 0 {
		return ScenarioMedicare
	}
	if profile.AnyMedicareEligible() {
		return ScenarioMixed
	}
	return ScenarioNonMedicare
}

// planStrategy bundles the per-plan-type behaviors: cost generation, coverage
// score adjustment, and reasoning text. Looked up by plan type instead of
// branching on a dynamic tag.
type planStrategy struct {
	costFn      func(g *RecommendationGenerator, p *domain.HouseholdProfile) domain.CostRange
	scoreAdjust func(score int, p *domain.HouseholdProfile) int
	reasoningFn func(g *RecommendationGenerator, p *domain.HouseholdProfile) []string
}

// RecommendationGenerator produces the base recommendation for each scenario
// state. Total over well-formed input; a zero-member household yields a
// minimal recommendation rather than an error.
type RecommendationGenerator struct {
	Scorer     *CoverageScorer
	Tables     *domain.ReferenceTables
	strategies map[domain.PlanType]planStrategy
}

// NewRecommendationGenerator creates a generator over the default tables.
func NewRecommendationGenerator() *RecommendationGenerator {
	return NewRecommendationGeneratorWithTables(domain.DefaultReferenceTables())
}

// NewRecommendationGeneratorWithTables creates a generator over loaded tables.
func NewRecommendationGeneratorWithTables(tables *domain.ReferenceTables) *RecommendationGenerator {
	g := &RecommendationGenerator{
		Scorer: NewCoverageScorerWithTables(tables),
		Tables: tables,
	}
	g.strategies = map[domain.PlanType]planStrategy{
		domain.PlanMedicareFamily: {
			costFn:      (*RecommendationGenerator).medicareCost,
			scoreAdjust: func(score int, _ *domain.HouseholdProfile) int { return score },
			reasoningFn: (*RecommendationGenerator).medicareReasoning,
		},
		domain.PlanMixedHousehold: {
			costFn:      (*RecommendationGenerator).mixedCost,
			scoreAdjust: mixedScoreAdjust,
			reasoningFn: (*RecommendationGenerator).mixedReasoning,
		},
		domain.PlanFamilyPPO: {
			costFn:      (*RecommendationGenerator).familyCost,
			scoreAdjust: func(score int, _ *domain.HouseholdProfile) int { return score },
			reasoningFn: (*RecommendationGenerator).nonMedicareReasoning,
		},
		domain.PlanIndividualPPO: {
			costFn:      (*RecommendationGenerator).individualCost,
			scoreAdjust: func(score int, _ *domain.HouseholdProfile) int { return score },
			reasoningFn: (*RecommendationGenerator).nonMedicareReasoning,
		},
	}
	return g
}

// Generate builds the base recommendation for the household.
func (g *RecommendationGenerator) Generate(profile *domain.HouseholdProfile) *domain.InsuranceRecommendation {
	if profile == nil || profile.MemberCount() == 0 {
		return g.minimalRecommendation(profile)
	}

	planType := g.planTypeFor(profile)
	strategy := g.strategies[planType]

	states := profile.States()
	score := strategy.scoreAdjust(g.Scorer.Score(states), profile)

	rec := &domain.InsuranceRecommendation{
		PlanType:             planType,
		HouseholdDescription: describeHousehold(profile),
		CoverageScore:        score,
		MonthlyCost:          strategy.costFn(g, profile),
		Reasoning:            strategy.reasoningFn(g, profile),
		ActionItems:          g.actionItemsFor(planType, profile),
		Alternatives:         g.alternativesFor(planType, profile),
	}

	if note := g.budgetNote(profile, rec.MonthlyCost); note != "" {
		rec.Reasoning = append(rec.Reasoning, note)
	}

	return rec
}

// planTypeFor maps the scenario classification onto a plan type.
func (g *RecommendationGenerator) planTypeFor(profile *domain.HouseholdProfile) domain.PlanType {
	switch ClassifyScenario(profile) {
	case ScenarioMedicare:
		return domain.PlanMedicareFamily
	case ScenarioMixed:
		return domain.PlanMixedHousehold
	default:
		if len(profile.ChildAges) > 0 || len(profile.AdultAges) > 1 {
			return domain.PlanFamilyPPO
		}
		return domain.PlanIndividualPPO
	}
}

// minimalRecommendation is the non-throwing response to a malformed
// household.
func (g *RecommendationGenerator) minimalRecommendation(profile *domain.HouseholdProfile) *domain.InsuranceRecommendation {
	states := []string{}
	if profile != nil {
		states = profile.States()
	}
	return &domain.InsuranceRecommendation{
		PlanType:             domain.PlanMarketplace,
		HouseholdDescription: "empty household",
		CoverageScore:        g.Scorer.Score(states),
		MonthlyCost:          domain.CostRange{Low: decimal.Zero, High: decimal.Zero},
		Reasoning:            []string{"No household members were provided; add at least one member for a full recommendation"},
		ActionItems:          []string{"Complete the household profile and re-run the analysis"},
	}
}

// stateFactor returns the primary state's cost multiplier.
func (g *RecommendationGenerator) stateFactor(profile *domain.HouseholdProfile) decimal.Decimal {
	return g.Tables.StateCosts.FactorFor(profile.PrimaryState())
}

// multiStateLoad applies the carrier load for footprints spanning more than
// one state; adjacent pairs commonly share a regional network and skip it.
func (g *RecommendationGenerator) multiStateLoad(profile *domain.HouseholdProfile) decimal.Decimal {
	states := profile.States()
	if len(states) < 2 {
		return decimal.NewFromInt(1)
	}
	if len(states) == 2 && g.Scorer.isAdjacentPair(states[0], states[1]) {
		return decimal.NewFromInt(1)
	}
	return g.Tables.PlanCosts.MultiStateLoad
}

func (g *RecommendationGenerator) medicareCost(profile *domain.HouseholdProfile) domain.CostRange {
	costs := g.Tables.PlanCosts
	adults := decimal.NewFromInt(int64(len(profile.AdultAges)))
	base := costs.MedicarePerPerson.Mul(adults).Mul(g.stateFactor(profile))

	// IRMAA surcharges raise the top of the range for high-income households.
	surcharge := g.irmaaSurcharge(profile).Mul(adults)

	return domain.CostRange{
		Low:  base.Round(2),
		High: base.Mul(decimal.NewFromFloat(1.30)).Add(surcharge).Round(2),
	}
}

// irmaaSurcharge walks the bracket table top-down against estimated income.
// Joint thresholds apply for two or more adults.
func (g *RecommendationGenerator) irmaaSurcharge(profile *domain.HouseholdProfile) decimal.Decimal {
	income := profile.EstimatedIncome()
	if income.IsZero() {
		return decimal.Zero
	}
	joint := len(profile.AdultAges) >= 2

	surcharge := decimal.Zero
	for _, bracket := range g.Tables.IRMAA {
		threshold := bracket.IncomeThresholdSingle
		if joint {
			threshold = bracket.IncomeThresholdJoint
		}
		if income.GreaterThan(threshold) {
			surcharge = bracket.PartBMonthlySurcharge
		} else {
			break
		}
	}
	return surcharge
}

func (g *RecommendationGenerator) mixedCost(profile *domain.HouseholdProfile) domain.CostRange {
	costs := g.Tables.PlanCosts
	medicareAdults := 0
	marketAdults := 0
	for _, age := range profile.AdultAges {
		if age >= 65 {
			medicareAdults++
		} else {
			marketAdults++
		}
	}
	if medicareAdults == 0 && profile.MedicareFlag && len(profile.AdultAges) > 0 {
		medicareAdults = 1
		marketAdults--
	}

	base := costs.MedicarePerPerson.Mul(decimal.NewFromInt(int64(medicareAdults))).
		Add(costs.AdultPPO.Mul(decimal.NewFromInt(int64(marketAdults)))).
		Add(costs.ChildCost.Mul(decimal.NewFromInt(int64(len(profile.ChildAges)))))
	base = base.Mul(g.stateFactor(profile)).Mul(g.multiStateLoad(profile))

	return domain.CostRange{
		Low:  base.Round(2),
		High: base.Mul(decimal.NewFromFloat(1.35)).Round(2),
	}
}

func (g *RecommendationGenerator) familyCost(profile *domain.HouseholdProfile) domain.CostRange {
	costs := g.Tables.PlanCosts
	base := costs.FamilyBase
	if extra := len(profile.ChildAges) - 1; extra > 0 {
		base = base.Add(costs.AdditionalChild.Mul(decimal.NewFromInt(int64(extra))))
	}
	if len(profile.AdultAges) == 1 && len(profile.ChildAges) > 0 {
		base = base.Mul(costs.SingleParentDiscount)
	}
	base = base.Mul(g.stateFactor(profile)).Mul(g.multiStateLoad(profile))
	if profile.UsesTobacco() {
		base = base.Mul(decimal.NewFromFloat(1.15))
	}

	return domain.CostRange{
		Low:  base.Round(2),
		High: base.Mul(decimal.NewFromFloat(1.40)).Round(2),
	}
}

func (g *RecommendationGenerator) individualCost(profile *domain.HouseholdProfile) domain.CostRange {
	costs := g.Tables.PlanCosts
	base := costs.AdultPPO
	if len(profile.AdultAges) > 0 {
		// Scale by the age curve relative to the 40-year-old anchor the PPO
		// constant is priced at.
		anchor := g.Tables.AgeRating.FactorFor(40)
		if !anchor.IsZero() {
			base = base.Mul(g.Tables.AgeRating.FactorFor(profile.AdultAges[0])).Div(anchor)
		}
	}
	base = base.Mul(g.stateFactor(profile)).Mul(g.multiStateLoad(profile))
	if profile.UsesTobacco() {
		base = base.Mul(decimal.NewFromFloat(1.15))
	}

	return domain.CostRange{
		Low:  base.Round(2),
		High: base.Mul(decimal.NewFromFloat(1.45)).Round(2),
	}
}

func mixedScoreAdjust(score int, profile *domain.HouseholdProfile) int {
	// Coordinating Medicare and marketplace coverage across carriers costs a
	// little network coherence.
	if len(profile.States()) > 1 && score > 5 {
		return score - 5
	}
	return score
}

func (g *RecommendationGenerator) medicareReasoning(profile *domain.HouseholdProfile) []string {
	states := profile.States()
	reasoning := []string{
		"All adults are Medicare-eligible; Original Medicare with supplemental coverage fits the whole household",
	}
	switch {
	case len(states) <= 1:
		reasoning = append(reasoning, "Original Medicare travels with you nationwide, so a single-state household keeps full access")
	default:
		reasoning = append(reasoning, fmt.Sprintf("Original Medicare plus a Medigap plan covers all %d residence states without network restrictions", len(states)))
	}
	if g.irmaaSurcharge(profile).GreaterThan(decimal.Zero) {
		reasoning = append(reasoning, "Household income triggers IRMAA surcharges on Part B premiums; the high estimate includes them")
	}
	return reasoning
}

func (g *RecommendationGenerator) mixedReasoning(profile *domain.HouseholdProfile) []string {
	reasoning := []string{
		"The household mixes Medicare-eligible and non-eligible members; each group needs its own coverage track",
		"Medicare-eligible members should enroll individually while the rest of the household uses a marketplace or employer plan",
	}
	if len(profile.ChildAges) > 0 {
		reasoning = append(reasoning, "Children stay on the family marketplace plan; Medicare never covers dependents")
	}
	if n := len(profile.States()); n > 1 {
		reasoning = append(reasoning, fmt.Sprintf("A %d-state footprint favors carriers with national PPO networks for the non-Medicare members", n))
	}
	return reasoning
}

func (g *RecommendationGenerator) nonMedicareReasoning(profile *domain.HouseholdProfile) []string {
	states := profile.States()
	var reasoning []string
	if len(profile.ChildAges) > 0 || len(profile.AdultAges) > 1 {
		reasoning = append(reasoning, "A single family plan is cheaper than individual policies for this household size")
	} else {
		reasoning = append(reasoning, "An individual marketplace plan fits a one-person household")
	}
	switch {
	case len(states) == 0:
		reasoning = append(reasoning, "No residence state on file; estimates use national averages")
	case len(states) == 1:
		reasoning = append(reasoning, "A single residence state keeps every local network plan in play")
	case len(states) == 2:
		reasoning = append(reasoning, "Two residence states call for a PPO with multi-state network access")
	default:
		reasoning = append(reasoning, fmt.Sprintf("With %d residence states, prioritize national-network PPO coverage", len(states)))
	}
	return reasoning
}

func (g *RecommendationGenerator) actionItemsFor(planType domain.PlanType, profile *domain.HouseholdProfile) []string {
	switch planType {
	case domain.PlanMedicareFamily:
		return []string{
			"Confirm Medicare Part A and B enrollment for every adult",
			"Compare Medigap Plan G premiums against Medicare Advantage plans in the primary state",
			"Add a standalone Part D drug plan if staying on Original Medicare",
		}
	case domain.PlanMixedHousehold:
		items := []string{
			"Enroll Medicare-eligible members in Part A and B individually",
			"Shop a marketplace plan for the remaining members",
		}
		if profile.HasEmployerInsurance {
			items = append(items, "Check whether the employer plan can continue covering the non-Medicare members")
		}
		return items
	default:
		items := []string{
			"Compare silver marketplace plans in the primary residence state",
		}
		if len(profile.States()) > 1 {
			items = append(items, "Verify the chosen network covers providers near every residence")
		}
		if profile.HasEmployerInsurance {
			items = append(items, "Weigh the employer plan before buying marketplace coverage")
		}
		return items
	}
}

func (g *RecommendationGenerator) alternativesFor(planType domain.PlanType, profile *domain.HouseholdProfile) []domain.AlternativeOption {
	costs := g.Tables.PlanCosts
	factor := g.stateFactor(profile)
	adults := decimal.NewFromInt(int64(maxInt(len(profile.AdultAges), 1)))

	switch planType {
	case domain.PlanMedicareFamily:
		maBase := decimal.NewFromInt(60).Mul(adults).Mul(factor)
		medigapBase := costs.MedicarePerPerson.Mul(adults).Mul(factor)
		return []domain.AlternativeOption{
			{
				Name:     "Medicare Advantage",
				PlanType: domain.PlanMedicareFamily,
				CostRange: domain.CostRange{
					Low:  maBase.Round(2),
					High: maBase.Mul(decimal.NewFromInt(3)).Round(2),
				},
				Pros: []string{"Lower monthly premium", "Often bundles drug, dental, and vision coverage"},
				Cons: []string{"Regional networks travel poorly across residences", "Prior-authorization requirements"},
			},
			{
				Name:     "Medigap Plan G + Part D",
				PlanType: domain.PlanMedicareFamily,
				CostRange: domain.CostRange{
					Low:  medigapBase.Round(2),
					High: medigapBase.Mul(decimal.NewFromFloat(1.5)).Round(2),
				},
				Pros: []string{"Nationwide acceptance wherever Medicare is taken", "Predictable out-of-pocket costs"},
				Cons: []string{"Higher monthly premium", "Separate drug plan to manage"},
			},
		}
	case domain.PlanMixedHousehold:
		split := costs.AdultPPO.Mul(decimal.NewFromInt(int64(maxInt(len(profile.AdultAges)-1, 0)))).
			Add(costs.ChildCost.Mul(decimal.NewFromInt(int64(len(profile.ChildAges))))).
			Add(costs.MedicarePerPerson).Mul(factor)
		return []domain.AlternativeOption{
			{
				Name:     "Split coverage: Medicare + marketplace family plan",
				PlanType: domain.PlanMixedHousehold,
				CostRange: domain.CostRange{
					Low:  split.Round(2),
					High: split.Mul(decimal.NewFromFloat(1.3)).Round(2),
				},
				Pros: []string{"Each member gets age-appropriate coverage", "Marketplace members may qualify for subsidies"},
				Cons: []string{"Two sets of deductibles and paperwork"},
			},
		}
	default:
		marketplace := costs.AdultPPO.Mul(adults).Mul(factor)
		hdhp := marketplace.Mul(decimal.NewFromFloat(0.7))
		alternatives := []domain.AlternativeOption{
			{
				Name:     "ACA marketplace silver plan",
				PlanType: domain.PlanMarketplace,
				CostRange: domain.CostRange{
					Low:  marketplace.Mul(decimal.NewFromFloat(0.85)).Round(2),
					High: marketplace.Mul(decimal.NewFromFloat(1.2)).Round(2),
				},
				Pros: []string{"Subsidy-eligible when income qualifies", "Essential health benefits guaranteed"},
				Cons: []string{"Networks are usually regional"},
			},
			{
				Name:     "HDHP + HSA",
				PlanType: domain.PlanMarketplace,
				CostRange: domain.CostRange{
					Low:  hdhp.Round(2),
					High: hdhp.Mul(decimal.NewFromFloat(1.3)).Round(2),
				},
				Pros: []string{"Lowest premium option", "Tax-advantaged HSA savings"},
				Cons: []string{"High deductible before coverage starts", "Poor fit for frequent care"},
			},
		}
		return alternatives
	}
}

// budgetNote flags when the requested budget bracket cannot cover even the
// low estimate.
func (g *RecommendationGenerator) budgetNote(profile *domain.HouseholdProfile, cost domain.CostRange) string {
	budgetCeilings := map[domain.BudgetBracket]int64{
		domain.BudgetUnder200:  200,
		domain.Budget200to400:  400,
		domain.Budget400to700:  700,
		domain.Budget700to1200: 1200,
	}
	ceiling, ok := budgetCeilings[profile.BudgetBracket]
	if !ok {
		return ""
	}
	if cost.Low.GreaterThan(decimal.NewFromInt(ceiling)) {
		return fmt.Sprintf("The stated budget (up to $%d/month) is below the low estimate of $%s; subsidies or a leaner metal tier may close the gap",
			ceiling, cost.Low.Round(0))
	}
	return ""
}

func describeHousehold(profile *domain.HouseholdProfile) string {
	desc := fmt.Sprintf("%d adult(s)", len(profile.AdultAges))
	if len(profile.ChildAges) > 0 {
		desc += fmt.Sprintf(", %d child(ren)", len(profile.ChildAges))
	}
	if n := len(profile.States()); n > 1 {
		desc += fmt.Sprintf(" across %d states", n)
	}
	return desc
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
