package calculation

import (
	"fmt"
	"sort"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// curvePoint anchors a piecewise-linear age-probability curve. Anchor slopes
// are kept at or under 6 points/year so scores never move more than 30 points
// across a 5-year age gap.
type curvePoint struct {
	age   int
	score float64
}

// addOnCurve is one category's actuarial profile: the age curve plus the
// base monthly cost a score of zero would price at.
type addOnCurve struct {
	category    domain.AddOnCategory
	points      []curvePoint
	baseMonthly decimal.Decimal
	reasonFn    func(age int, score int) string
}

// AddOnEngine scores the eight optional coverage categories for a household.
// Household-level probability per category is the maximum across members,
// reflecting worst-case exposure, with a small multi-member smoothing bump.
type AddOnEngine struct {
	curves []addOnCurve

	// MultiMemberCostShare discounts each additional covered member relative
	// to the first when aggregating household cost.
	MultiMemberCostShare decimal.Decimal
}

// NewAddOnEngine creates an engine with the built-in category curves.
func NewAddOnEngine() *AddOnEngine {
	return &AddOnEngine{
		curves:               builtinAddOnCurves(),
		MultiMemberCostShare: decimal.NewFromFloat(0.6),
	}
}

// ScoreCategory evaluates one category for a single member age. Total over
// any age; negative ages clamp to zero, ages past the last anchor plateau.
func (ae *AddOnEngine) ScoreCategory(category domain.AddOnCategory, age int) domain.AddOnRecommendation {
	for _, curve := range ae.curves {
		if curve.category == category {
			return ae.scoreCurve(curve, age)
		}
	}
	return domain.AddOnRecommendation{Category: category, Priority: domain.PriorityNone, CostMultiplier: decimal.NewFromInt(1)}
}

func (ae *AddOnEngine) scoreCurve(curve addOnCurve, age int) domain.AddOnRecommendation {
	score := interpolateCurve(curve.points, age)

	rec := domain.AddOnRecommendation{
		Category:         curve.category,
		ProbabilityScore: score,
		RiskLevel:        riskLevelForScore(score),
		CostMultiplier:   decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(score)).Div(decimal.NewFromInt(100))),
		UtilizationRate:  utilizationForScore(score),
		Priority:         priorityForScore(score),
	}
	rec.EstimatedMonthlyCost = curve.baseMonthly.Mul(rec.CostMultiplier).Round(2)
	rec.Reasons = []string{curve.reasonFn(age, score)}
	return rec
}

// Analyze scores all eight categories for the household and aggregates cost
// with the multi-member discount.
func (ae *AddOnEngine) Analyze(profile *domain.HouseholdProfile) *domain.AddOnAnalysis {
	analysis := &domain.AddOnAnalysis{HouseholdMonthlyCost: decimal.Zero}

	ages := []int{}
	if profile != nil {
		ages = profile.AllAges()
	}
	memberCount := len(ages)

	for _, curve := range ae.curves {
		rec := ae.householdCategory(curve, ages, profile)
		analysis.All = append(analysis.All, rec)
		if rec.Priority != domain.PriorityNone {
			analysis.Recommended = append(analysis.Recommended, rec)
			analysis.HouseholdMonthlyCost = analysis.HouseholdMonthlyCost.Add(
				ae.householdCost(rec.EstimatedMonthlyCost, memberCount))
		}
	}

	sortAddOns(analysis.Recommended)
	sortAddOns(analysis.All)
	analysis.HouseholdMonthlyCost = analysis.HouseholdMonthlyCost.Round(2)
	return analysis
}

// householdCategory takes the max member score for a category, with a small
// smoothing bump when several members sit near the maximum.
func (ae *AddOnEngine) householdCategory(curve addOnCurve, ages []int, profile *domain.HouseholdProfile) domain.AddOnRecommendation {
	if len(ages) == 0 {
		return ae.scoreCurve(curve, 0)
	}

	maxScore := -1
	maxAge := ages[0]
	nearMax := 0
	for _, age := range ages {
		score := interpolateCurve(curve.points, age)
		if score > maxScore {
			maxScore = score
			maxAge = age
		}
	}
	for _, age := range ages {
		if interpolateCurve(curve.points, age) >= maxScore-10 {
			nearMax++
		}
	}

	rec := ae.scoreCurve(curve, maxAge)
	if nearMax > 1 {
		bump := 3
		rec.ProbabilityScore = clampScore(rec.ProbabilityScore + bump)
		rec.RiskLevel = riskLevelForScore(rec.ProbabilityScore)
		rec.Priority = priorityForScore(rec.ProbabilityScore)
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("%d household members share elevated exposure for %s coverage", nearMax, rec.Category))
	}

	ae.applyHealthAdjustments(&rec, profile)
	return rec
}

// applyHealthAdjustments nudges condition-sensitive categories for chronic
// conditions and tobacco use. Adjustments are capped small so the age curves
// stay the dominant signal.
func (ae *AddOnEngine) applyHealthAdjustments(rec *domain.AddOnRecommendation, profile *domain.HouseholdProfile) {
	if profile == nil {
		return
	}
	bump := 0
	switch rec.Category {
	case domain.AddOnCriticalIllness, domain.AddOnHospitalIndemnity:
		if profile.Health != nil {
			bump = minInt(len(profile.Health.ChronicConditions)*4, 12)
		}
		if profile.UsesTobacco() {
			bump += 5
		}
	case domain.AddOnLife, domain.AddOnDisability:
		if profile.UsesTobacco() {
			bump = 5
		}
	}
	if bump == 0 {
		return
	}
	rec.ProbabilityScore = clampScore(rec.ProbabilityScore + bump)
	rec.RiskLevel = riskLevelForScore(rec.ProbabilityScore)
	rec.Priority = priorityForScore(rec.ProbabilityScore)
	rec.Reasons = append(rec.Reasons, "Health profile raises expected utilization for this coverage")
}

// householdCost discounts members beyond the first instead of multiplying the
// per-member cost straight through.
func (ae *AddOnEngine) householdCost(perMember decimal.Decimal, members int) decimal.Decimal {
	if members <= 1 {
		return perMember
	}
	extra := decimal.NewFromInt(int64(members - 1)).Mul(ae.MultiMemberCostShare)
	return perMember.Mul(decimal.NewFromInt(1).Add(extra))
}

// sortAddOns orders by priority (high, medium, low, none) then score
// descending.
func sortAddOns(recs []domain.AddOnRecommendation) {
	rank := map[domain.AddOnPriority]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    2,
		domain.PriorityNone:   3,
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if rank[recs[i].Priority] != rank[recs[j].Priority] {
			return rank[recs[i].Priority] < rank[recs[j].Priority]
		}
		return recs[i].ProbabilityScore > recs[j].ProbabilityScore
	})
}

func interpolateCurve(points []curvePoint, age int) int {
	if len(points) == 0 {
		return 0
	}
	if age <= points[0].age {
		return clampScore(int(points[0].score + 0.5))
	}
	last := points[len(points)-1]
	if age >= last.age {
		return clampScore(int(last.score + 0.5))
	}
	for i := 1; i < len(points); i++ {
		if age < points[i].age {
			lo, hi := points[i-1], points[i]
			frac := float64(age-lo.age) / float64(hi.age-lo.age)
			return clampScore(int(lo.score + (hi.score-lo.score)*frac + 0.5))
		}
	}
	return clampScore(int(last.score + 0.5))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func priorityForScore(score int) domain.AddOnPriority {
	switch {
	case score >= 75:
		return domain.PriorityHigh
	case score >= 50:
		return domain.PriorityMedium
	case score >= 25:
		return domain.PriorityLow
	default:
		return domain.PriorityNone
	}
}

func riskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score < 20:
		return domain.RiskMinimal
	case score < 40:
		return domain.RiskLow
	case score < 60:
		return domain.RiskModerate
	case score < 80:
		return domain.RiskHigh
	default:
		return domain.RiskSevere
	}
}

func utilizationForScore(score int) decimal.Decimal {
	util := decimal.NewFromInt(int64(score)).Div(decimal.NewFromInt(110))
	cap := decimal.NewFromFloat(0.95)
	if util.GreaterThan(cap) {
		return cap
	}
	return util.Round(3)
}

// builtinAddOnCurves defines the eight category curves. Disability peaks
// during working years and falls to near zero after retirement; long-term
// care rises steeply after 60; life rises through family-formation years and
// declines into retirement.
func builtinAddOnCurves() []addOnCurve {
	return []addOnCurve{
		{
			category: domain.AddOnDental,
			points: []curvePoint{
				{0, 40}, {5, 55}, {12, 60}, {18, 50}, {30, 50}, {45, 58}, {60, 65}, {75, 70}, {95, 70},
			},
			baseMonthly: decimal.NewFromInt(35),
			reasonFn: func(age, score int) string {
				if age < 18 {
					return "Pediatric dental care is high-frequency and cheap to insure"
				}
				return fmt.Sprintf("Dental utilization at age %d supports standalone coverage (score %d)", age, score)
			},
		},
		{
			category: domain.AddOnVision,
			points: []curvePoint{
				{0, 30}, {10, 40}, {18, 35}, {40, 55}, {50, 65}, {65, 72}, {95, 75},
			},
			baseMonthly: decimal.NewFromInt(15),
			reasonFn: func(age, score int) string {
				if age >= 40 {
					return "Presbyopia and exam frequency rise steadily from the early 40s"
				}
				return fmt.Sprintf("Routine vision needs at age %d (score %d)", age, score)
			},
		},
		{
			category: domain.AddOnAccident,
			points: []curvePoint{
				{0, 50}, {5, 60}, {18, 65}, {25, 60}, {40, 45}, {55, 35}, {70, 30}, {85, 42}, {95, 45},
			},
			baseMonthly: decimal.NewFromInt(20),
			reasonFn: func(age, score int) string {
				if age <= 25 {
					return "Accident frequency peaks in childhood and young adulthood"
				}
				if age >= 75 {
					return "Fall risk pushes accident exposure back up in later years"
				}
				return fmt.Sprintf("Moderate accident exposure at age %d (score %d)", age, score)
			},
		},
		{
			category: domain.AddOnCriticalIllness,
			points: []curvePoint{
				{0, 5}, {20, 10}, {30, 18}, {40, 32}, {50, 52}, {60, 70}, {70, 80}, {80, 85}, {95, 85},
			},
			baseMonthly: decimal.NewFromInt(40),
			reasonFn: func(age, score int) string {
				return fmt.Sprintf("Critical-illness incidence compounds with age; age %d scores %d", age, score)
			},
		},
		{
			category: domain.AddOnHospitalIndemnity,
			points: []curvePoint{
				{0, 25}, {18, 20}, {35, 30}, {50, 42}, {65, 60}, {80, 72}, {95, 75},
			},
			baseMonthly: decimal.NewFromInt(25),
			reasonFn: func(age, score int) string {
				return fmt.Sprintf("Inpatient admission likelihood at age %d (score %d)", age, score)
			},
		},
		{
			category: domain.AddOnDisability,
			points: []curvePoint{
				{0, 0}, {18, 35}, {25, 55}, {35, 68}, {45, 72}, {55, 65}, {62, 40}, {67, 12}, {72, 3}, {95, 0},
			},
			baseMonthly: decimal.NewFromInt(55),
			reasonFn: func(age, score int) string {
				if age >= 65 {
					return "Disability income protection has little value once earned income stops"
				}
				return fmt.Sprintf("Income-replacement need peaks during working years; age %d scores %d", age, score)
			},
		},
		{
			category: domain.AddOnLongTermCare,
			points: []curvePoint{
				{0, 2}, {40, 8}, {50, 15}, {60, 30}, {65, 48}, {70, 62}, {75, 76}, {80, 88}, {90, 95}, {95, 95},
			},
			baseMonthly: decimal.NewFromInt(120),
			reasonFn: func(age, score int) string {
				if age >= 60 {
					return "Long-term-care need climbs steeply from the 60s; premiums rise even faster with waiting"
				}
				return fmt.Sprintf("Long-term-care exposure is still low at age %d (score %d), but locking in early rates can pay off", age, score)
			},
		},
		{
			category: domain.AddOnLife,
			points: []curvePoint{
				{0, 5}, {18, 25}, {30, 55}, {40, 70}, {50, 72}, {60, 60}, {70, 45}, {80, 35}, {95, 30},
			},
			baseMonthly: decimal.NewFromInt(45),
			reasonFn: func(age, score int) string {
				if age >= 30 && age <= 55 {
					return "Dependents and mortgage years make this the peak window for term life coverage"
				}
				return fmt.Sprintf("Life insurance need at age %d (score %d)", age, score)
			},
		},
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
