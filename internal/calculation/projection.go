package calculation

import (
	"errors"
	"math"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoPrimaryAge reports a projection request without a usable primary age.
// The orchestrator treats it as a soft failure and omits the projection.
var ErrNoPrimaryAge = errors.New("projection requires a primary age")

// MetalTier is the marketplace plan tier a projection prices.
type MetalTier string

const (
	TierBronze   MetalTier = "bronze"
	TierSilver   MetalTier = "silver"
	TierGold     MetalTier = "gold"
	TierPlatinum MetalTier = "platinum"
)

// HealthStatus buckets overall health for medical-cost baselines.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// ProjectionInput configures a multi-year cost projection.
type ProjectionInput struct {
	CurrentAge        int
	Years             int
	State             string
	Tier              MetalTier
	TobaccoUse        bool
	Health            HealthStatus
	ChronicConditions int
}

// ProjectionEngine projects premiums and medical costs forward with
// configurable inflation and milestone-age annotations.
type ProjectionEngine struct {
	AgeRating  domain.AgeRatingCurve
	StateCosts domain.StateCostFactors
	Inflation  domain.InflationDefaults

	// SilverBasePremium anchors the premium model at the age-21 silver rate.
	SilverBasePremium decimal.Decimal
}

// NewProjectionEngine creates an engine over the default tables.
func NewProjectionEngine() *ProjectionEngine {
	return NewProjectionEngineWithTables(domain.DefaultReferenceTables())
}

// NewProjectionEngineWithTables creates an engine over loaded tables.
func NewProjectionEngineWithTables(tables *domain.ReferenceTables) *ProjectionEngine {
	return &ProjectionEngine{
		AgeRating:         tables.AgeRating,
		StateCosts:        tables.StateCosts,
		Inflation:         tables.Inflation,
		SilverBasePremium: decimal.NewFromInt(350),
	}
}

// Project produces a year-by-year projection with p10/p50/p90 confidence
// bands that widen with horizon. Missing primary age is an error the caller
// soft-fails on.
func (pe *ProjectionEngine) Project(input ProjectionInput) (*domain.LifetimeProjection, error) {
	if input.CurrentAge <= 0 {
		return nil, ErrNoPrimaryAge
	}
	years := input.Years
	if years <= 0 {
		years = 10
	}

	projection := &domain.LifetimeProjection{StartAge: input.CurrentAge}
	cumulative := decimal.Zero
	stateFactor := pe.StateCosts.FactorFor(input.State)
	twelve := decimal.NewFromInt(12)

	for i := 0; i < years; i++ {
		age := input.CurrentAge + i

		monthlyPremium := pe.monthlyPremiumAt(age, input, stateFactor, i)
		medicalCost := pe.annualMedicalCostAt(age, input, i)
		oop := medicalCost.Mul(decimal.NewFromFloat(0.35))

		yearTotal := monthlyPremium.Mul(twelve).Add(oop)
		cumulative = cumulative.Add(yearTotal)

		// Band width grows with the square root of the horizon.
		spread := math.Sqrt(float64(i + 1))
		low := yearTotal.Mul(decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(0.04 * spread)))
		high := yearTotal.Mul(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(0.07 * spread)))
		if low.IsNegative() {
			low = decimal.Zero
		}

		year := domain.YearProjection{
			Year:           i + 1,
			Age:            age,
			Premium:        monthlyPremium.Round(2),
			MedicalCost:    medicalCost.Round(2),
			OutOfPocket:    oop.Round(2),
			CumulativeCost: cumulative.Round(2),
			ConfidenceLow:  low.Round(2),
			ConfidenceMid:  yearTotal.Round(2),
			ConfidenceHigh: high.Round(2),
		}

		if info, ok := milestoneCatalog[age]; ok {
			impact := ""
			if len(info.impacts) > 0 {
				impact = info.impacts[0]
			}
			year.Transition = &domain.TransitionEvent{
				Age:     age,
				Event:   info.event,
				Impact:  impact,
				Urgency: string(projectionMilestoneUrgency(i)),
				Actions: info.actions,
			}
		}

		projection.Years = append(projection.Years, year)
	}

	projection.TotalProjected = cumulative.Round(2)
	return projection, nil
}

func (pe *ProjectionEngine) monthlyPremiumAt(age int, input ProjectionInput, stateFactor decimal.Decimal, yearIndex int) decimal.Decimal {
	premium := pe.SilverBasePremium.
		Mul(pe.AgeRating.FactorFor(age)).
		Mul(tierFactor(input.Tier)).
		Mul(stateFactor)
	if input.TobaccoUse {
		premium = premium.Mul(decimal.NewFromFloat(1.15))
	}
	return premium.Mul(compound(pe.Inflation.Premium, yearIndex))
}

func (pe *ProjectionEngine) annualMedicalCostAt(age int, input ProjectionInput, yearIndex int) decimal.Decimal {
	base := healthStatusBaseCost(input.Health)
	base = base.Add(decimal.NewFromInt(int64(input.ChronicConditions)).Mul(decimal.NewFromInt(1200)))
	if age >= 55 {
		base = base.Mul(decimal.NewFromFloat(1.25))
	}
	return base.Mul(compound(pe.Inflation.MedicalCost, yearIndex))
}

func tierFactor(tier MetalTier) decimal.Decimal {
	switch tier {
	case TierBronze:
		return decimal.NewFromFloat(0.80)
	case TierGold:
		return decimal.NewFromFloat(1.25)
	case TierPlatinum:
		return decimal.NewFromFloat(1.50)
	default:
		return decimal.NewFromInt(1)
	}
}

func healthStatusBaseCost(status HealthStatus) decimal.Decimal {
	switch status {
	case HealthExcellent:
		return decimal.NewFromInt(1200)
	case HealthFair:
		return decimal.NewFromInt(3500)
	case HealthPoor:
		return decimal.NewFromInt(6000)
	default:
		return decimal.NewFromInt(2000)
	}
}

// compound returns (1+rate)^years.
func compound(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
}

func projectionMilestoneUrgency(yearIndex int) domain.SEPUrgency {
	switch {
	case yearIndex <= 1:
		return domain.SEPUrgencyHigh
	case yearIndex <= 3:
		return domain.SEPUrgencyModerate
	default:
		return domain.SEPUrgencyLow
	}
}
