package calculation

import (
	"context"
	"fmt"
	"sync"

	"github.com/coverscope/coverscope/internal/domain"
	"github.com/shopspring/decimal"
)

// Logger is the minimal logging surface the engine needs. The CLI wires a
// stdlib-log implementation; tests leave it nil.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger swallows everything so the engine never nil-checks at call sites.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Engine orchestrates a full insurance analysis: classification and base
// recommendation, then best-effort enrichments in dependency order. A failed
// enrichment is logged and its field omitted; the analysis itself never
// fails.
type Engine struct {
	Tables      *domain.ReferenceTables
	SubsidyCalc *SubsidyCalculator
	EmployerCmp *EmployerPlanComparator
	Generator   *RecommendationGenerator
	AddOns      *AddOnEngine
	Projections *ProjectionEngine

	// RiskSeed drives the Monte Carlo simulator; zero means 1 (fixed seeds
	// keep repeated analyses of the same household comparable).
	RiskSeed int64

	// ProjectionYears is the multi-year projection horizon; zero means 10.
	ProjectionYears int

	logger Logger
}

// NewEngine creates an engine over the default reference tables with no
// authoritative benchmark source.
func NewEngine() *Engine {
	return NewEngineWithTables(domain.DefaultReferenceTables(), nil)
}

// NewEngineWithTables creates an engine over loaded tables and an optional
// benchmark premium source.
func NewEngineWithTables(tables *domain.ReferenceTables, benchmark BenchmarkSource) *Engine {
	return &Engine{
		Tables:      tables,
		SubsidyCalc: NewSubsidyCalculatorWithTables(tables, benchmark),
		EmployerCmp: NewEmployerPlanComparator(),
		Generator:   NewRecommendationGeneratorWithTables(tables),
		AddOns:      NewAddOnEngine(),
		Projections: NewProjectionEngineWithTables(tables),
		RiskSeed:    1,
		logger:      nopLogger{},
	}
}

// SetLogger installs a logger for enrichment diagnostics.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		logger = nopLogger{}
	}
	e.logger = logger
}

// AnalyzeInsurance runs the full pipeline for one household. Sub-analyses
// run in dependency order: subsidy feeds the employer comparison, and the
// chosen plan type feeds the risk simulator's cost-sharing assumptions.
// Add-on scoring and the projection are independent and run concurrently.
func (e *Engine) AnalyzeInsurance(ctx context.Context, profile *domain.HouseholdProfile) *domain.InsuranceRecommendation {
	rec := e.Generator.Generate(profile)
	if profile == nil || profile.MemberCount() == 0 {
		e.logger.Warnf("analysis requested for an empty household; returning minimal recommendation")
		return rec
	}

	e.enrich(rec, "subsidy", func() error {
		rec.Subsidy = e.SubsidyCalc.Calculate(ctx, profile)
		return nil
	})

	e.enrich(rec, "employer comparison", func() error {
		rec.Employer = e.EmployerCmp.Compare(profile, rec.Subsidy, rec.MonthlyCost)
		return nil
	})

	var wg sync.WaitGroup
	var addOns *domain.AddOnAnalysis
	var projection *domain.LifetimeProjection
	var addOnErr, projErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		addOnErr = guard("add-on scoring", func() error {
			addOns = e.AddOns.Analyze(profile)
			return nil
		})
	}()
	go func() {
		defer wg.Done()
		projErr = guard("projection", func() error {
			var err error
			projection, err = e.Projections.Project(e.projectionInputFor(profile))
			return err
		})
	}()
	wg.Wait()

	if addOnErr != nil {
		e.logger.Errorf("add-on scoring skipped: %v", addOnErr)
	} else {
		rec.AddOns = addOns
	}
	if projErr != nil {
		e.logger.Warnf("projection skipped: %v", projErr)
	} else {
		rec.Projection = projection
	}

	e.enrich(rec, "risk simulation", func() error {
		deductible, oopMax := e.costSharingFor(rec.PlanType)
		simulator := NewRiskSimulator(DefaultRiskSimulatorConfig(e.RiskSeed))
		rec.RiskProfile = simulator.Simulate(EstimateBaseCost(profile), deductible, oopMax)
		return nil
	})

	return rec
}

// enrich runs one enrichment step, recovering panics and logging failures so
// a bad step only costs its own field.
func (e *Engine) enrich(rec *domain.InsuranceRecommendation, name string, fn func() error) {
	if err := guard(name, fn); err != nil {
		e.logger.Errorf("%s enrichment skipped: %v", name, err)
	}
}

// guard converts a panic inside fn into an error.
func guard(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}

// projectionInputFor derives the projection request from the household: the
// primary adult's age, the primary state, and the health profile.
func (e *Engine) projectionInputFor(profile *domain.HouseholdProfile) ProjectionInput {
	age := 0
	if len(profile.AdultAges) > 0 {
		age = profile.AdultAges[0]
	}
	years := e.ProjectionYears
	if years <= 0 {
		years = 10
	}
	input := ProjectionInput{
		CurrentAge: age,
		Years:      years,
		State:      profile.PrimaryState(),
		Tier:       TierSilver,
		TobaccoUse: profile.UsesTobacco(),
		Health:     HealthGood,
	}
	if profile.Health != nil {
		input.ChronicConditions = len(profile.Health.ChronicConditions)
		switch {
		case len(profile.Health.ChronicConditions) >= 3:
			input.Health = HealthPoor
		case len(profile.Health.ChronicConditions) >= 1:
			input.Health = HealthFair
		case profile.Health.VisitFrequency == domain.VisitRare:
			input.Health = HealthExcellent
		}
	}
	return input
}

// costSharingFor maps the recommended plan type onto deductible/OOP-max
// assumptions for the risk simulator.
func (e *Engine) costSharingFor(planType domain.PlanType) (deductible, oopMax decimal.Decimal) {
	switch planType {
	case domain.PlanMedicareFamily:
		return decimal.NewFromInt(257), decimal.NewFromInt(8850)
	case domain.PlanMixedHousehold:
		return decimal.NewFromInt(2500), decimal.NewFromInt(12000)
	case domain.PlanFamilyPPO:
		return decimal.NewFromInt(3200), decimal.NewFromInt(18400)
	default:
		return decimal.NewFromInt(1600), decimal.NewFromInt(9200)
	}
}
