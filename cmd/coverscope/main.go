package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/coverscope/coverscope/internal/calculation"
	"github.com/coverscope/coverscope/internal/compare"
	"github.com/coverscope/coverscope/internal/config"
	"github.com/coverscope/coverscope/internal/domain"
	"github.com/coverscope/coverscope/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "coverscope %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "coverscope",
	Short: "Health insurance decision and risk analysis CLI",
	Long:  "Coverage scoring, subsidy estimation, plan recommendations, and out-of-pocket risk analysis for multi-residence households",
}

// engineFor builds an analysis engine honoring run options and debug flags.
func engineFor(cmd *cobra.Command, options config.RunOptions) *calculation.Engine {
	engine := calculation.NewEngine()
	if options.RiskSeed != 0 {
		engine.RiskSeed = options.RiskSeed
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		engine.RiskSeed = seed
	}
	engine.ProjectionYears = options.ProjectionYears
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func loadInput(filename string) *config.AnalysisInput {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	return input
}

func emit(cmd *cobra.Command, v any, report string) {
	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		data, err := output.FormatJSON(v)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(data)
		return
	}
	fmt.Print(report)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Run the full insurance analysis for a household",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		engine := engineFor(cmd, input.Options)

		rec := engine.AnalyzeInsurance(context.Background(), input.Household)
		emit(cmd, rec, output.FormatRecommendation(rec))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a household input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadInput(args[0])
		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [base-file] [variant-file]",
	Short: "Compare two household scenarios side by side",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		base := loadInput(args[0])
		variant := loadInput(args[1])
		engine := compare.NewEngine(engineFor(cmd, base.Options))

		result := engine.Compare(context.Background(), args[0], base.Household, args[1], variant.Household)
		emit(cmd, result, output.FormatComparison(result))
	},
}

var sepCmd = &cobra.Command{
	Use:   "sep [reason] [event-date]",
	Short: "Evaluate a special enrollment window for a qualifying life event",
	Long: "Reasons: loss_of_coverage, moved, marriage, divorce, birth_adoption, job_change, income_change, other. " +
		"Dates are YYYY-MM-DD.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		eventDate, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			log.Fatal(err)
		}
		evaluationDate := time.Now()
		if asOf, _ := cmd.Flags().GetString("as-of"); asOf != "" {
			evaluationDate, err = time.Parse("2006-01-02", asOf)
			if err != nil {
				log.Fatal(err)
			}
		}

		sep := calculation.NewSEPCalculator().Calculate(domain.SEPReason(args[0]), eventDate, evaluationDate)
		emit(cmd, sep, formatSEP(sep))
	},
}

var transitionsCmd = &cobra.Command{
	Use:   "transitions [birth-date]",
	Short: "List upcoming age-based coverage milestones for a member",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		birthDate, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			log.Fatal(err)
		}

		transitions := calculation.NewAgeTransitionAnalyzer().UpcomingTransitions(birthDate, time.Now())
		emit(cmd, transitions, formatTransitions(transitions))
	},
}

var incomeChangeCmd = &cobra.Command{
	Use:   "income-change [input-file]",
	Short: "Estimate subsidy reconciliation risk after a mid-year income change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		engine := engineFor(cmd, input.Options)

		projectedStr, _ := cmd.Flags().GetString("projected")
		projected, err := decimal.NewFromString(projectedStr)
		if err != nil {
			log.Fatalf("invalid --projected value %q: %v", projectedStr, err)
		}
		months, _ := cmd.Flags().GetInt("months-remaining")

		// Size the current subsidy off a full analysis so the before side
		// matches what analyze reports.
		rec := engine.AnalyzeInsurance(context.Background(), input.Household)
		subsidy := decimal.Zero
		premium := rec.MonthlyCost.Low
		if rec.Subsidy != nil {
			subsidy = rec.Subsidy.MonthlySubsidy
			if rec.Subsidy.BenchmarkPremium.IsPositive() {
				premium = rec.Subsidy.BenchmarkPremium
			}
		}

		analyzer := calculation.NewIncomeVolatilityAnalyzerWithTables(engine.Tables)
		analysis := analyzer.Analyze(calculation.IncomeVolatilityInput{
			CurrentIncome:   input.Household.EstimatedIncome(),
			ProjectedIncome: projected,
			HouseholdSize:   input.Household.MemberCount(),
			State:           input.Household.PrimaryState(),
			CurrentPremium:  premium,
			CurrentSubsidy:  subsidy,
			MonthsRemaining: months,
		})
		emit(cmd, analysis, formatIncomeChange(analysis))
	},
}

var jobChangeCmd = &cobra.Command{
	Use:   "job-change [input-file]",
	Short: "Walk a job separation through COBRA, SEP, and marketplace options",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		engine := engineFor(cmd, input.Options)

		separationStr, _ := cmd.Flags().GetString("separation-date")
		separation, err := time.Parse("2006-01-02", separationStr)
		if err != nil {
			log.Fatalf("invalid --separation-date %q: %v", separationStr, err)
		}
		premiumStr, _ := cmd.Flags().GetString("premium")
		premium, err := decimal.NewFromString(premiumStr)
		if err != nil {
			log.Fatalf("invalid --premium %q: %v", premiumStr, err)
		}

		wizardInput := compare.JobChangeInput{
			Household:      input.Household,
			SeparationDate: separation,
			EvaluationDate: time.Now(),
			CurrentPremium: premium,
		}
		if projectedStr, _ := cmd.Flags().GetString("projected"); projectedStr != "" {
			projected, err := decimal.NewFromString(projectedStr)
			if err != nil {
				log.Fatalf("invalid --projected %q: %v", projectedStr, err)
			}
			wizardInput.ProjectedIncome = &projected
			wizardInput.MonthsRemaining, _ = cmd.Flags().GetInt("months-remaining")
		}

		plan := compare.NewJobChangeWizard(engine).Run(context.Background(), wizardInput)
		emit(cmd, plan, formatJobChange(plan))
	},
}

var medicareCmd = &cobra.Command{
	Use:   "medicare [input-file]",
	Short: "Map the path onto Medicare for a member approaching 65",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		engine := engineFor(cmd, input.Options)

		birthStr, _ := cmd.Flags().GetString("birth-date")
		birthDate, err := time.Parse("2006-01-02", birthStr)
		if err != nil {
			log.Fatalf("invalid --birth-date %q: %v", birthStr, err)
		}

		plan := compare.NewMedicareTransitionWizard(engine).Run(context.Background(), compare.MedicareTransitionInput{
			Household:      input.Household,
			BirthDate:      birthDate,
			EvaluationDate: time.Now(),
		})
		emit(cmd, plan, formatMedicarePlan(plan))
	},
}

func init() {
	rootCmd.PersistentFlags().String("format", "report", "Output format (report, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64("seed", 0, "Override the risk simulation seed")

	incomeChangeCmd.Flags().String("projected", "0", "Projected annual income")
	incomeChangeCmd.Flags().Int("months-remaining", 6, "Months left in the plan year")

	jobChangeCmd.Flags().String("separation-date", "", "Job separation date (YYYY-MM-DD)")
	jobChangeCmd.Flags().String("premium", "0", "Full monthly premium of the employer plan")
	jobChangeCmd.Flags().String("projected", "", "Projected annual income after the change")
	jobChangeCmd.Flags().Int("months-remaining", 6, "Months left in the plan year")

	medicareCmd.Flags().String("birth-date", "", "Birth date of the member approaching 65 (YYYY-MM-DD)")

	sepCmd.Flags().String("as-of", "", "Evaluation date (YYYY-MM-DD), defaults to today")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sepCmd)
	rootCmd.AddCommand(transitionsCmd)
	rootCmd.AddCommand(incomeChangeCmd)
	rootCmd.AddCommand(jobChangeCmd)
	rootCmd.AddCommand(medicareCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
