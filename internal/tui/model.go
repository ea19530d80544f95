package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coverscope/coverscope/internal/calculation"
	"github.com/coverscope/coverscope/internal/compare"
)

// step identifies one prompt in the job-change wizard flow.
type step int

const (
	stepAges step = iota
	stepIncome
	stepState
	stepSeparationDate
	stepPremium
	stepDone
)

// prompt pairs a wizard step with its question and placeholder.
type prompt struct {
	step        step
	question    string
	placeholder string
}

var prompts = []prompt{
	{stepAges, "Adult ages (comma separated)", "35, 38"},
	{stepIncome, "Annual household income", "82000"},
	{stepState, "Primary residence state", "CA"},
	{stepSeparationDate, "Job separation date (YYYY-MM-DD)", "2026-06-30"},
	{stepPremium, "Current employer plan full monthly premium", "650"},
}

// Model is the bubbletea model for the guided job-change wizard.
type Model struct {
	engine *calculation.Engine
	wizard *compare.JobChangeWizard

	current int
	input   textinput.Model
	answers map[step]string

	plan *compare.JobChangePlan
	err  error

	width  int
	height int
}

// NewModel creates the wizard model with a fresh analysis engine.
func NewModel() Model {
	engine := calculation.NewEngine()

	input := textinput.New()
	input.Placeholder = prompts[0].placeholder
	input.Focus()
	input.CharLimit = 64
	input.Width = 40

	return Model{
		engine:  engine,
		wizard:  compare.NewJobChangeWizard(engine),
		input:   input,
		answers: map[step]string{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
