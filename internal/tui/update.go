package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/coverscope/coverscope/internal/compare"
	"github.com/coverscope/coverscope/internal/domain"
)

type planMsg struct {
	plan *compare.JobChangePlan
	err  error
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case planMsg:
		m.plan = msg.plan
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.current >= len(prompts) {
				return m, tea.Quit
			}
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				value = prompts[m.current].placeholder
			}
			m.answers[prompts[m.current].step] = value
			m.current++
			if m.current < len(prompts) {
				m.input.SetValue("")
				m.input.Placeholder = prompts[m.current].placeholder
				return m, nil
			}
			return m, m.runWizard()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runWizard parses the collected answers and executes the job-change flow.
func (m Model) runWizard() tea.Cmd {
	answers := m.answers
	wizard := m.wizard
	return func() tea.Msg {
		input, err := buildInput(answers)
		if err != nil {
			return planMsg{err: err}
		}
		return planMsg{plan: wizard.Run(context.Background(), input)}
	}
}

func buildInput(answers map[step]string) (compare.JobChangeInput, error) {
	ages, err := parseAges(answers[stepAges])
	if err != nil {
		return compare.JobChangeInput{}, err
	}

	income, err := decimal.NewFromString(answers[stepIncome])
	if err != nil {
		return compare.JobChangeInput{}, fmt.Errorf("invalid income %q: %w", answers[stepIncome], err)
	}

	separation, err := time.Parse("2006-01-02", answers[stepSeparationDate])
	if err != nil {
		return compare.JobChangeInput{}, fmt.Errorf("invalid separation date %q: %w", answers[stepSeparationDate], err)
	}

	premium, err := decimal.NewFromString(answers[stepPremium])
	if err != nil {
		return compare.JobChangeInput{}, fmt.Errorf("invalid premium %q: %w", answers[stepPremium], err)
	}

	state := strings.ToUpper(strings.TrimSpace(answers[stepState]))
	household := &domain.HouseholdProfile{
		AdultAges:            ages,
		AnnualIncome:         &income,
		HasEmployerInsurance: true,
		Residences: []domain.Residence{
			{State: state, IsPrimary: true, MonthsPerYear: 12},
		},
	}

	return compare.JobChangeInput{
		Household:      household,
		SeparationDate: separation,
		EvaluationDate: time.Now(),
		CurrentPremium: premium,
	}, nil
}

func parseAges(raw string) ([]int, error) {
	var ages []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		age, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid age %q: %w", part, err)
		}
		ages = append(ages, age)
	}
	if len(ages) == 0 {
		return nil, fmt.Errorf("at least one adult age is required")
	}
	return ages, nil
}
