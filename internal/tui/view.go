package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Job Change Wizard"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press esc to quit"))
		b.WriteString("\n")
		return b.String()
	}

	if m.plan != nil {
		b.WriteString(resultStyle.Render(m.renderPlan()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press enter or esc to quit"))
		b.WriteString("\n")
		return b.String()
	}

	for i := 0; i < m.current; i++ {
		b.WriteString(labelStyle.Render(prompts[i].question))
		b.WriteString(": " + m.answers[prompts[i].step] + "\n")
	}

	if m.current < len(prompts) {
		b.WriteString(labelStyle.Render(prompts[m.current].question))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter to continue, esc to quit"))
	} else {
		b.WriteString("\nAnalyzing...\n")
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPlan() string {
	var b strings.Builder

	if m.plan.SEP != nil {
		if m.plan.SEP.IsActive {
			b.WriteString(fmt.Sprintf("Enrollment window: open, %d days remaining (closes %s)\n",
				m.plan.SEP.DaysRemaining, m.plan.SEP.WindowEnd.Format("2006-01-02")))
		} else {
			b.WriteString("Enrollment window: closed\n")
		}
	}
	b.WriteString(fmt.Sprintf("COBRA continuation: $%s/month\n", m.plan.COBRAMonthly.Round(0)))

	if m.plan.Marketplace != nil {
		b.WriteString(fmt.Sprintf("Marketplace: $%s to $%s/month",
			m.plan.Marketplace.MonthlyCost.Low.Round(0), m.plan.Marketplace.MonthlyCost.High.Round(0)))
		if m.plan.Marketplace.Subsidy != nil && m.plan.Marketplace.Subsidy.MonthlySubsidy.IsPositive() {
			b.WriteString(fmt.Sprintf(" before a $%s/month subsidy",
				m.plan.Marketplace.Subsidy.MonthlySubsidy.Round(0)))
		}
		b.WriteString("\n")
	}

	if len(m.plan.Recommendation) > 0 {
		b.WriteString("\n")
		for _, line := range m.plan.Recommendation {
			b.WriteString("  - " + line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
