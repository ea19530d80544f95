package calculation

import (
	"time"

	"github.com/coverscope/coverscope/internal/domain"
)

// sepWindowRule defines a qualifying event's enrollment window as day offsets
// from the event date.
type sepWindowRule struct {
	daysBefore    int
	daysAfter     int
	retroactive   bool // coverage effective on the event date itself
	requiredDocs  []string
}

var sepRules = map[domain.SEPReason]sepWindowRule{
	domain.SEPLossOfCoverage: {
		daysBefore: 60, daysAfter: 60,
		requiredDocs: []string{
			"Letter from the prior insurer or employer confirming the coverage end date",
		},
	},
	domain.SEPMoved: {
		daysBefore: 60, daysAfter: 60,
		requiredDocs: []string{
			"Proof of the new address (lease, deed, or utility bill)",
			"Proof of prior coverage within the last 60 days",
		},
	},
	domain.SEPMarriage: {
		daysAfter: 60,
		requiredDocs: []string{
			"Marriage certificate",
			"Proof that at least one spouse had coverage in the prior 60 days",
		},
	},
	domain.SEPDivorce: {
		daysAfter: 60,
		requiredDocs: []string{
			"Divorce or legal-separation decree",
			"Documentation of coverage lost through the former spouse",
		},
	},
	domain.SEPBirthAdoption: {
		daysAfter: 60, retroactive: true,
		requiredDocs: []string{
			"Birth certificate, adoption record, or placement letter",
		},
	},
	domain.SEPJobChange: {
		daysAfter: 60,
		requiredDocs: []string{
			"Separation or offer letter showing the coverage change date",
			"COBRA election notice, if one was issued",
		},
	},
	domain.SEPIncomeChange: {
		daysAfter: 30,
		requiredDocs: []string{
			"Pay stubs or documentation of the income change",
			"Current marketplace eligibility notice",
		},
	},
	domain.SEPOther: {
		daysAfter: 60,
		requiredDocs: []string{
			"Documentation supporting the qualifying event",
		},
	},
}

// SEPCalculator computes special enrollment periods from qualifying life
// events.
type SEPCalculator struct{}

// NewSEPCalculator creates a calculator.
func NewSEPCalculator() *SEPCalculator {
	return &SEPCalculator{}
}

// Calculate builds the enrollment window for a qualifying event, evaluated as
// of evaluationDate. The result is immutable once computed: IsActive is false
// both before the window opens and after it closes, and DaysRemaining goes
// negative after expiry.
func (sc *SEPCalculator) Calculate(reason domain.SEPReason, eventDate, evaluationDate time.Time) *domain.SpecialEnrollmentPeriod {
	rule, ok := sepRules[reason]
	if !ok {
		rule = sepRules[domain.SEPOther]
		reason = domain.SEPOther
	}

	eventDay := truncateToDay(eventDate)
	evalDay := truncateToDay(evaluationDate)

	windowStart := eventDay.AddDate(0, 0, -rule.daysBefore)
	windowEnd := eventDay.AddDate(0, 0, rule.daysAfter)

	daysRemaining := daysBetween(evalDay, windowEnd)
	isActive := !evalDay.Before(windowStart) && !evalDay.After(windowEnd)

	return &domain.SpecialEnrollmentPeriod{
		Reason:                reason,
		EventDate:             eventDay,
		WindowStart:           windowStart,
		WindowEnd:             windowEnd,
		CoverageEffectiveDate: coverageEffectiveDate(rule, eventDay, evalDay),
		DaysRemaining:         daysRemaining,
		IsActive:              isActive,
		Urgency:               sepUrgency(daysRemaining),
		RequiredDocuments:     rule.requiredDocs,
	}
}

// coverageEffectiveDate is the event date itself for retroactive events
// (birth/adoption); otherwise the first of the month after the evaluation
// date.
func coverageEffectiveDate(rule sepWindowRule, eventDay, evalDay time.Time) time.Time {
	if rule.retroactive {
		return eventDay
	}
	firstOfNext := time.Date(evalDay.Year(), evalDay.Month(), 1, 0, 0, 0, 0, evalDay.Location()).AddDate(0, 1, 0)
	return firstOfNext
}

func sepUrgency(daysRemaining int) domain.SEPUrgency {
	switch {
	case daysRemaining <= 7:
		return domain.SEPUrgencyCritical
	case daysRemaining <= 14:
		return domain.SEPUrgencyHigh
	case daysRemaining <= 30:
		return domain.SEPUrgencyModerate
	default:
		return domain.SEPUrgencyLow
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
