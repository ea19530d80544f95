package calculation

import (
	"sort"
	"time"

	"github.com/coverscope/coverscope/internal/domain"
)

// milestoneInfo is the static catalog entry for one milestone age.
type milestoneInfo struct {
	event   string
	impacts []string
	actions []string
}

// MilestoneAges lists the coverage-relevant birthdays, ascending.
var MilestoneAges = []int{26, 30, 40, 50, 60, 64, 65}

// milestoneCatalog describes each milestone. Ages 26 and 65 carry the richer
// action lists: losing parent-plan coverage and Medicare initial enrollment.
var milestoneCatalog = map[int]milestoneInfo{
	26: {
		event: "Aging off a parent's health plan",
		impacts: []string{
			"Coverage under a parent's plan ends at 26",
			"A 60-day special enrollment window opens around the birthday",
		},
		actions: []string{
			"Compare marketplace plans before the birthday month",
			"Check employer coverage eligibility if employed",
			"Collect proof of prior coverage for the enrollment application",
			"Budget for the first solo premium",
		},
	},
	30: {
		event: "Last year of catastrophic-plan eligibility",
		impacts: []string{
			"Catastrophic metal tier closes to most enrollees at 30",
		},
		actions: []string{
			"Price bronze and silver plans as replacements",
		},
	},
	40: {
		event: "Age-rating curve begins climbing",
		impacts: []string{
			"Premium age factors rise faster from the early 40s onward",
		},
		actions: []string{
			"Re-shop coverage annually; small factor changes compound",
		},
	},
	50: {
		event: "Premium acceleration and screening age",
		impacts: []string{
			"Age-rated premiums accelerate through the 50s",
			"Preventive screening schedule expands",
		},
		actions: []string{
			"Consider long-term-care coverage while rates are still age-favorable",
		},
	},
	60: {
		event: "Pre-Medicare bridge planning window",
		impacts: []string{
			"Premiums approach the 3x cap of the age curve",
		},
		actions: []string{
			"Plan bridge coverage through 65 (marketplace, COBRA, or retiree plan)",
			"Model subsidy eligibility if retiring before 65",
		},
	},
	64: {
		event: "Medicare enrollment preparation year",
		impacts: []string{
			"The Medicare initial enrollment period opens 3 months before the 65th birthday",
		},
		actions: []string{
			"Gather work history for premium-free Part A verification",
			"Compare Medigap vs Medicare Advantage before the window opens",
		},
	},
	65: {
		event: "Medicare initial enrollment period",
		impacts: []string{
			"Original Medicare becomes the primary coverage path",
			"Late enrollment penalties accrue for life if the window is missed",
			"Marketplace subsidies end once Medicare-eligible",
		},
		actions: []string{
			"Enroll in Part A and Part B during the 7-month initial window",
			"Choose between Medigap plus Part D and a Medicare Advantage plan",
			"Cancel marketplace coverage effective the Medicare start date",
			"Review IRMAA exposure if income is above the first bracket",
		},
	},
}

// AgeTransitionAnalyzer enumerates upcoming milestone birthdays for a member.
type AgeTransitionAnalyzer struct{}

// NewAgeTransitionAnalyzer creates an analyzer.
func NewAgeTransitionAnalyzer() *AgeTransitionAnalyzer {
	return &AgeTransitionAnalyzer{}
}

// UpcomingTransitions returns the milestones still ahead of the member,
// sorted ascending by days-until. A member older than every milestone gets an
// empty list.
func (ata *AgeTransitionAnalyzer) UpcomingTransitions(birthDate, evaluationDate time.Time) []domain.AgeTransition {
	transitions := []domain.AgeTransition{}

	for _, milestone := range MilestoneAges {
		milestoneDate := birthDate.AddDate(milestone, 0, 0)
		if !milestoneDate.After(evaluationDate) {
			continue
		}
		daysUntil := int(milestoneDate.Sub(evaluationDate).Hours() / 24)
		info := milestoneCatalog[milestone]
		transitions = append(transitions, domain.AgeTransition{
			MilestoneAge: milestone,
			Date:         milestoneDate,
			DaysUntil:    daysUntil,
			Event:        info.event,
			Impacts:      info.impacts,
			Actions:      info.actions,
			Urgency:      transitionUrgency(daysUntil),
		})
	}

	sort.Slice(transitions, func(i, j int) bool {
		return transitions[i].DaysUntil < transitions[j].DaysUntil
	})
	return transitions
}

// HouseholdTransitions merges every member's upcoming milestones into one
// ascending list.
func (ata *AgeTransitionAnalyzer) HouseholdTransitions(birthDates []time.Time, evaluationDate time.Time) []domain.AgeTransition {
	all := []domain.AgeTransition{}
	for _, birthDate := range birthDates {
		all = append(all, ata.UpcomingTransitions(birthDate, evaluationDate)...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].DaysUntil < all[j].DaysUntil
	})
	return all
}

func transitionUrgency(daysUntil int) domain.SEPUrgency {
	switch {
	case daysUntil <= 90:
		return domain.SEPUrgencyCritical
	case daysUntil <= 180:
		return domain.SEPUrgencyHigh
	case daysUntil <= 365:
		return domain.SEPUrgencyModerate
	default:
		return domain.SEPUrgencyLow
	}
}
