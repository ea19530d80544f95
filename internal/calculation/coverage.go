package calculation

import (
	"sort"
	"strings"

	"github.com/coverscope/coverscope/internal/domain"
)

// CoverageScorer maps a household's multi-state footprint to a 0-100 network
// coverage score. Pure and total: any input produces a score.
type CoverageScorer struct {
	PopularStates      map[string]bool
	AdjacentStatePairs map[string]bool
}

// NewCoverageScorer creates a scorer backed by the default state tables.
func NewCoverageScorer() *CoverageScorer {
	return &CoverageScorer{
		PopularStates:      domain.DefaultPopularStates(),
		AdjacentStatePairs: domain.DefaultAdjacentStatePairs(),
	}
}

// NewCoverageScorerWithTables creates a scorer from a loaded reference set.
func NewCoverageScorerWithTables(tables *domain.ReferenceTables) *CoverageScorer {
	return &CoverageScorer{
		PopularStates:      tables.PopularStates,
		AdjacentStatePairs: tables.AdjacentStatePairs,
	}
}

// Score computes the coverage score for a deduplicated set of state codes.
// Rules apply in priority order: no states 50, one state 90, all-popular 85,
// recognized adjacent pair 75, five or more states 80, otherwise 85.
func (cs *CoverageScorer) Score(states []string) int {
	switch {
	case len(states) == 0:
		return 50
	case len(states) == 1:
		return 90
	}

	allPopular := true
	for _, state := range states {
		if !cs.PopularStates[state] {
			allPopular = false
			break
		}
	}
	if allPopular {
		return 85
	}

	if len(states) == 2 && cs.isAdjacentPair(states[0], states[1]) {
		return 75
	}

	if len(states) >= 5 {
		return 80
	}

	return 85
}

// isAdjacentPair checks the pair against the adjacency table regardless of
// argument order.
func (cs *CoverageScorer) isAdjacentPair(a, b string) bool {
	pair := []string{a, b}
	sort.Strings(pair)
	return cs.AdjacentStatePairs[strings.Join(pair, "-")]
}
