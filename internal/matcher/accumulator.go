package matcher

import (
	"sort"

	"github.com/locvowork/employee_pairs/internal/domain"
)

type pairTotals struct {
	projects map[int]struct{}
	days     int
}

// accumulator is owned by a single MatchContext call.
type accumulator struct {
	pairs map[domain.PairKey]*pairTotals
}

func newAccumulator() *accumulator {
	return &accumulator{pairs: make(map[domain.PairKey]*pairTotals)}
}

func (acc *accumulator) add(key domain.PairKey, projectID, days int) {
	totals, ok := acc.pairs[key]
	if !ok {
		totals = &pairTotals{projects: make(map[int]struct{})}
		acc.pairs[key] = totals
	}
	totals.projects[projectID] = struct{}{}
	totals.days += days
}

func (acc *accumulator) results() []domain.PairMatch {
	matches := make([]domain.PairMatch, 0, len(acc.pairs))
	for key, totals := range acc.pairs {
		projectIDs := make([]int, 0, len(totals.projects))
		for id := range totals.projects {
			projectIDs = append(projectIDs, id)
		}
		sort.Ints(projectIDs)

		matches = append(matches, domain.PairMatch{
			LowerEmployeeID:  key.Lower,
			HigherEmployeeID: key.Higher,
			ProjectIDs:       projectIDs,
			TotalOverlapDays: totals.days,
		})
	}
	return matches
}
