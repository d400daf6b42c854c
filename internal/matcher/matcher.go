// Package matcher finds employees who worked on the same project at the
// same time and sums how long they did so.
//
// Every pair of assignments inside one project is compared once. Each
// overlapping pair of records is an overlap event: its days are added to the
// employee pair's total and its project id is added to the pair's project set.
// Two separate overlaps on the same project therefore both count toward the
// total while the project id is listed once.
package matcher

import (
	"context"
	"sort"

	"github.com/locvowork/employee_pairs/internal/domain"
)

// cancellation is checked every checkEvery comparisons
const checkEvery = 1024

// Match computes the pair matches for records. See MatchContext.
func Match(records []domain.Assignment) []domain.PairMatch {
	matches, _ := MatchContext(context.Background(), records)
	return matches
}

// MatchContext computes the pair matches for records, stopping early with
// ctx.Err() when ctx is cancelled. Results are ordered by SortMatches.
func MatchContext(ctx context.Context, records []domain.Assignment) ([]domain.PairMatch, error) {
	groups, projectIDs := groupByProject(records)
	acc := newAccumulator()

	comparisons := 0
	for _, projectID := range projectIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		group := groups[projectID]
		for i := 0; i < len(group); i++ {
			a := group[i]
			for j := i; j < len(group); j++ {
				comparisons++
				if comparisons%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return nil, err
					}
				}

				b := group[j]
				if a.EmployeeID == b.EmployeeID {
					continue
				}
				days, ok := OverlapDays(a, b)
				if !ok {
					continue
				}
				acc.add(domain.NewPairKey(a.EmployeeID, b.EmployeeID), a.ProjectID, days)
			}
		}
	}

	matches := acc.results()
	SortMatches(matches)
	return matches, nil
}

// groupByProject splits records by project id, keeping input order inside
// each group. The returned ids are in order of first appearance.
func groupByProject(records []domain.Assignment) (map[int][]domain.Assignment, []int) {
	groups := make(map[int][]domain.Assignment)
	var ids []int
	for _, r := range records {
		if _, ok := groups[r.ProjectID]; !ok {
			ids = append(ids, r.ProjectID)
		}
		groups[r.ProjectID] = append(groups[r.ProjectID], r)
	}
	return groups, ids
}

// SortMatches orders matches by total days descending, then by employee ids.
func SortMatches(matches []domain.PairMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.TotalOverlapDays != b.TotalOverlapDays {
			return a.TotalOverlapDays > b.TotalOverlapDays
		}
		if a.LowerEmployeeID != b.LowerEmployeeID {
			return a.LowerEmployeeID < b.LowerEmployeeID
		}
		return a.HigherEmployeeID < b.HigherEmployeeID
	})
}
