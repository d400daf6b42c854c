package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/parser"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(emp, project int, from, to string) domain.Assignment {
	return domain.Assignment{EmployeeID: emp, ProjectID: project, DateFrom: day(from), DateTo: day(to)}
}

func TestMatch_EndToEnd(t *testing.T) {
	lines := []string{
		"1,100,2023-01-01,2023-01-10",
		"2,100,2023-01-05,2023-01-15",
		"3,200,2023-02-01,2023-02-10",
	}
	records, issues := parser.Parse(lines)
	require.Empty(t, issues)

	matches := Match(records)
	// window 2023-01-05..2023-01-10, measured from the later start to the earlier end
	require.Equal(t, []domain.PairMatch{{
		LowerEmployeeID:  1,
		HigherEmployeeID: 2,
		ProjectIDs:       []int{100},
		TotalOverlapDays: 5,
	}}, matches)
}

func TestMatch_InclusiveBoundary(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-10"),
		rec(2, 10, "2024-01-10", "2024-01-20"),
	})
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].TotalOverlapDays)
	assert.Equal(t, []int{10}, matches[0].ProjectIDs)
}

func TestMatch_NoOverlap(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-05"),
		rec(2, 10, "2024-01-06", "2024-01-10"),
	})
	assert.Empty(t, matches)
}

func TestMatch_CrossProjectAggregation(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(2, 10, "2024-01-01", "2024-01-10"),
		rec(1, 10, "2024-01-07", "2024-01-20"),
		rec(1, 20, "2024-03-01", "2024-03-06"),
		rec(2, 20, "2024-02-01", "2024-03-31"),
	})
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].LowerEmployeeID)
	assert.Equal(t, 2, matches[0].HigherEmployeeID)
	assert.Equal(t, []int{10, 20}, matches[0].ProjectIDs)
	assert.Equal(t, 8, matches[0].TotalOverlapDays)
}

func TestMatch_SameProjectEventsAccumulate(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-31"),
		rec(2, 10, "2024-01-01", "2024-01-04"),
		rec(2, 10, "2024-01-10", "2024-01-20"),
	})
	require.Len(t, matches, 1)
	assert.Equal(t, []int{10}, matches[0].ProjectIDs)
	assert.Equal(t, 3+10, matches[0].TotalOverlapDays)
}

func TestMatch_SelfExclusion(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-31"),
		rec(1, 10, "2024-01-05", "2024-01-20"),
		rec(3, 10, "2024-06-01", "2024-06-30"),
	})
	assert.Empty(t, matches)
}

func TestMatch_PairNormalizationAndOrdering(t *testing.T) {
	matches := Match([]domain.Assignment{
		rec(9, 1, "2024-01-01", "2024-01-31"),
		rec(4, 1, "2024-01-01", "2024-01-11"),
		rec(7, 1, "2024-01-01", "2024-01-21"),
	})
	require.Len(t, matches, 3)

	for _, m := range matches {
		assert.Less(t, m.LowerEmployeeID, m.HigherEmployeeID)
	}
	assert.Equal(t, domain.PairKey{Lower: 7, Higher: 9}, matches[0].Key())
	assert.Equal(t, 20, matches[0].TotalOverlapDays)
	assert.Equal(t, domain.PairKey{Lower: 4, Higher: 7}, matches[1].Key())
	assert.Equal(t, domain.PairKey{Lower: 4, Higher: 9}, matches[2].Key())
	assert.Equal(t, 10, matches[2].TotalOverlapDays)
}

func TestMatch_Idempotent(t *testing.T) {
	records := []domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-31"),
		rec(2, 10, "2024-01-15", "2024-02-15"),
		rec(3, 20, "2024-01-01", "2024-12-31"),
		rec(2, 20, "2024-05-01", "2024-05-31"),
	}
	assert.Equal(t, Match(records), Match(records))
}

func TestMatch_InvalidAndReversedRanges(t *testing.T) {
	t.Run("invalid date never overlaps", func(t *testing.T) {
		bad := rec(1, 10, "2024-01-01", "2024-01-31")
		bad.DateFrom = time.Time{}
		matches := Match([]domain.Assignment{bad, rec(2, 10, "2024-01-01", "2024-01-31")})
		assert.Empty(t, matches)
	})

	t.Run("reversed range clamps to zero", func(t *testing.T) {
		matches := Match([]domain.Assignment{
			rec(1, 10, "2024-01-05", "2024-01-03"),
			rec(2, 10, "2024-01-01", "2024-01-10"),
		})
		require.Len(t, matches, 1)
		assert.Equal(t, 0, matches[0].TotalOverlapDays)
	})
}

func TestMatch_Empty(t *testing.T) {
	assert.Empty(t, Match(nil))
}

func TestMatchContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	matches, err := MatchContext(ctx, []domain.Assignment{
		rec(1, 10, "2024-01-01", "2024-01-31"),
		rec(2, 10, "2024-01-01", "2024-01-31"),
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, matches)
}

// cancelAfterContext reports cancellation once Err has been called more
// than allowed times.
type cancelAfterContext struct {
	context.Context
	allowed int
	calls   int
}

func (c *cancelAfterContext) Err() error {
	c.calls++
	if c.calls > c.allowed {
		return context.Canceled
	}
	return nil
}

func TestMatchContext_CancelledInsideGroup(t *testing.T) {
	// 60 records in one project give 60*61/2 = 1830 comparisons, so the
	// check after 1024 comparisons runs before the group finishes.
	records := make([]domain.Assignment, 0, 60)
	for emp := 1; emp <= 60; emp++ {
		records = append(records, rec(emp, 10, "2024-01-01", "2024-01-31"))
	}

	ctx := &cancelAfterContext{Context: context.Background(), allowed: 1}
	matches, err := MatchContext(ctx, records)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, matches)
	assert.Equal(t, 2, ctx.calls)

	full, err := MatchContext(&cancelAfterContext{Context: context.Background(), allowed: 10}, records)
	require.NoError(t, err)
	assert.Len(t, full, 60*59/2)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day("2024-02-28"), day("2024-02-28")))
	assert.Equal(t, 2, DaysBetween(day("2024-02-28"), day("2024-03-01")))
	assert.Equal(t, -1, DaysBetween(day("1969-12-31"), day("1969-12-30")))
	assert.Equal(t, 2921606, DaysBetween(day("1999-12-01"), day("9999-01-01")))
}
