package service

import (
	"strconv"
	"strings"

	"github.com/locvowork/employee_pairs/internal/domain"
)

// Rows converts matches into display rows. The row id is the position in
// matches, which MatchContext already orders by days descending.
func Rows(matches []domain.PairMatch) []domain.MatchRow {
	rows := make([]domain.MatchRow, len(matches))
	for i, m := range matches {
		rows[i] = domain.MatchRow{
			ID:               i,
			FirstEmployeeID:  m.LowerEmployeeID,
			SecondEmployeeID: m.HigherEmployeeID,
			ProjectIDs:       FormatProjectIDs(m.ProjectIDs),
			Days:             m.TotalOverlapDays,
		}
	}
	return rows
}

// FormatProjectIDs joins project ids with commas, e.g. "10,20".
func FormatProjectIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Page returns rows[offset:offset+limit], clamped to the slice bounds.
// A limit <= 0 returns everything after offset.
func Page(rows []domain.MatchRow, limit, offset int) []domain.MatchRow {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []domain.MatchRow{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}
