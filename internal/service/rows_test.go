package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/locvowork/employee_pairs/internal/domain"
)

func TestRows(t *testing.T) {
	rows := Rows([]domain.PairMatch{
		{LowerEmployeeID: 1, HigherEmployeeID: 2, ProjectIDs: []int{10, 20}, TotalOverlapDays: 8},
		{LowerEmployeeID: 3, HigherEmployeeID: 4, ProjectIDs: []int{30}, TotalOverlapDays: 2},
	})

	assert.Equal(t, []domain.MatchRow{
		{ID: 0, FirstEmployeeID: 1, SecondEmployeeID: 2, ProjectIDs: "10,20", Days: 8},
		{ID: 1, FirstEmployeeID: 3, SecondEmployeeID: 4, ProjectIDs: "30", Days: 2},
	}, rows)
}

func TestPage(t *testing.T) {
	rows := make([]domain.MatchRow, 25)
	for i := range rows {
		rows[i].ID = i
	}

	tests := []struct {
		name          string
		limit, offset int
		wantLen       int
		wantFirst     int
	}{
		{"all", 0, 0, 25, 0},
		{"first page", 10, 0, 10, 0},
		{"last page", 10, 20, 5, 20},
		{"offset past end", 10, 30, 0, -1},
		{"negative offset", 5, -3, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(rows, tt.limit, tt.offset)
			assert.Len(t, got, tt.wantLen)
			if tt.wantFirst >= 0 {
				assert.Equal(t, tt.wantFirst, got[0].ID)
			}
		})
	}
}
