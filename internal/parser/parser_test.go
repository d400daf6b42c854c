package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 17, 45, 0, 0, time.UTC)
}

func TestParse_FieldCountFilter(t *testing.T) {
	lines := []string{
		"1,100,2023-01-01,2023-01-10",
		"2,100,2023-01-05",
		"3,100,2023-01-05,2023-01-10,extra",
		"",
		"4,200,2023-02-01,2023-02-10",
	}

	records, issues := Parse(lines)
	require.Len(t, records, 2)
	assert.Empty(t, issues, "structural rejections are silent")
	assert.Equal(t, 1, records[0].EmployeeID)
	assert.Equal(t, 4, records[1].EmployeeID)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 5, records[1].Line)
}

func TestParse_TrimsFields(t *testing.T) {
	records, issues := Parse([]string{" 7 , 42 ,  2023-05-01 , 2023-05-31  "})
	require.Empty(t, issues)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 7, rec.EmployeeID)
	assert.Equal(t, 42, rec.ProjectID)
	assert.Equal(t, date(2023, time.May, 1), rec.DateFrom)
	assert.Equal(t, date(2023, time.May, 31), rec.DateTo)
}

func TestParse_NullMarkerIsToday(t *testing.T) {
	lines := []string{
		"1,10,2024-01-01,NULL",
		"2,10,2024-01-01,null",
		"3,10,2024-01-01,",
	}
	records, issues := Parse(lines, WithClock(fixedClock))
	require.Empty(t, issues)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, date(2024, time.March, 15), rec.DateTo)
	}
}

func TestParse_DateLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"iso", "2023-04-09"},
		{"slashes", "2023/04/09"},
		{"short", "2023-4-9"},
		{"dotted", "09.04.2023"},
		{"compact", "20230409"},
		{"rfc3339", "2023-04-09T22:10:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, issues := Parse([]string{"1,1," + tt.raw + ",2023-12-31"})
			require.Empty(t, issues)
			require.Len(t, records, 1)
			assert.Equal(t, date(2023, time.April, 9), records[0].DateFrom)
		})
	}
}

func TestParse_CustomLayouts(t *testing.T) {
	records, issues := Parse([]string{"1,1,04/09/2023,04/30/2023"}, WithLayouts("01/02/2006"))
	require.Empty(t, issues)
	require.Len(t, records, 1)
	assert.Equal(t, date(2023, time.April, 9), records[0].DateFrom)
}

func TestParse_InvalidIDsRejected(t *testing.T) {
	lines := []string{
		"abc,10,2023-01-01,2023-01-10",
		"1,x1,2023-01-01,2023-01-10",
		"-5,10,2023-01-01,2023-01-10",
	}

	for _, strict := range []bool{true, false} {
		records, issues := Parse(lines, WithStrict(strict))
		assert.Empty(t, records)
		require.Len(t, issues, 3)
		assert.Equal(t, 1, issues[0].Line)
		assert.Contains(t, issues[0].Reason, "employee id")
		assert.Contains(t, issues[1].Reason, "project id")
		assert.Equal(t, lines[2], issues[2].Raw)
	}
}

func TestParse_StrictRejectsBadDates(t *testing.T) {
	lines := []string{
		"1,10,not-a-date,2023-01-10",
		"2,10,2023-01-10,2023-01-01",
		"3,10,2023-01-01,2023-01-10",
	}

	records, issues := Parse(lines)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].EmployeeID)

	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Reason, ErrInvalidDate.Error())
	assert.Contains(t, issues[1].Reason, ErrReversedRange.Error())
}

func TestParse_RejectsFirstCalendarDay(t *testing.T) {
	lines := []string{
		"4,100,0001-01-01,2023-01-20",
		"5,100,2023-01-01,0001-01-01T00:00:00Z",
	}

	records, issues := Parse(lines)
	assert.Empty(t, records)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Reason, ErrDateOutOfRange.Error())
	assert.Contains(t, issues[1].Reason, "date_to")

	records, issues = Parse(lines[:1], WithStrict(false))
	assert.Empty(t, issues)
	require.Len(t, records, 1)
	assert.False(t, records[0].HasValidRange())
}

func TestParse_LenientKeepsBadDates(t *testing.T) {
	lines := []string{
		"1,10,not-a-date,2023-01-10",
		"2,10,2023-01-10,2023-01-01",
	}

	records, issues := Parse(lines, WithStrict(false))
	assert.Empty(t, issues)
	require.Len(t, records, 2)

	assert.True(t, records[0].DateFrom.IsZero())
	assert.False(t, records[0].HasValidRange())
	assert.True(t, records[1].DateFrom.After(records[1].DateTo))
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2022, time.December, 31, 23, 59, 59, 0, time.FixedZone("X", 3600))
	assert.Equal(t, date(2022, time.December, 31), DateOnly(in))
	assert.True(t, DateOnly(time.Time{}).IsZero())
}
