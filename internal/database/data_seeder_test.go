package database

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/parser"
)

type memoryRepository struct {
	mu   sync.Mutex
	rows []domain.Assignment
}

func (m *memoryRepository) List(context.Context, domain.AssignmentFilter) ([]domain.Assignment, error) {
	return m.rows, nil
}

func (m *memoryRepository) BulkInsert(_ context.Context, a []domain.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, a...)
	return nil
}

func (m *memoryRepository) Truncate(context.Context) error {
	m.rows = nil
	return nil
}

func TestDataSeeder_GenerateIsDeterministic(t *testing.T) {
	size := GetPresetConfig(PresetSmall)
	a := NewDataSeeder(nil, 42)
	b := NewDataSeeder(nil, 42)
	fixed := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	a.now, b.now = fixed, fixed

	first := a.Generate(size)
	require.Len(t, first, size.Rows)
	assert.Equal(t, first, b.Generate(size))

	today := parser.DateOnly(fixed())
	for _, rec := range first {
		assert.GreaterOrEqual(t, rec.EmployeeID, 1)
		assert.LessOrEqual(t, rec.EmployeeID, size.Employees)
		assert.LessOrEqual(t, rec.ProjectID, size.Projects)
		if !rec.DateTo.IsZero() {
			assert.False(t, rec.DateTo.Before(rec.DateFrom))
			assert.False(t, rec.DateTo.After(today))
		}
	}
}

func TestWriteText_RoundTrip(t *testing.T) {
	seeder := NewDataSeeder(nil, 7)
	generated := seeder.Generate(SeedSize{Employees: 5, Projects: 2, Rows: 40})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, generated))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	records, issues := parser.Parse(lines, parser.WithClock(seeder.now))
	require.Empty(t, issues)
	require.Len(t, records, len(generated))
	for i, rec := range records {
		assert.Equal(t, generated[i].EmployeeID, rec.EmployeeID)
		assert.Equal(t, generated[i].DateFrom, rec.DateFrom)
	}
}

func TestDataSeeder_SeedAndClear(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	seeder := NewDataSeeder(repo, 1)

	require.NoError(t, seeder.SeedData(ctx, SeedSize{Employees: 3, Projects: 1, Rows: 2500}))
	assert.Len(t, repo.rows, 2500)

	require.NoError(t, seeder.ClearData(ctx))
	assert.Empty(t, repo.rows)

	assert.Error(t, NewDataSeeder(nil, 1).SeedData(ctx, SeedSize{Employees: 1, Projects: 1, Rows: 1}))
}
