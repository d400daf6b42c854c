package database

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/parser"
	"github.com/locvowork/employee_pairs/pkg/dataflow"
)

const (
	insertBatchSize = 1000
	insertWorkers   = 4
)

// DataSeeder generates sample assignments and stores them.
type DataSeeder struct {
	repo domain.AssignmentRepository
	rng  *rand.Rand
	now  func() time.Time
}

// NewDataSeeder creates a seeder. repo may be nil when only files are written.
func NewDataSeeder(repo domain.AssignmentRepository, seed int64) *DataSeeder {
	return &DataSeeder{
		repo: repo,
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

// SeedSize controls how many assignments are generated.
type SeedSize struct {
	Employees int
	Projects  int
	Rows      int
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
	PresetXLarge SeedPreset = "xlarge"
)

// GetPresetConfig returns the size for a preset, defaulting to small.
func GetPresetConfig(preset SeedPreset) SeedSize {
	switch preset {
	case PresetMedium:
		return SeedSize{Employees: 100, Projects: 20, Rows: 1000}
	case PresetLarge:
		return SeedSize{Employees: 1000, Projects: 100, Rows: 20000}
	case PresetXLarge:
		return SeedSize{Employees: 5000, Projects: 250, Rows: 100000}
	default:
		return SeedSize{Employees: 10, Projects: 3, Rows: 30}
	}
}

// Generate builds random assignments within the last five years. About one
// in ten assignments is still open (no end date).
func (ds *DataSeeder) Generate(size SeedSize) []domain.Assignment {
	if size.Employees <= 0 || size.Projects <= 0 || size.Rows <= 0 {
		return nil
	}

	today := parser.DateOnly(ds.now())
	windowStart := today.AddDate(-5, 0, 0)
	windowDays := int(today.Sub(windowStart).Hours() / 24)

	assignments := make([]domain.Assignment, 0, size.Rows)
	for i := 0; i < size.Rows; i++ {
		from := windowStart.AddDate(0, 0, ds.rng.Intn(windowDays))
		a := domain.Assignment{
			EmployeeID: ds.rng.Intn(size.Employees) + 1,
			ProjectID:  ds.rng.Intn(size.Projects) + 1,
			DateFrom:   from,
		}
		if ds.rng.Intn(10) != 0 {
			a.DateTo = from.AddDate(0, 0, ds.rng.Intn(365)+1)
			if a.DateTo.After(today) {
				a.DateTo = today
			}
		}
		assignments = append(assignments, a)
	}
	return assignments
}

// WriteText writes assignments in the "emp,project,from,to" line format.
// Open assignments are written with the NULL marker.
func WriteText(w io.Writer, assignments []domain.Assignment) error {
	bw := bufio.NewWriter(w)
	for _, a := range assignments {
		to := parser.NullMarker
		if !a.DateTo.IsZero() {
			to = a.DateTo.Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(bw, "%d,%d,%s,%s\n", a.EmployeeID, a.ProjectID, a.DateFrom.Format("2006-01-02"), to); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SeedData generates assignments and stores them through the repository.
func (ds *DataSeeder) SeedData(ctx context.Context, size SeedSize) error {
	if ds.repo == nil {
		return fmt.Errorf("seeder has no repository")
	}

	start := time.Now()
	assignments := ds.Generate(size)
	batches := dataflow.Batches(assignments, insertBatchSize)

	err := dataflow.ForEach(ctx, batches, func(ctx context.Context, batch []domain.Assignment) error {
		return ds.repo.BulkInsert(ctx, batch)
	},
		dataflow.WithWorkers(insertWorkers),
		dataflow.WithRetry(2, dataflow.LinearBackoff(200*time.Millisecond)),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignments: %w", err)
	}

	logger.InfoLog(ctx, "Seeded %d assignments (%d employees, %d projects) in %s",
		len(assignments), size.Employees, size.Projects, time.Since(start))
	return nil
}

// ClearData removes every stored assignment.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	if ds.repo == nil {
		return fmt.Errorf("seeder has no repository")
	}
	if err := ds.repo.Truncate(ctx); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Cleared all assignments")
	return nil
}
