package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/parser"
	"github.com/locvowork/employee_pairs/internal/repository/builder"
)

const assignmentTable = "project_assignment"

const schema = `
	CREATE TABLE IF NOT EXISTS project_assignment (
		id         BIGSERIAL PRIMARY KEY,
		emp_id     INTEGER NOT NULL CHECK (emp_id >= 0),
		project_id INTEGER NOT NULL CHECK (project_id >= 0),
		date_from  DATE    NOT NULL,
		date_to    DATE    NULL
	);
	CREATE INDEX IF NOT EXISTS idx_project_assignment_project ON project_assignment (project_id);
`

// AssignmentRepository manages project_assignment rows
type AssignmentRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAssignmentRepository creates a new repository. A NULL date_to is read as
// the current date.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db, now: time.Now}
}

var _ domain.AssignmentRepository = (*AssignmentRepository)(nil)

// EnsureSchema creates the table and index when missing.
func (r *AssignmentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// List retrieves assignments, optionally restricted to one project
func (r *AssignmentRepository) List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	today := parser.DateOnly(r.now())
	var assignments []domain.Assignment
	for rows.Next() {
		var (
			a      domain.Assignment
			dateTo sql.NullTime
		)
		if err := rows.Scan(&a.EmployeeID, &a.ProjectID, &a.DateFrom, &dateTo); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.DateFrom = parser.DateOnly(a.DateFrom)
		if dateTo.Valid {
			a.DateTo = parser.DateOnly(dateTo.Time)
		} else {
			a.DateTo = today
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}

func buildListQuery(filter domain.AssignmentFilter) (string, []interface{}, error) {
	b := builder.NewSQLBuilder().
		Select("emp_id", "project_id", "date_from", "date_to").
		From(assignmentTable)
	if filter.ProjectID > 0 {
		b.Where("project_id = ?", filter.ProjectID)
	}
	return b.OrderBy("id").Limit(filter.Limit).Offset(filter.Offset).BuildSafe()
}

// BulkInsert stores assignments in a single transaction
func (r *AssignmentRepository) BulkInsert(ctx context.Context, assignments []domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert, _, err := builder.NewSQLBuilder().
		Insert(assignmentTable, "emp_id", "project_id", "date_from", "date_to").
		BuildSafe()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		var dateTo interface{}
		if !a.DateTo.IsZero() {
			dateTo = a.DateTo
		}
		if _, err := stmt.ExecContext(ctx, a.EmployeeID, a.ProjectID, a.DateFrom, dateTo); err != nil {
			return fmt.Errorf("failed to insert assignment (emp %d, project %d): %w", a.EmployeeID, a.ProjectID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// Truncate removes all assignments
func (r *AssignmentRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE TABLE project_assignment RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate assignments: %w", err)
	}
	return nil
}
