package domain

import "context"

// AssignmentFilter defines criteria for listing stored assignments
type AssignmentFilter struct {
	ProjectID int
	Limit     int
	Offset    int
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	List(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	BulkInsert(ctx context.Context, assignments []Assignment) error
	Truncate(ctx context.Context) error
}
