package handler

import (
	"time"

	"github.com/locvowork/employee_pairs/internal/domain"
)

// MatchResponse is the data payload of a match run.
type MatchResponse struct {
	RunID         string              `json:"run_id"`
	StartedAt     time.Time           `json:"started_at"`
	CompletedAt   time.Time           `json:"completed_at"`
	DurationMs    int64               `json:"duration_ms"`
	LinesRead     int                 `json:"lines_read"`
	RecordsParsed int                 `json:"records_parsed"`
	Issues        []domain.ParseIssue `json:"issues"`
	Rows          []domain.MatchRow   `json:"rows"`
	Total         int                 `json:"total"`
}

// PageQuery binds the paging parameters.
type PageQuery struct {
	Limit  int `query:"limit" validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

// AssignmentQuery binds the stored-assignment filter.
type AssignmentQuery struct {
	PageQuery
	ProjectID int `query:"project_id" validate:"gte=0"`
}
