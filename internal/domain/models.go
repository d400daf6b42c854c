package domain

import "time"

// ==================== ASSIGNMENTS ====================

// Assignment represents one employee's tenure on one project.
// DateFrom and DateTo are dates at UTC midnight; a zero value marks an
// invalid date that never overlaps anything.
type Assignment struct {
	EmployeeID int       `json:"emp_id" db:"emp_id"`
	ProjectID  int       `json:"project_id" db:"project_id"`
	DateFrom   time.Time `json:"date_from" db:"date_from"`
	DateTo     time.Time `json:"date_to" db:"date_to"`
	Line       int       `json:"line,omitempty" db:"-"`
}

// HasValidRange reports whether both dates are set.
func (a Assignment) HasValidRange() bool {
	return !a.DateFrom.IsZero() && !a.DateTo.IsZero()
}

// ParseIssue describes an input line that was rejected for a value-level
// problem (bad id, bad date, reversed range).
type ParseIssue struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// ==================== PAIR MATCHES ====================

// PairKey identifies an unordered employee pair. Lower < Higher.
type PairKey struct {
	Lower  int
	Higher int
}

// NewPairKey normalizes two employee ids into a PairKey.
func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lower: a, Higher: b}
}

// PairMatch is the aggregated overlap for one pair of employees across all
// the projects they shared.
type PairMatch struct {
	LowerEmployeeID  int   `json:"lower_employee_id"`
	HigherEmployeeID int   `json:"higher_employee_id"`
	ProjectIDs       []int `json:"project_ids"`
	TotalOverlapDays int   `json:"total_overlap_days"`
}

// Key returns the identity of the match.
func (m PairMatch) Key() PairKey {
	return PairKey{Lower: m.LowerEmployeeID, Higher: m.HigherEmployeeID}
}

// MatchRow is a display row for tables and exports.
type MatchRow struct {
	ID               int    `json:"id"`
	FirstEmployeeID  int    `json:"first_employee_id"`
	SecondEmployeeID int    `json:"second_employee_id"`
	ProjectIDs       string `json:"pids"`
	Days             int    `json:"days"`
}

// MatchResult is the outcome of one matching run.
type MatchResult struct {
	RunID         string       `json:"run_id"`
	StartedAt     time.Time    `json:"started_at"`
	CompletedAt   time.Time    `json:"completed_at"`
	DurationMs    int64        `json:"duration_ms"`
	LinesRead     int          `json:"lines_read"`
	RecordsParsed int          `json:"records_parsed"`
	Issues        []ParseIssue `json:"issues"`
	Matches       []PairMatch  `json:"matches"`
}
