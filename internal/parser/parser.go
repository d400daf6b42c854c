// Package parser turns raw assignment lines into typed records.
//
// A line has the form "employeeId,projectId,dateFrom,dateTo". Lines that do
// not split into exactly four fields are dropped without a trace. Lines that
// have four fields but carry bad values are rejected and reported as
// domain.ParseIssue entries.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/locvowork/employee_pairs/internal/domain"
)

const (
	delimiter  = ","
	fieldCount = 4
)

// Parser converts lines to assignments. It holds no state between calls.
type Parser struct {
	cfg *config
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return &Parser{cfg: cfg}
}

// Parse is a shorthand for New(opts...).Parse(lines).
func Parse(lines []string, opts ...Option) ([]domain.Assignment, []domain.ParseIssue) {
	return New(opts...).Parse(lines)
}

// Parse converts every well-formed line into an Assignment, in input order.
func (p *Parser) Parse(lines []string) ([]domain.Assignment, []domain.ParseIssue) {
	records := make([]domain.Assignment, 0, len(lines))
	var issues []domain.ParseIssue

	for i, line := range lines {
		fields := strings.Split(line, delimiter)
		if len(fields) != fieldCount {
			continue
		}

		rec, err := p.parseFields(fields)
		if err != nil {
			issues = append(issues, domain.ParseIssue{
				Line:   i + 1,
				Raw:    line,
				Reason: err.Error(),
			})
			continue
		}
		rec.Line = i + 1
		records = append(records, rec)
	}

	return records, issues
}

func (p *Parser) parseFields(fields []string) (domain.Assignment, error) {
	empID, err := parseID(fields[0])
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("employee id: %w", err)
	}
	projectID, err := parseID(fields[1])
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("project id: %w", err)
	}

	from, err := p.normalizeDate(fields[2])
	if err != nil && p.cfg.strict {
		return domain.Assignment{}, fmt.Errorf("date_from: %w", err)
	}
	to, err := p.normalizeDate(fields[3])
	if err != nil && p.cfg.strict {
		return domain.Assignment{}, fmt.Errorf("date_to: %w", err)
	}

	if p.cfg.strict && from.After(to) {
		return domain.Assignment{}, fmt.Errorf("%w: %s > %s", ErrReversedRange,
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	return domain.Assignment{
		EmployeeID: empID,
		ProjectID:  projectID,
		DateFrom:   from,
		DateTo:     to,
	}, nil
}

func parseID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}
