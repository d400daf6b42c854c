package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/matcher"
	"github.com/locvowork/employee_pairs/internal/metrics"
	"github.com/locvowork/employee_pairs/internal/parser"
)

// Run sources, used as log field and metrics label.
const (
	SourceText     = "text"
	SourceRecords  = "records"
	SourceDatabase = "database"
)

var ErrNoRepository = errors.New("assignment repository is not configured")

// MatchService runs the parse and match pipeline and describes each run.
// It keeps no state between runs and is safe for concurrent use.
type MatchService struct {
	parser  *parser.Parser
	repo    domain.AssignmentRepository
	metrics metrics.Collector
	now     func() time.Time
}

// Option configures a MatchService.
type Option func(*matchServiceConfig)

type matchServiceConfig struct {
	parserOpts []parser.Option
	repo       domain.AssignmentRepository
	metrics    metrics.Collector
	now        func() time.Time
}

// WithParserOptions passes options to the underlying parser.
func WithParserOptions(opts ...parser.Option) Option {
	return func(c *matchServiceConfig) {
		c.parserOpts = append(c.parserOpts, opts...)
	}
}

// WithRepository sets the store used by ComputeFromRepository.
func WithRepository(repo domain.AssignmentRepository) Option {
	return func(c *matchServiceConfig) {
		c.repo = repo
	}
}

// WithMetrics sets the run statistics collector.
func WithMetrics(m metrics.Collector) Option {
	return func(c *matchServiceConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock sets the clock for run timings and the NULL date marker.
func WithClock(now func() time.Time) Option {
	return func(c *matchServiceConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMatchService creates a new MatchService instance
func NewMatchService(opts ...Option) *MatchService {
	cfg := &matchServiceConfig{
		metrics: metrics.NewNop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(cfg)
	}

	parserOpts := append([]parser.Option{parser.WithClock(cfg.now)}, cfg.parserOpts...)
	return &MatchService{
		parser:  parser.New(parserOpts...),
		repo:    cfg.repo,
		metrics: cfg.metrics,
		now:     cfg.now,
	}
}

// Compute parses raw lines and matches the resulting assignments.
func (s *MatchService) Compute(ctx context.Context, lines []string) (*domain.MatchResult, error) {
	start := s.now()
	records, issues := s.parser.Parse(lines)
	return s.match(ctx, SourceText, start, len(lines), records, issues)
}

// ComputeFromRecords matches already typed assignments.
func (s *MatchService) ComputeFromRecords(ctx context.Context, records []domain.Assignment) (*domain.MatchResult, error) {
	return s.match(ctx, SourceRecords, s.now(), 0, records, nil)
}

// ComputeFromRepository loads assignments from the repository and matches them.
func (s *MatchService) ComputeFromRepository(ctx context.Context, filter domain.AssignmentFilter) (*domain.MatchResult, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}

	start := s.now()
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return s.match(ctx, SourceDatabase, start, 0, records, nil)
}

func (s *MatchService) match(
	ctx context.Context,
	source string,
	start time.Time,
	linesRead int,
	records []domain.Assignment,
	issues []domain.ParseIssue,
) (*domain.MatchResult, error) {
	runID := uuid.New().String()
	ctx = logger.WithLogger(ctx, map[string]interface{}{"run_id": runID, "source": source})

	matches, err := matcher.MatchContext(ctx, records)
	completed := s.now()
	elapsed := completed.Sub(start)

	s.metrics.RecordRun(metrics.RunStats{
		Source:          source,
		LinesRead:       linesRead,
		RecordsParsed:   len(records),
		Issues:          len(issues),
		Matches:         len(matches),
		DurationSeconds: elapsed.Seconds(),
		Cancelled:       err != nil,
	})

	if err != nil {
		logger.WarnLog(ctx, "Matching stopped after %s", elapsed)
		return nil, fmt.Errorf("match assignments: %w", err)
	}

	for _, issue := range issues {
		logger.DebugLog(ctx, "Rejected line %d: %s", issue.Line, issue.Reason)
	}
	logger.InfoLog(ctx, "Matched %d pairs from %d records (%d rejected lines) in %s",
		len(matches), len(records), len(issues), elapsed)

	if issues == nil {
		issues = []domain.ParseIssue{}
	}

	return &domain.MatchResult{
		RunID:         runID,
		StartedAt:     start.UTC(),
		CompletedAt:   completed.UTC(),
		DurationMs:    elapsed.Milliseconds(),
		LinesRead:     linesRead,
		RecordsParsed: len(records),
		Issues:        issues,
		Matches:       matches,
	}, nil
}
