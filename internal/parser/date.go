package parser

import (
	"fmt"
	"strings"
	"time"
)

// NullMarker stands for "still assigned" and resolves to today.
const NullMarker = "NULL"

// DefaultLayouts are tried in order when parsing a date field.
var DefaultLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"02.01.2006",
	"20060102",
	time.RFC3339,
}

// DateOnly drops the time of day and pins the calendar date to UTC midnight.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// normalizeDate parses a raw date field. 0001-01-01 is rejected since the
// zero time marks an unset date. An empty field or the NULL marker
// yields today's date.
func (p *Parser) normalizeDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, NullMarker) {
		return DateOnly(p.cfg.now()), nil
	}

	for _, layout := range p.cfg.layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if d := DateOnly(t); !d.IsZero() {
			return d, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateOutOfRange, s)
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
