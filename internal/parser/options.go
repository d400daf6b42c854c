package parser

import (
	"time"
)

// Option configures the behavior of a Parser.
type Option func(*config)

type config struct {
	// strict rejects lines with unparseable dates or DateFrom after DateTo.
	// When false, bad dates become the zero time and the record is kept.
	strict  bool
	layouts []string
	now     func() time.Time
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		strict:  true,
		layouts: DefaultLayouts,
		now:     time.Now,
	}
}

// WithStrict toggles strict date validation. Default is true.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithLayouts replaces the accepted date layouts. Empty input keeps the defaults.
func WithLayouts(layouts ...string) Option {
	return func(c *config) {
		if len(layouts) > 0 {
			c.layouts = layouts
		}
	}
}

// WithClock sets the clock used to resolve the NULL date marker.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
