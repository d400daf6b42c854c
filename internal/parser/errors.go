package parser

import "errors"

var (
	ErrInvalidID      = errors.New("invalid id")
	ErrInvalidDate    = errors.New("invalid date")
	ErrDateOutOfRange = errors.New("date out of range")
	ErrReversedRange  = errors.New("date_from is after date_to")
)
