package mapper

import "errors"

// Mapping errors. Each is wrapped with the offending file, row and
// column before it reaches the caller.
var (
	ErrMissingField  = errors.New("required field is absent")
	ErrBadTimeValue  = errors.New("cannot parse time-of-day value")
	ErrBadDateValue  = errors.New("cannot parse date value")
	ErrBadHoursValue = errors.New("cannot parse hours value")
)
