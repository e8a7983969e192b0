package loader

import "errors"

// File format errors. Callers match these with errors.Is; the wrapped
// message carries the offending file name.
var (
	ErrNoInputFiles  = errors.New("no spreadsheet files found in input directory")
	ErrFileFormat    = errors.New("unreadable or malformed spreadsheet")
	ErrMissingHeader = errors.New("sheet has data rows but no header row")
)
