package report

import "errors"

// ErrOutputNotWritable wraps any failure to save the report workbook.
var ErrOutputNotWritable = errors.New("output location is not writable")
