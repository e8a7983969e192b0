package models

import "time"

// Classification constants
const (
	ClassificationMatch      = "MATCH"
	ClassificationOverage    = "OVERAGE"
	ClassificationShortage   = "SHORTAGE"
	ClassificationIncomplete = "INCOMPLETE"
	ClassificationUnbudgeted = "UNBUDGETED"
)

// Classifications lists all classification tags in report order.
var Classifications = []string{
	ClassificationMatch,
	ClassificationOverage,
	ClassificationShortage,
	ClassificationIncomplete,
	ClassificationUnbudgeted,
}

// TimesheetRecord is one mapped row of input data. Optional fields are
// pointers; nil means the source cell was absent or blank.
type TimesheetRecord struct {
	Employee      string     `json:"employee"`
	Date          time.Time  `json:"date"`
	TimeIn        *TimeOfDay `json:"time_in"`
	TimeOut       *TimeOfDay `json:"time_out"`
	ExpectedHours *float64   `json:"expected_hours"`
	Notes         string     `json:"notes"`

	// Source position, kept for error messages and the report.
	SourceFile string `json:"source_file"`
	SourceRow  int    `json:"source_row"`
}

// ReconciledRecord is a TimesheetRecord augmented with computed results.
// Actual and Variance are nil when the record is Incomplete or (for
// Variance) Unbudgeted; they are never filled in with zero.
type ReconciledRecord struct {
	TimesheetRecord
	Actual         *time.Duration `json:"actual"`
	Variance       *time.Duration `json:"variance"`
	Classification string         `json:"classification"`
}

// Summary holds the aggregate section of a report.
type Summary struct {
	TotalRecords int `json:"total_records"`
	Matches      int `json:"matches"`
	Overages     int `json:"overages"`
	Shortages    int `json:"shortages"`
	Incomplete   int `json:"incomplete"`
	Unbudgeted   int `json:"unbudgeted"`

	// Variance totals cover only records that carry a variance, i.e.
	// budgeted records with both clock times present.
	VarianceSamples int           `json:"variance_samples"`
	TotalVariance   time.Duration `json:"total_variance"`
	AverageVariance time.Duration `json:"average_variance"`
}

// Count returns the summary count for a classification tag.
func (s *Summary) Count(classification string) int {
	switch classification {
	case ClassificationMatch:
		return s.Matches
	case ClassificationOverage:
		return s.Overages
	case ClassificationShortage:
		return s.Shortages
	case ClassificationIncomplete:
		return s.Incomplete
	case ClassificationUnbudgeted:
		return s.Unbudgeted
	}
	return 0
}

// Report is the complete output of one run: reconciled rows in input
// order plus the aggregate summary.
type Report struct {
	Records []ReconciledRecord `json:"records"`
	Summary Summary            `json:"summary"`
}
