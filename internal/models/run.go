package models

import "time"

// RunRecord is one entry in the optional run-history ledger: what a
// batch run read, how its records classified, and where the report went.
type RunRecord struct {
	ID                   int64     `json:"id"`
	StartedAt            time.Time `json:"started_at"`
	InputFiles           int       `json:"input_files"`
	TotalRecords         int       `json:"total_records"`
	Matches              int       `json:"matches"`
	Overages             int       `json:"overages"`
	Shortages            int       `json:"shortages"`
	Incomplete           int       `json:"incomplete"`
	Unbudgeted           int       `json:"unbudgeted"`
	TotalVarianceMinutes int       `json:"total_variance_minutes"`
	ReportPath           string    `json:"report_path"`
	CreatedAt            time.Time `json:"created_at"`
}
