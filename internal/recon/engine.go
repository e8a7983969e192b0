package recon

import (
	"time"

	"github.com/garyjia/timesheet-recon/internal/models"
	"go.uber.org/zap"
)

// Policy values for records without an expected-hours budget.
const (
	UnbudgetedPolicyTag   = "unbudgeted" // distinct UNBUDGETED classification
	UnbudgetedPolicyMatch = "match"      // treat as a trivial match
)

// Config holds the reconciliation thresholds.
type Config struct {
	// ToleranceMinutes is the band around zero variance still counted
	// as a match.
	ToleranceMinutes int
	// OvernightShifts treats a time-out earlier than time-in as
	// crossing midnight. With the flag off such rows are unusable and
	// classify Incomplete.
	OvernightShifts bool
	// UnbudgetedPolicy decides how records without an expected-hours
	// value classify: UnbudgetedPolicyTag or UnbudgetedPolicyMatch.
	UnbudgetedPolicy string
}

// Engine classifies timesheet records against their budgeted hours.
// Reconcile is a pure function of the record and the configured
// thresholds; the engine holds no per-run state.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates a new reconciliation engine.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.UnbudgetedPolicy == "" {
		cfg.UnbudgetedPolicy = UnbudgetedPolicyTag
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
	}
}

// Reconcile computes actual hours and variance for one record and
// classifies it. Missing clock times leave actual and variance nil.
func (e *Engine) Reconcile(record models.TimesheetRecord) models.ReconciledRecord {
	result := models.ReconciledRecord{TimesheetRecord: record}

	if record.TimeIn == nil || record.TimeOut == nil {
		result.Classification = models.ClassificationIncomplete
		return result
	}

	actual := record.TimeOut.Duration() - record.TimeIn.Duration()
	if actual < 0 {
		if !e.cfg.OvernightShifts {
			e.logger.Warn("Time-out before time-in with overnight shifts disabled",
				zap.String("employee", record.Employee),
				zap.String("file", record.SourceFile),
				zap.Int("row", record.SourceRow))
			result.Classification = models.ClassificationIncomplete
			return result
		}
		actual += 24 * time.Hour
	}
	result.Actual = &actual

	if record.ExpectedHours == nil {
		if e.cfg.UnbudgetedPolicy == UnbudgetedPolicyMatch {
			result.Classification = models.ClassificationMatch
		} else {
			result.Classification = models.ClassificationUnbudgeted
		}
		return result
	}

	expected := time.Duration(*record.ExpectedHours * float64(time.Hour))
	variance := actual - expected
	result.Variance = &variance

	tolerance := time.Duration(e.cfg.ToleranceMinutes) * time.Minute
	switch {
	case variance > tolerance:
		result.Classification = models.ClassificationOverage
	case variance < -tolerance:
		result.Classification = models.ClassificationShortage
	default:
		result.Classification = models.ClassificationMatch
	}
	return result
}

// ReconcileAll reconciles a batch of records in order and assembles the
// report with its summary section.
func (e *Engine) ReconcileAll(records []models.TimesheetRecord) *models.Report {
	report := &models.Report{
		Records: make([]models.ReconciledRecord, 0, len(records)),
	}

	for _, record := range records {
		result := e.Reconcile(record)
		report.Records = append(report.Records, result)

		report.Summary.TotalRecords++
		switch result.Classification {
		case models.ClassificationMatch:
			report.Summary.Matches++
		case models.ClassificationOverage:
			report.Summary.Overages++
		case models.ClassificationShortage:
			report.Summary.Shortages++
		case models.ClassificationIncomplete:
			report.Summary.Incomplete++
		case models.ClassificationUnbudgeted:
			report.Summary.Unbudgeted++
		}

		if result.Variance != nil {
			report.Summary.VarianceSamples++
			report.Summary.TotalVariance += *result.Variance
		}
	}

	if report.Summary.VarianceSamples > 0 {
		report.Summary.AverageVariance = report.Summary.TotalVariance / time.Duration(report.Summary.VarianceSamples)
	}

	e.logger.Info("Reconciliation complete",
		zap.Int("record_count", report.Summary.TotalRecords),
		zap.Int("matches", report.Summary.Matches),
		zap.Int("overages", report.Summary.Overages),
		zap.Int("shortages", report.Summary.Shortages),
		zap.Int("incomplete", report.Summary.Incomplete),
		zap.Int("unbudgeted", report.Summary.Unbudgeted),
		zap.Duration("total_variance", report.Summary.TotalVariance))

	return report
}
