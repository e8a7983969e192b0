package repository

import (
	"database/sql"
	"fmt"

	"github.com/garyjia/timesheet-recon/internal/models"
	"go.uber.org/zap"
)

// RunRepository handles run-history database operations
type RunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new run record
func (r *RunRepository) Create(run *models.RunRecord) error {
	query := `
		INSERT INTO run_history (
			started_at, input_files, total_records,
			matches, overages, shortages, incomplete, unbudgeted,
			total_variance_minutes, report_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		run.StartedAt,
		run.InputFiles,
		run.TotalRecords,
		run.Matches,
		run.Overages,
		run.Shortages,
		run.Incomplete,
		run.Unbudgeted,
		run.TotalVarianceMinutes,
		run.ReportPath,
	)
	if err != nil {
		r.logger.Error("Failed to record run", zap.Error(err))
		return fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	run.ID = id

	r.logger.Debug("Run recorded", zap.Int64("run_id", id))
	return nil
}

// ListRecent returns the most recent run records, newest first
func (r *RunRepository) ListRecent(limit int) ([]models.RunRecord, error) {
	query := `
		SELECT id, started_at, input_files, total_records,
		       matches, overages, shortages, incomplete, unbudgeted,
		       total_variance_minutes, report_path, created_at
		FROM run_history
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var run models.RunRecord
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.InputFiles,
			&run.TotalRecords,
			&run.Matches,
			&run.Overages,
			&run.Shortages,
			&run.Incomplete,
			&run.Unbudgeted,
			&run.TotalVarianceMinutes,
			&run.ReportPath,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
