package recon

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/garyjia/timesheet-recon/internal/loader"
	"github.com/garyjia/timesheet-recon/internal/mapper"
	"github.com/garyjia/timesheet-recon/internal/models"
	"github.com/garyjia/timesheet-recon/internal/report"
	"github.com/garyjia/timesheet-recon/internal/repository"
	"github.com/garyjia/timesheet-recon/internal/storage"
	"go.uber.org/zap"
)

// Runner executes one batch run: load, map, reconcile, write. The run
// either produces one complete report or fails before writing anything.
type Runner struct {
	loader  *loader.Loader
	mapper  *mapper.Mapper
	engine  *Engine
	writer  *report.Writer
	folders *storage.FolderManager
	runRepo *repository.RunRepository // nil when history is disabled

	reportFileName string
	timestamped    bool
	logger         *zap.Logger
}

// RunnerConfig holds report naming options for the runner.
type RunnerConfig struct {
	ReportFileName string
	Timestamped    bool
}

// NewRunner creates a new Runner. runRepo may be nil to skip run history.
func NewRunner(
	ld *loader.Loader,
	mp *mapper.Mapper,
	engine *Engine,
	writer *report.Writer,
	folders *storage.FolderManager,
	runRepo *repository.RunRepository,
	cfg RunnerConfig,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		loader:         ld,
		mapper:         mp,
		engine:         engine,
		writer:         writer,
		folders:        folders,
		runRepo:        runRepo,
		reportFileName: cfg.ReportFileName,
		timestamped:    cfg.Timestamped,
		logger:         logger,
	}
}

// Run executes the batch and returns the written report path.
func (r *Runner) Run() (string, error) {
	startedAt := time.Now()

	rawRows, err := r.loader.LoadDirectory()
	if err != nil {
		return "", err
	}

	records, err := r.mapper.MapAll(rawRows)
	if err != nil {
		return "", err
	}

	result := r.engine.ReconcileAll(records)

	if _, err := r.folders.EnsureOutputDir(); err != nil {
		return "", err
	}

	reportPath := r.folders.ReportPath(r.reportName(startedAt))
	if err := r.writer.Write(result, reportPath); err != nil {
		return "", err
	}

	if r.runRepo != nil {
		if err := r.recordRun(startedAt, rawRows, result, reportPath); err != nil {
			// History is bookkeeping; the report is already on disk.
			r.logger.Warn("Failed to record run history", zap.Error(err))
		}
	}

	return reportPath, nil
}

// reportName returns the configured file name, with a timestamp suffix
// before the extension when enabled.
func (r *Runner) reportName(startedAt time.Time) string {
	if !r.timestamped {
		return r.reportFileName
	}
	ext := filepath.Ext(r.reportFileName)
	base := strings.TrimSuffix(r.reportFileName, ext)
	return fmt.Sprintf("%s_%s%s", base, startedAt.Format("20060102_150405"), ext)
}

func (r *Runner) recordRun(startedAt time.Time, rawRows []loader.RawRow, result *models.Report, reportPath string) error {
	files := make(map[string]struct{})
	for _, row := range rawRows {
		files[row.File] = struct{}{}
	}

	s := &result.Summary
	return r.runRepo.Create(&models.RunRecord{
		StartedAt:            startedAt,
		InputFiles:           len(files),
		TotalRecords:         s.TotalRecords,
		Matches:              s.Matches,
		Overages:             s.Overages,
		Shortages:            s.Shortages,
		Incomplete:           s.Incomplete,
		Unbudgeted:           s.Unbudgeted,
		TotalVarianceMinutes: int(s.TotalVariance.Minutes()),
		ReportPath:           reportPath,
	})
}
