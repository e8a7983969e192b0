package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/garyjia/timesheet-recon/internal/config"
	"github.com/garyjia/timesheet-recon/internal/loader"
	"github.com/garyjia/timesheet-recon/internal/mapper"
	"github.com/garyjia/timesheet-recon/internal/recon"
	"github.com/garyjia/timesheet-recon/internal/report"
	"github.com/garyjia/timesheet-recon/internal/repository"
	"github.com/garyjia/timesheet-recon/internal/storage"
	"github.com/garyjia/timesheet-recon/pkg/database"
	"github.com/garyjia/timesheet-recon/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Local overrides, if a .env file is present
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting timesheet reconciliation",
		zap.String("input_dir", cfg.Input.Dir),
		zap.String("output_dir", cfg.Output.Dir))

	// Optional run-history database
	var runRepo *repository.RunRepository
	if cfg.History.Enabled {
		db, err := database.New(database.Config{
			Path:            cfg.History.Path,
			MaxOpenConns:    cfg.History.MaxOpenConns,
			MaxIdleConns:    cfg.History.MaxIdleConns,
			ConnMaxLifetime: cfg.History.ConnMaxLifetime,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to open run-history database", zap.Error(err))
		}
		defer db.Close()

		migrator := database.NewMigrator(db, logger)
		if err := migrator.RunMigrations(cfg.History.MigrationsDir); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}

		runRepo = repository.NewRunRepository(db.DB, logger)
		logRecentRuns(runRepo, logger)
	}

	// Assemble the pipeline
	engine := recon.NewEngine(recon.Config{
		ToleranceMinutes: cfg.Reconciliation.ToleranceMinutes,
		OvernightShifts:  cfg.Reconciliation.OvernightShifts,
		UnbudgetedPolicy: cfg.Reconciliation.UnbudgetedPolicy,
	}, logger)

	runner := recon.NewRunner(
		loader.NewLoader(cfg.Input.Dir, logger),
		mapper.NewMapper(mapper.Config{
			Aliases:  cfg.Mapping.Aliases,
			Defaults: cfg.Mapping.Defaults,
		}, logger),
		engine,
		report.NewWriter(cfg.Report.SheetName, logger),
		storage.NewFolderManager(cfg.Output.Dir, logger),
		runRepo,
		recon.RunnerConfig{
			ReportFileName: cfg.Report.FileName,
			Timestamped:    cfg.Report.Timestamped,
		},
		logger,
	)

	reportPath, err := runner.Run()
	if err != nil {
		logger.Fatal("Reconciliation failed", zap.Error(err))
	}

	logger.Info("Reconciliation completed successfully",
		zap.String("report_path", reportPath))
}

// logRecentRuns surfaces the last few runs from the history ledger.
func logRecentRuns(runRepo *repository.RunRepository, logger *zap.Logger) {
	runs, err := runRepo.ListRecent(3)
	if err != nil {
		logger.Warn("Failed to read run history", zap.Error(err))
		return
	}
	for _, run := range runs {
		logger.Debug("Previous run",
			zap.Time("started_at", run.StartedAt),
			zap.Int("total_records", run.TotalRecords),
			zap.String("report_path", run.ReportPath))
	}
}
