package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Input          InputConfig          `mapstructure:"input"`
	Output         OutputConfig         `mapstructure:"output"`
	Mapping        MappingConfig        `mapstructure:"mapping"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Report         ReportConfig         `mapstructure:"report"`
	History        HistoryConfig        `mapstructure:"history"`
	Logger         LoggerConfig         `mapstructure:"logger"`
}

// InputConfig holds input location configuration
type InputConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig holds output location configuration
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// MappingConfig holds the field-mapping table: canonical field name to
// accepted source column headers, plus defaults for optional fields.
type MappingConfig struct {
	Aliases  map[string][]string `mapstructure:"aliases"`
	Defaults map[string]string   `mapstructure:"defaults"`
}

// ReconciliationConfig holds classification thresholds
type ReconciliationConfig struct {
	ToleranceMinutes int    `mapstructure:"tolerance_minutes"`
	OvernightShifts  bool   `mapstructure:"overnight_shifts"`
	UnbudgetedPolicy string `mapstructure:"unbudgeted_policy"`
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	SheetName   string `mapstructure:"sheet_name"`
	FileName    string `mapstructure:"file_name"`
	Timestamped bool   `mapstructure:"timestamped"`
}

// HistoryConfig holds the run-history database configuration
type HistoryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Location defaults
	viper.SetDefault("input.dir", "input")
	viper.SetDefault("output.dir", "output")

	// Mapping defaults cover common timesheet exports out of the box
	viper.SetDefault("mapping.aliases.employee", []string{"Employee Name", "Employee", "Name", "Resource Name"})
	viper.SetDefault("mapping.aliases.date", []string{"Date", "Work Date", "Entry Date"})
	viper.SetDefault("mapping.aliases.time_in", []string{"Clock In", "Time In", "Start", "Start Time"})
	viper.SetDefault("mapping.aliases.time_out", []string{"Clock Out", "Time Out", "End", "End Time"})
	viper.SetDefault("mapping.aliases.expected_hours", []string{"Expected Hours", "Budgeted Hours", "Scheduled Hours"})
	viper.SetDefault("mapping.aliases.notes", []string{"Notes", "Comments", "Remarks"})

	// Reconciliation defaults
	viper.SetDefault("reconciliation.tolerance_minutes", 5)
	viper.SetDefault("reconciliation.overnight_shifts", true)
	viper.SetDefault("reconciliation.unbudgeted_policy", "unbudgeted")

	// Report defaults
	viper.SetDefault("report.sheet_name", "Reconciliation")
	viper.SetDefault("report.file_name", "timesheet_reconciliation.xlsx")
	viper.SetDefault("report.timestamped", false)

	// History defaults
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", "data/run_history.db")
	viper.SetDefault("history.max_open_conns", 5)
	viper.SetDefault("history.max_idle_conns", 2)
	viper.SetDefault("history.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("history.migrations_dir", "migrations")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("input.dir", "RECON_INPUT_DIR")
	viper.BindEnv("output.dir", "RECON_OUTPUT_DIR")
	viper.BindEnv("history.path", "RECON_HISTORY_DB")
	viper.BindEnv("logger.level", "RECON_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("input.dir is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Report.FileName == "" {
		return fmt.Errorf("report.file_name is required")
	}

	if c.Reconciliation.ToleranceMinutes < 0 {
		return fmt.Errorf("reconciliation.tolerance_minutes must not be negative")
	}
	switch c.Reconciliation.UnbudgetedPolicy {
	case "unbudgeted", "match":
	default:
		return fmt.Errorf("reconciliation.unbudgeted_policy must be %q or %q", "unbudgeted", "match")
	}

	if len(c.Mapping.Aliases["employee"]) == 0 {
		return fmt.Errorf("mapping.aliases.employee is required")
	}
	if len(c.Mapping.Aliases["date"]) == 0 {
		return fmt.Errorf("mapping.aliases.date is required")
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	return nil
}
