package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadFromYAML writes the yaml body to a temp file and loads it.
// Viper keeps package-level state, so each test starts from a reset.
func loadFromYAML(t *testing.T, body string) (*Config, error) {
	t.Helper()
	viper.Reset()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return Load(path)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFromYAML(t, "{}\n")

	require.NoError(t, err)
	assert.Equal(t, "input", cfg.Input.Dir)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, 5, cfg.Reconciliation.ToleranceMinutes)
	assert.True(t, cfg.Reconciliation.OvernightShifts)
	assert.Equal(t, "unbudgeted", cfg.Reconciliation.UnbudgetedPolicy)
	assert.Equal(t, "Reconciliation", cfg.Report.SheetName)
	assert.Equal(t, "timesheet_reconciliation.xlsx", cfg.Report.FileName)
	assert.False(t, cfg.Report.Timestamped)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)

	// Built-in alias table covers the canonical fields
	assert.Contains(t, cfg.Mapping.Aliases["employee"], "Employee Name")
	assert.Contains(t, cfg.Mapping.Aliases["time_in"], "Clock In")
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadFromYAML(t, `
input:
  dir: /data/in
output:
  dir: /data/out
mapping:
  aliases:
    employee: ["Staff"]
    date: ["Day"]
reconciliation:
  tolerance_minutes: 15
  overnight_shifts: false
  unbudgeted_policy: match
report:
  file_name: recon.xlsx
  timestamped: true
`)

	require.NoError(t, err)
	assert.Equal(t, "/data/in", cfg.Input.Dir)
	assert.Equal(t, "/data/out", cfg.Output.Dir)
	assert.Equal(t, []string{"Staff"}, cfg.Mapping.Aliases["employee"])
	assert.Equal(t, 15, cfg.Reconciliation.ToleranceMinutes)
	assert.False(t, cfg.Reconciliation.OvernightShifts)
	assert.Equal(t, "match", cfg.Reconciliation.UnbudgetedPolicy)
	assert.Equal(t, "recon.xlsx", cfg.Report.FileName)
	assert.True(t, cfg.Report.Timestamped)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "negative tolerance",
			body:    "reconciliation:\n  tolerance_minutes: -1\n",
			wantErr: "tolerance_minutes",
		},
		{
			name:    "unknown unbudgeted policy",
			body:    "reconciliation:\n  unbudgeted_policy: ignore\n",
			wantErr: "unbudgeted_policy",
		},
		{
			name:    "empty report file name",
			body:    "report:\n  file_name: \"\"\n",
			wantErr: "report.file_name",
		},
		{
			name:    "history enabled without path",
			body:    "history:\n  enabled: true\n  path: \"\"\n",
			wantErr: "history.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromYAML(t, tt.body)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	viper.Reset()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}
