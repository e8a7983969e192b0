package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(dir string) *FolderManager {
	logger, _ := zap.NewDevelopment()
	return NewFolderManager(dir, logger)
}

func TestFolderManager_EnsureOutputDir(t *testing.T) {
	t.Run("creates missing directory with parents", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "2025")
		fm := newTestManager(dir)

		created, err := fm.EnsureOutputDir()

		require.NoError(t, err)
		assert.Equal(t, dir, created)
		assert.DirExists(t, dir)
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		dir := t.TempDir()
		fm := newTestManager(dir)

		_, err := fm.EnsureOutputDir()
		require.NoError(t, err)
		_, err = fm.EnsureOutputDir()
		require.NoError(t, err)
	})

	t.Run("empty path is an error", func(t *testing.T) {
		_, err := newTestManager("").EnsureOutputDir()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}

func TestFolderManager_ReportPath(t *testing.T) {
	fm := newTestManager("/tmp/out")

	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{
			name:     "plain name",
			fileName: "report.xlsx",
			expected: filepath.Join("/tmp/out", "report.xlsx"),
		},
		{
			name:     "path traversal stripped",
			fileName: "../../etc/passwd.xlsx",
			expected: filepath.Join("/tmp/out", "etcpasswd.xlsx"),
		},
		{
			name:     "special characters stripped",
			fileName: "recon (May).xlsx",
			expected: filepath.Join("/tmp/out", "reconMay.xlsx"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fm.ReportPath(tt.fileName))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "report-2025_05", SanitizeFileName("report-2025_05"))
	assert.Equal(t, "report", SanitizeFileName("re/po\\rt"))
	assert.Equal(t, "", SanitizeFileName("../.."))
}
