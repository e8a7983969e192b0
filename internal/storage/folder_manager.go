package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FolderManager manages the report output directory.
type FolderManager struct {
	outputDir string
	logger    *zap.Logger
}

// NewFolderManager creates a new FolderManager.
func NewFolderManager(outputDir string, logger *zap.Logger) *FolderManager {
	return &FolderManager{
		outputDir: outputDir,
		logger:    logger,
	}
}

// EnsureOutputDir creates the output directory (including parents) if
// it does not exist. Returns the directory path.
func (m *FolderManager) EnsureOutputDir() (string, error) {
	if m.outputDir == "" {
		return "", fmt.Errorf("cannot create output directory: empty path")
	}

	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		m.logger.Error("Failed to create output directory",
			zap.String("output_dir", m.outputDir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	m.logger.Debug("Output directory ready", zap.String("output_dir", m.outputDir))
	return m.outputDir, nil
}

// ReportPath joins a sanitized report file name onto the output
// directory. The extension is preserved; everything else is stripped
// down to filesystem-safe characters.
func (m *FolderManager) ReportPath(fileName string) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	return filepath.Join(m.outputDir, SanitizeFileName(base)+ext)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// SanitizeFileName returns a filesystem-safe version of the name.
// Removes path separators and special characters to prevent directory
// traversal.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return unsafeChars.ReplaceAllString(name, "")
}
