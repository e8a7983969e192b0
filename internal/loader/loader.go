package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// RawRow is one data row read from a spreadsheet, keyed by the header
// cell of each column. Cells without a header are dropped; trailing
// headers without a cell map to "". Headers preserves column order so
// callers resolving header names can do so deterministically.
type RawRow struct {
	File    string
	Sheet   string
	Number  int // 1-based row number within the sheet (header is row 1)
	Headers []string
	Cells   map[string]string
}

// Loader reads spreadsheet files from an input directory.
type Loader struct {
	inputDir string
	logger   *zap.Logger
}

// NewLoader creates a new Loader.
func NewLoader(inputDir string, logger *zap.Logger) *Loader {
	return &Loader{
		inputDir: inputDir,
		logger:   logger,
	}
}

// spreadsheetFile reports whether name looks like a workbook we can read.
// Office lock files (~$...) are skipped.
func spreadsheetFile(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// LoadDirectory reads every spreadsheet file in the input directory and
// returns all data rows in file order. An empty directory (or one with
// no spreadsheet files) is an error: the run has nothing to reconcile.
func (l *Loader) LoadDirectory() ([]RawRow, error) {
	entries, err := os.ReadDir(l.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", l.inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !spreadsheetFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, l.inputDir)
	}

	l.logger.Info("Scanning input directory",
		zap.String("input_dir", l.inputDir),
		zap.Int("file_count", len(files)))

	var rows []RawRow
	for _, name := range files {
		fileRows, err := l.loadFile(filepath.Join(l.inputDir, name))
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}

	l.logger.Info("Input loaded", zap.Int("row_count", len(rows)))
	return rows, nil
}

// loadFile reads every non-empty sheet of one workbook. The first row of
// each sheet is the header; fully blank rows are skipped.
func (l *Loader) loadFile(path string) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileFormat, path, err)
	}
	defer f.Close()

	var rows []RawRow
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: %s sheet %q: %v", ErrFileFormat, path, sheet, err)
		}
		if len(sheetRows) == 0 {
			continue
		}

		header := sheetRows[0]
		if blankRow(header) {
			if onlyBlankRows(sheetRows[1:]) {
				continue
			}
			return nil, fmt.Errorf("%w: %s sheet %q", ErrMissingHeader, path, sheet)
		}

		// Ordered header list, shared by every row of the sheet.
		headers := make([]string, 0, len(header))
		columns := make([]int, 0, len(header))
		for col, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			headers = append(headers, name)
			columns = append(columns, col)
		}

		count := 0
		for i, cells := range sheetRows[1:] {
			if blankRow(cells) {
				continue
			}
			row := RawRow{
				File:    filepath.Base(path),
				Sheet:   sheet,
				Number:  i + 2,
				Headers: headers,
				Cells:   make(map[string]string, len(headers)),
			}
			for j, name := range headers {
				if col := columns[j]; col < len(cells) {
					row.Cells[name] = strings.TrimSpace(cells[col])
				} else {
					row.Cells[name] = ""
				}
			}
			rows = append(rows, row)
			count++
		}

		l.logger.Info("Sheet loaded",
			zap.String("file", filepath.Base(path)),
			zap.String("sheet", sheet),
			zap.Int("row_count", count))
	}

	return rows, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func onlyBlankRows(rows [][]string) bool {
	for _, r := range rows {
		if !blankRow(r) {
			return false
		}
	}
	return true
}
