package report

import (
	"fmt"
	"time"

	"github.com/garyjia/timesheet-recon/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column headers of the report sheet, in output order.
var columns = []string{
	"Employee",
	"Date",
	"Time In",
	"Time Out",
	"Expected Hrs",
	"Actual Hrs",
	"Variance Hrs",
	"Classification",
	"Notes",
	"Source",
}

// Writer assembles the reconciliation report workbook.
type Writer struct {
	sheetName string
	logger    *zap.Logger
}

// NewWriter creates a new report writer.
func NewWriter(sheetName string, logger *zap.Logger) *Writer {
	if sheetName == "" {
		sheetName = "Reconciliation"
	}
	return &Writer{
		sheetName: sheetName,
		logger:    logger,
	}
}

// Write renders the report to outputPath, overwriting any existing
// file. One row per record, then a summary block two rows below.
func (w *Writer) Write(report *models.Report, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", w.sheetName); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	widths := make([]int, len(columns))
	for i, name := range columns {
		w.setCell(f, cellRef(i, 1), name)
		widths[i] = len(name)
	}
	if err := f.SetRowStyle(w.sheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, record := range report.Records {
		row := i + 2
		values := recordCells(record)
		for col, value := range values {
			w.setCell(f, cellRef(col, row), value)
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	w.writeSummary(f, report, len(report.Records)+4, headerStyle)

	// Auto-size columns the way the original spreadsheet tooling did:
	// longest cell plus padding.
	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if err := f.SetColWidth(w.sheetName, name, name, float64(width+2)); err != nil {
			w.logger.Warn("Failed to set column width",
				zap.String("column", name),
				zap.Error(err))
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputNotWritable, outputPath, err)
	}

	w.logger.Info("Report written",
		zap.String("output_path", outputPath),
		zap.Int("record_count", report.Summary.TotalRecords))
	return nil
}

// writeSummary renders the aggregate block starting at startRow.
func (w *Writer) writeSummary(f *excelize.File, report *models.Report, startRow int, headerStyle int) {
	w.setCell(f, cellRef(0, startRow), "Summary")
	if err := f.SetRowStyle(w.sheetName, startRow, startRow, headerStyle); err != nil {
		w.logger.Warn("Failed to style summary row", zap.Error(err))
	}

	type line struct {
		label string
		value string
	}

	s := &report.Summary
	lines := []line{{"Total Records", fmt.Sprintf("%d", s.TotalRecords)}}
	for _, classification := range models.Classifications {
		lines = append(lines, line{titleCase(classification), fmt.Sprintf("%d", s.Count(classification))})
	}
	lines = append(lines,
		line{"Total Variance Hrs", formatHours(s.TotalVariance)},
		line{"Average Variance Hrs", formatHours(s.AverageVariance)},
	)

	for i, line := range lines {
		w.setCell(f, cellRef(0, startRow+1+i), line.label)
		w.setCell(f, cellRef(1, startRow+1+i), line.value)
	}
}

// setCell sets a cell value, logging rather than failing on error.
func (w *Writer) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(w.sheetName, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func recordCells(record models.ReconciledRecord) []string {
	cells := make([]string, len(columns))
	cells[0] = record.Employee
	cells[1] = record.Date.Format("2006-01-02")
	if record.TimeIn != nil {
		cells[2] = record.TimeIn.String()
	}
	if record.TimeOut != nil {
		cells[3] = record.TimeOut.String()
	}
	if record.ExpectedHours != nil {
		cells[4] = fmt.Sprintf("%.2f", *record.ExpectedHours)
	}
	if record.Actual != nil {
		cells[5] = formatHours(*record.Actual)
	}
	if record.Variance != nil {
		cells[6] = formatSignedHours(*record.Variance)
	}
	cells[7] = record.Classification
	cells[8] = record.Notes
	cells[9] = fmt.Sprintf("%s:%d", record.SourceFile, record.SourceRow)
	return cells
}

func cellRef(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col+1, row)
	return cell
}

func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Hours())
}

func formatSignedHours(d time.Duration) string {
	if d >= 0 {
		return fmt.Sprintf("+%.2f", d.Hours())
	}
	return fmt.Sprintf("%.2f", d.Hours())
}

func titleCase(classification string) string {
	switch classification {
	case models.ClassificationMatch:
		return "Match"
	case models.ClassificationOverage:
		return "Overage"
	case models.ClassificationShortage:
		return "Shortage"
	case models.ClassificationIncomplete:
		return "Incomplete"
	case models.ClassificationUnbudgeted:
		return "Unbudgeted"
	}
	return classification
}
