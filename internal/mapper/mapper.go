package mapper

import (
	"fmt"
	"strings"

	"github.com/garyjia/timesheet-recon/internal/loader"
	"github.com/garyjia/timesheet-recon/internal/models"
	"go.uber.org/zap"
)

// Canonical field names. Configuration aliases map source column
// headers onto these.
const (
	FieldEmployee      = "employee"
	FieldDate          = "date"
	FieldTimeIn        = "time_in"
	FieldTimeOut       = "time_out"
	FieldExpectedHours = "expected_hours"
	FieldNotes         = "notes"
)

// Config holds the field-mapping table.
type Config struct {
	// Aliases maps a canonical field to the source column headers that
	// may carry it, matched case-insensitively after trimming.
	Aliases map[string][]string
	// Defaults supplies a value for an optional field whose column is
	// absent or blank, e.g. a flat expected-hours budget.
	Defaults map[string]string
}

// Mapper translates raw spreadsheet rows into TimesheetRecords.
type Mapper struct {
	cfg    Config
	logger *zap.Logger
}

// NewMapper creates a new Mapper.
func NewMapper(cfg Config, logger *zap.Logger) *Mapper {
	return &Mapper{
		cfg:    cfg,
		logger: logger,
	}
}

// Map translates one raw row. Employee and date are required; the clock
// times, expected hours and notes are optional. A present but
// unparsable value is always an error, never silently dropped.
func (m *Mapper) Map(raw loader.RawRow) (*models.TimesheetRecord, error) {
	record := &models.TimesheetRecord{
		SourceFile: raw.File,
		SourceRow:  raw.Number,
	}

	employee, ok := m.lookup(raw, FieldEmployee)
	if !ok || employee == "" {
		return nil, m.rowError(raw, FieldEmployee, ErrMissingField)
	}
	record.Employee = employee

	dateValue, ok := m.lookup(raw, FieldDate)
	if !ok || dateValue == "" {
		return nil, m.rowError(raw, FieldDate, ErrMissingField)
	}
	date, err := ParseDate(dateValue)
	if err != nil {
		return nil, m.rowError(raw, FieldDate, err)
	}
	record.Date = date

	if value, ok := m.lookup(raw, FieldTimeIn); ok && value != "" {
		t, err := ParseTimeOfDay(value)
		if err != nil {
			return nil, m.rowError(raw, FieldTimeIn, err)
		}
		record.TimeIn = &t
	}

	if value, ok := m.lookup(raw, FieldTimeOut); ok && value != "" {
		t, err := ParseTimeOfDay(value)
		if err != nil {
			return nil, m.rowError(raw, FieldTimeOut, err)
		}
		record.TimeOut = &t
	}

	if value, ok := m.lookup(raw, FieldExpectedHours); ok && value != "" {
		hours, err := ParseHours(value)
		if err != nil {
			return nil, m.rowError(raw, FieldExpectedHours, err)
		}
		record.ExpectedHours = &hours
	}

	if value, ok := m.lookup(raw, FieldNotes); ok {
		record.Notes = value
	}

	return record, nil
}

// MapAll translates a batch of raw rows, failing on the first bad row.
func (m *Mapper) MapAll(raws []loader.RawRow) ([]models.TimesheetRecord, error) {
	records := make([]models.TimesheetRecord, 0, len(raws))
	for _, raw := range raws {
		record, err := m.Map(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	m.logger.Info("Rows mapped", zap.Int("record_count", len(records)))
	return records, nil
}

// lookup finds the cell value for a canonical field, falling back to
// the configured default when the column is absent or blank. Headers
// are scanned in column order, so when several columns match an alias
// the leftmost one wins.
func (m *Mapper) lookup(raw loader.RawRow, field string) (string, bool) {
	for _, alias := range m.cfg.Aliases[field] {
		for _, header := range raw.Headers {
			if strings.EqualFold(header, strings.TrimSpace(alias)) {
				if value := raw.Cells[header]; value != "" {
					return value, true
				}
				break
			}
		}
	}

	if def, ok := m.cfg.Defaults[field]; ok && def != "" {
		return def, true
	}
	return "", false
}

func (m *Mapper) rowError(raw loader.RawRow, field string, err error) error {
	return fmt.Errorf("%s sheet %q row %d, field %s: %w", raw.File, raw.Sheet, raw.Number, field, err)
}
