package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"ticketmetrics/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// slaEpsilonHours absorbs floating-point rounding so that resolutions
// landing exactly on the SLA boundary count as met.
const slaEpsilonHours = 1e-9

// ValidationError reports a client input defect detected before any
// parsing: a missing file, bad content type, oversized upload, or wrong
// extension. It maps to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// WorkbookError reports a structural defect: the upload passed the
// surface checks but cannot be opened or read as a spreadsheet. It maps
// to a 422 response.
type WorkbookError struct {
	Reason string
	Err    error
}

func (e *WorkbookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}

// ValidateUpload runs the surface checks on an uploaded file before any
// parse attempt. Zip and octet-stream content types are accepted as
// known browser stand-ins for the xlsx MIME type.
func ValidateUpload(data []byte, contentType, filename string, size, maxBytes int64) error {
	if len(data) == 0 {
		return &ValidationError{Reason: "file is required and must not be empty"}
	}
	ok := strings.EqualFold(contentType, xlsxContentType) ||
		strings.EqualFold(contentType, "application/octet-stream") ||
		strings.EqualFold(contentType, "application/zip")
	if !ok {
		return &ValidationError{Reason: "unsupported content type, expecting " + xlsxContentType}
	}
	if size > maxBytes {
		return &ValidationError{Reason: fmt.Sprintf("file too large, max %d bytes", maxBytes)}
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return &ValidationError{Reason: "only .xlsx files are supported"}
	}
	return nil
}

// IngestWorkbook validates and parses an uploaded spreadsheet, producing
// a complete snapshot ready for publication. Upload defects return a
// ValidationError, structurally broken workbooks a WorkbookError; bad
// data inside an otherwise readable sheet only degrades to defaults and
// defect notes in the report.
func IngestWorkbook(data []byte, contentType, filename string, size, maxBytes int64) (*models.Snapshot, error) {
	if err := ValidateUpload(data, contentType, filename, size, maxBytes); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &WorkbookError{Reason: "unable to parse xlsx file", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &WorkbookError{Reason: "workbook has no sheets"}
	}

	grid, err := readSheet(f, sheets[0])
	if err != nil {
		return nil, &WorkbookError{Reason: "unable to read first sheet", Err: err}
	}

	rows, details := parseRows(grid)

	var fold MetricsFold
	for _, row := range rows {
		fold.Add(row)
	}

	return &models.Snapshot{
		ID:         uuid.New().String(),
		Rows:       rows,
		Report:     fold.Report(details),
		IngestedAt: time.Now(),
	}, nil
}

// parseRows turns the sheet grid into normalized ticket rows plus defect
// notes. The first row is the header; a sheet with no data rows under it
// yields an empty dataset rather than an error. Wholly blank rows are
// skipped without counting, but keep their place in row numbering.
func parseRows(grid [][]Cell) ([]models.TicketRow, []string) {
	rows := []models.TicketRow{}
	details := []string{}

	if len(grid) < 2 {
		return rows, details
	}
	headers := ResolveHeaders(grid[0])

	for i := 1; i < len(grid); i++ {
		raw := grid[i]
		if blankRow(raw) {
			continue
		}

		// Sheet row numbers are 1-indexed including the header.
		row, notes := parseRow(raw, headers, i+1)
		rows = append(rows, row)
		details = append(details, notes...)
	}
	return rows, details
}

func blankRow(row []Cell) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell.Raw) != "" {
			return false
		}
	}
	return true
}

// parseRow normalizes one data row. Unresolved columns leave their
// fields at defaults without comment; a blank cell in a present ID
// column earns a defect note but the row still counts.
func parseRow(raw []Cell, headers HeaderMap, rowNum int) (models.TicketRow, []string) {
	var notes []string

	var id string
	if headers.ID != -1 {
		text, ok := cellAt(raw, headers.ID).Text()
		if !ok {
			notes = append(notes, fmt.Sprintf("Row %d: missing id", rowNum))
		}
		id = text
	}

	var created, resolved *time.Time
	if headers.Created != -1 {
		if t, ok := cellAt(raw, headers.Created).Timestamp(); ok {
			created = &t
		}
	}
	if headers.Resolved != -1 {
		if t, ok := cellAt(raw, headers.Resolved).Timestamp(); ok {
			resolved = &t
		}
	}

	var slaHours *float64
	if headers.SlaHours != -1 {
		if v, ok := cellAt(raw, headers.SlaHours).Number(); ok {
			slaHours = &v
		}
	}

	var application string
	if headers.Application != -1 {
		application, _ = cellAt(raw, headers.Application).Text()
	}

	row := models.TicketRow{
		ID:          id,
		CreatedAt:   created,
		ResolvedAt:  resolved,
		Application: application,
	}

	if created != nil && resolved != nil {
		// Whole minutes, truncated; negative spans clamp to zero.
		minutes := int64(resolved.Sub(*created) / time.Minute)
		if minutes > 0 {
			row.ResolveMinutes = int(minutes)
		}
		if slaHours != nil {
			actual := float64(minutes) / 60.0
			if actual <= *slaHours+slaEpsilonHours {
				row.ResolutionSlaPercent = 100
			}
		}
	}

	if created != nil {
		row.Month = created.Format("2006-01")
	}

	return row, notes
}
