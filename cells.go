package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Cell is one spreadsheet cell as read from the workbook: the raw stored
// value (cached result for formula cells), the xlsx cell type, and
// whether the cell style carries a date number format.
//
// The coercion methods are total: malformed input yields ok=false,
// never an error.
type Cell struct {
	Raw        string
	Kind       excelize.CellType
	DateStyled bool
}

// textLayouts are the accepted text timestamp forms, tried in order:
// ISO-8601 date-times at second and minute precision, then RFC3339.
// Bare dates are handled separately as midnight.
var textLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// Text returns the cell's trimmed text. Boolean cells are stringified
// as "true"/"false"; blank and error cells are absent.
func (c Cell) Text() (string, bool) {
	switch c.Kind {
	case excelize.CellTypeBool:
		if strings.TrimSpace(c.Raw) == "1" {
			return "true", true
		}
		return "false", true
	case excelize.CellTypeError:
		return "", false
	}
	s := strings.TrimSpace(c.Raw)
	if s == "" {
		return "", false
	}
	return s, true
}

// Number parses the cell as a decimal. Text cells have thousands
// separators stripped first. Boolean and error cells do not coerce.
func (c Cell) Number() (float64, bool) {
	if c.Kind == excelize.CellTypeBool || c.Kind == excelize.CellTypeError {
		return 0, false
	}
	s := strings.TrimSpace(c.Raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Timestamp interprets the cell as a point in time. Date-styled numeric
// cells convert from the Excel serial epoch; text cells are tried
// against ISO-8601 layouts and then a bare "YYYY-MM-DD" read as
// midnight.
func (c Cell) Timestamp() (time.Time, bool) {
	s := strings.TrimSpace(c.Raw)
	if s == "" {
		return time.Time{}, false
	}

	if c.DateStyled {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		}
	}

	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if isBareDate(s) {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBareDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
