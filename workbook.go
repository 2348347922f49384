package main

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Header aliases for each logical column, tried in order. Matching is
// case-insensitive and exact; the first alias found in the sheet wins.
var (
	idAliases          = []string{"id", "ticket_id", "issue_id", "sr_no", "sr", "no", "number"}
	createdAliases     = []string{"created_at", "created", "opened_at", "open_date", "created date", "date created"}
	resolvedAliases    = []string{"resolved_at", "resolved", "closed_at", "close_date", "resolved date", "date resolved"}
	priorityAliases    = []string{"priority", "prio", "severity", "impact"}
	slaHoursAliases    = []string{"sla_hours", "sla", "target_hours", "target", "resolution_target_hours"}
	applicationAliases = []string{"application", "app", "service", "project"}
)

// HeaderMap maps logical ticket columns to their positions in the sheet.
// A value of -1 means the column was not found; missing columns are
// tolerated throughout the parser.
type HeaderMap struct {
	ID          int
	Created     int
	Resolved    int
	Priority    int
	SlaHours    int
	Application int
}

// ResolveHeaders builds a HeaderMap from the header row. Header names
// are matched case-insensitively against the alias lists; duplicate
// names resolve to the leftmost occurrence. A nil or empty header row
// leaves every column unresolved.
func ResolveHeaders(header []Cell) HeaderMap {
	hm := HeaderMap{ID: -1, Created: -1, Resolved: -1, Priority: -1, SlaHours: -1, Application: -1}
	if len(header) == 0 {
		return hm
	}

	byName := make(map[string]int)
	for i, cell := range header {
		text, ok := cell.Text()
		if !ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(text))
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	hm.ID = findByAliases(byName, idAliases)
	hm.Created = findByAliases(byName, createdAliases)
	hm.Resolved = findByAliases(byName, resolvedAliases)
	hm.Priority = findByAliases(byName, priorityAliases)
	hm.SlaHours = findByAliases(byName, slaHoursAliases)
	hm.Application = findByAliases(byName, applicationAliases)
	return hm
}

func findByAliases(byName map[string]int, aliases []string) int {
	for _, alias := range aliases {
		if idx, ok := byName[alias]; ok {
			return idx
		}
	}
	return -1
}

// isDateNumFmt reports whether a built-in number format ID renders as a
// date or time (built-in formats 14-22 and 45-47 in OOXML).
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// readSheet loads every cell of the named sheet, keeping raw stored
// values so that date cells surface their serial numbers rather than
// display strings. Trailing blank cells and rows are trimmed by the
// underlying reader; wholly blank rows come back empty.
func readSheet(f *excelize.File, sheet string) ([][]Cell, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]Cell, len(raw))
	for ri, row := range raw {
		cells := make([]Cell, len(row))
		for ci, value := range row {
			name, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return nil, err
			}
			cells[ci] = readCell(f, sheet, name, value)
		}
		grid[ri] = cells
	}
	return grid, nil
}

func readCell(f *excelize.File, sheet, name, value string) Cell {
	kind, err := f.GetCellType(sheet, name)
	if err != nil {
		kind = excelize.CellTypeUnset
	}

	dateStyled := kind == excelize.CellTypeDate
	if !dateStyled {
		if styleID, err := f.GetCellStyle(sheet, name); err == nil {
			if style, err := f.GetStyle(styleID); err == nil && style != nil {
				dateStyled = isDateNumFmt(style.NumFmt)
			}
		}
	}

	return Cell{Raw: value, Kind: kind, DateStyled: dateStyled}
}

// cellAt returns the cell at the given column, or a blank cell when the
// column is unresolved or past the end of the row.
func cellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return Cell{}
	}
	return row[idx]
}
