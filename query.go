package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ticketmetrics/models"
)

// QueryRows returns one page of the stored rows, filtered by optional
// application and month criteria. Page is zero-based; size must already
// be validated by the caller (1..1000). Totals are computed from the
// filtered set, and an out-of-range page yields an empty item list with
// the totals intact. A store that has never seen an upload yields zero
// totals.
func QueryRows(store models.SnapshotStore, page, size int, application, month string) models.PagedResponse {
	resp := models.PagedResponse{Page: page, Size: size, Items: []models.TicketRow{}}

	snapshot, ok := store.Current()
	if !ok {
		return resp
	}

	filtered := FilterRows(snapshot.Rows, application, month)
	total := len(filtered)
	if total == 0 {
		return resp
	}

	resp.TotalItems = int64(total)
	resp.TotalPages = (total + size - 1) / size

	from := min(page*size, total)
	to := min(from+size, total)
	if from < to {
		resp.Items = filtered[from:to]
	}
	return resp
}

// FilterRows keeps the rows matching the given criteria. A blank filter
// value matches everything; the application match is case-insensitive
// and the month match is exact. Rows missing a filtered field never
// match a non-blank filter.
func FilterRows(rows []models.TicketRow, application, month string) []models.TicketRow {
	filtered := []models.TicketRow{}
	for _, row := range rows {
		if application != "" {
			if row.Application == "" || !strings.EqualFold(row.Application, application) {
				continue
			}
		}
		if month != "" && row.Month != month {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// QueryMetrics returns the stored aggregate entries matching the given
// criteria. The store holds at most one aggregate (the latest upload's),
// and uploads carry no application or month context, so any non-blank
// filter excludes the context-free entry. That mirrors the upload
// contract as it stands; scoped aggregates need scoped uploads first.
func QueryMetrics(store models.SnapshotStore, application, month string) []models.MetricEntry {
	entries := []models.MetricEntry{}

	snapshot, ok := store.Current()
	if !ok {
		return entries
	}

	entry := snapshot.Entry()
	if application != "" {
		if entry.Application == "" || !strings.EqualFold(entry.Application, application) {
			return entries
		}
	}
	if month != "" && entry.Month != month {
		return entries
	}
	return append(entries, entry)
}

// FormatAPIEntry maps a metric entry to the external response shape.
// The month becomes a full English month name when the entry carries a
// valid "YYYY-MM" value; percentage fields are rendered as whole-number
// strings with a '%' suffix. Fields with no source data stay null.
func FormatAPIEntry(entry models.MetricEntry) models.MetricsAPIEntry {
	var application *string
	if entry.Application != "" {
		application = strPtr(entry.Application)
	}

	var monthName *string
	if isYearMonth(entry.Month) {
		n := int(entry.Month[5]-'0')*10 + int(entry.Month[6]-'0')
		monthName = strPtr(time.Month(n).String())
	}

	adherence := formatPercent(entry.SlaAdherencePercent)
	return models.MetricsAPIEntry{
		Application:              application,
		Month:                    monthName,
		NoOfTicketsReceived:      intPtr(entry.TotalTickets),
		MTTRResolveMin:           intPtr(int(math.Round(entry.MttrHours * 60.0))),
		AdherenceToResolutionSLA: strPtr(adherence),
		ResolutionAdherenceRate:  strPtr(adherence),
	}
}

// isYearMonth checks the "YYYY-MM" shape with a month in 01..12.
func isYearMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	n := int(s[5]-'0')*10 + int(s[6]-'0')
	return n >= 1 && n <= 12
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int64(math.Round(v)))
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}
