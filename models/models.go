// Package models defines the core data types for ticketmetrics,
// a service that ingests ticket spreadsheets and computes SLA and
// resolution-time metrics over the most recent upload.
package models

import "time"

// TicketRow represents a single parsed row from an uploaded spreadsheet.
// All source-derived fields are optional: text fields default to empty,
// timestamps to nil, and numeric metrics to 0 when the source data is
// missing or unparseable.
type TicketRow struct {
	// ID is the ticket identifier as found in the sheet. Empty when the
	// identifier column is missing or the cell is blank.
	ID string `json:"id,omitempty"`

	// CreatedAt is when the ticket was opened. Nil when the creation
	// column is missing or the cell could not be parsed as a timestamp.
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	// ResolvedAt is when the ticket was closed. Nil for unresolved
	// tickets or unparseable cells.
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`

	// Application is the application or service the ticket belongs to.
	Application string `json:"application,omitempty"`

	// ResponseMinutes is the time to first response. Always 0 until a
	// response-time source column exists in the upload format.
	ResponseMinutes int `json:"responseMinutes"`

	// ResolveMinutes is the whole-minute duration between CreatedAt and
	// ResolvedAt, clamped at 0. Stays 0 unless both timestamps parsed.
	ResolveMinutes int `json:"resolveMinutes"`

	// ResponseSlaPercent mirrors ResponseMinutes: always 0 for now.
	ResponseSlaPercent int `json:"responseSlaPercent"`

	// ResolutionSlaPercent is 100 when the ticket was resolved within
	// its SLA target, 0 otherwise.
	ResolutionSlaPercent int `json:"resolutionSlaPercent"`

	// Month is the creation month in "YYYY-MM" form, used for filtering.
	// Empty when CreatedAt is absent.
	Month string `json:"month,omitempty"`
}

// MetricsReport holds the dataset-level aggregates computed from one
// uploaded spreadsheet.
type MetricsReport struct {
	// TotalTickets is the number of data rows processed, including rows
	// with soft defects.
	TotalTickets int `json:"totalTickets"`

	// SlaAdherencePercent is the share of tickets resolved within their
	// SLA target, in [0,100], rounded to two decimals.
	SlaAdherencePercent float64 `json:"slaAdherencePercent"`

	// MttrHours is the mean time to resolution in hours, averaged over
	// tickets with both timestamps present. 0 when no such tickets exist.
	MttrHours float64 `json:"mttrHours"`

	// Remarks is a short human-readable assessment of the dataset.
	Remarks string `json:"remarks"`

	// Details lists per-row data-quality warnings in sheet order,
	// e.g. "Row 3: missing id".
	Details []string `json:"details"`
}

// MetricEntry is one queryable metrics record. Application and Month
// scope the entry; both are empty for entries produced by uploads,
// which carry no application or month context.
type MetricEntry struct {
	Application         string  `json:"application,omitempty"`
	Month               string  `json:"month,omitempty"`
	TotalTickets        int     `json:"totalTickets"`
	SlaAdherencePercent float64 `json:"slaAdherencePercent"`
	MttrHours           float64 `json:"mttrHours"`
}

// Snapshot is the complete result of one ingestion: the parsed rows plus
// their aggregate report. Snapshots are immutable once published to a
// SnapshotStore; each upload produces a new one that fully replaces the
// previous (last write wins, no merging).
type Snapshot struct {
	// ID is the unique identifier for this snapshot (UUID).
	ID string `json:"id"`

	// Rows are the parsed ticket rows in sheet order.
	Rows []TicketRow `json:"rows"`

	// Report is the aggregate computed over Rows.
	Report MetricsReport `json:"report"`

	// IngestedAt is when this snapshot was produced.
	IngestedAt time.Time `json:"ingestedAt"`
}

// Entry returns the snapshot's aggregate as a queryable MetricEntry.
// Uploads bind no application or month context, so both scope fields
// stay empty.
func (s *Snapshot) Entry() MetricEntry {
	return MetricEntry{
		TotalTickets:        s.Report.TotalTickets,
		SlaAdherencePercent: s.Report.SlaAdherencePercent,
		MttrHours:           s.Report.MttrHours,
	}
}

// PagedResponse is the standard paginated wrapper for row queries.
type PagedResponse struct {
	// Page is the zero-based page index that was requested.
	Page int `json:"page"`

	// Size is the requested page size.
	Size int `json:"size"`

	// TotalItems is the number of rows in the filtered set, across all pages.
	TotalItems int64 `json:"totalItems"`

	// TotalPages is ceil(TotalItems / Size), 0 for an empty set.
	TotalPages int `json:"totalPages"`

	// Items holds the rows on this page. Empty, never nil, when the page
	// is out of range or the set is empty.
	Items []TicketRow `json:"items"`
}

// MetricsAPIEntry is the external response shape for metric queries,
// with the exact key casing and value formatting consumers expect:
// Month is a full English month name and percentage fields are strings
// with a trailing '%'. Pointer fields serialize as JSON null when the
// underlying value is unknown.
type MetricsAPIEntry struct {
	Application               *string `json:"Application"`
	Month                     *string `json:"Month"`
	NoOfTicketsReceived       *int    `json:"NoOfTicketsReceived"`
	NoOfTicketsRespondedByTel *int    `json:"NoOfTicketsRespondedByTel"`
	MTTRRespondMin            *int    `json:"MTTRRespondMin"`
	AdherenceToResponseSLA    *string `json:"AdherenceToResponseSLA"`
	SlippedResponseSLA        *int    `json:"SlippedResponseSLA"`
	ResponseAdherenceRate     *string `json:"ResponseAdherenceRate"`
	NoOfTicketsResolvedByTel  *int    `json:"NoOfTicketsResolvedByTel"`
	MTTRResolveMin            *int    `json:"MTTRResolveMin"`
	AdherenceToResolutionSLA  *string `json:"AdherenceToResolutionSLA"`
	SlippedResolutionSLA      *int    `json:"SlippedResolutionSLA"`
	ResolutionAdherenceRate   *string `json:"ResolutionAdherenceRate"`
	Remarks                   *string `json:"Remarks"`
	ResolutionRemarks         *string `json:"ResolutionRemarks"`
}
