package main

import (
	"fmt"
	"math"
	"strings"

	"ticketmetrics/models"
)

// MetricsFold is a streaming fold over parsed ticket rows. Feed every
// row through Add, then call Report for the final aggregate. The zero
// value is ready to use.
type MetricsFold struct {
	total           int
	slaMet          int
	resolved        int
	resolutionHours float64
}

// Add folds one row into the running totals.
func (f *MetricsFold) Add(row models.TicketRow) {
	f.total++
	if row.CreatedAt != nil && row.ResolvedAt != nil {
		f.resolved++
		f.resolutionHours += float64(row.ResolveMinutes) / 60.0
	}
	if row.ResolutionSlaPercent == 100 {
		f.slaMet++
	}
}

// Report finalizes the fold into a MetricsReport. MTTR averages only
// over rows with both timestamps and is 0, not NaN, when there are none.
func (f *MetricsFold) Report(details []string) models.MetricsReport {
	var mttr float64
	if f.resolved > 0 {
		mttr = f.resolutionHours / float64(f.resolved)
	}
	var slaPct float64
	if f.total > 0 {
		slaPct = float64(f.slaMet) * 100.0 / float64(f.total)
	}

	if details == nil {
		details = []string{}
	}
	return models.MetricsReport{
		TotalTickets:        f.total,
		SlaAdherencePercent: round2(slaPct),
		MttrHours:           round2(mttr),
		Remarks:             buildRemarks(f.total, f.resolved, slaPct),
		Details:             details,
	}
}

// buildRemarks assembles the remarks string in a fixed order: the
// unresolved-ticket count first, then the adherence verdict against the
// 80% target. An empty dataset gets its own message.
func buildRemarks(total, resolved int, slaPct float64) string {
	var parts []string
	if total == 0 {
		parts = append(parts, "No tickets found.")
	} else {
		if resolved < total {
			parts = append(parts, fmt.Sprintf("%d ticket(s) without resolution date.", total-resolved))
		}
		if slaPct < 80.0 {
			parts = append(parts, "SLA adherence below target.")
		} else {
			parts = append(parts, "SLA adherence acceptable.")
		}
	}
	return strings.Join(parts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100.0) / 100.0
}
