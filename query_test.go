package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketmetrics/models"
)

func storeWithRows(rows ...models.TicketRow) *MemoryStore {
	store := NewMemoryStore()
	var fold MetricsFold
	for _, row := range rows {
		fold.Add(row)
	}
	store.Replace(&models.Snapshot{ID: "test", Rows: rows, Report: fold.Report(nil)})
	return store
}

func TestFilterRows(t *testing.T) {
	rows := []models.TicketRow{
		{ID: "T1", Application: "Billing", Month: "2024-01"},
		{ID: "T2", Application: "billing", Month: "2024-02"},
		{ID: "T3", Application: "Portal", Month: "2024-01"},
		{ID: "T4", Month: "2024-01"},
	}

	tests := []struct {
		name        string
		application string
		month       string
		wantIDs     []string
	}{
		{
			name:    "no filters match everything",
			wantIDs: []string{"T1", "T2", "T3", "T4"},
		},
		{
			name:        "application filter is case-insensitive",
			application: "BILLING",
			wantIDs:     []string{"T1", "T2"},
		},
		{
			name:    "month filter is exact",
			month:   "2024-01",
			wantIDs: []string{"T1", "T3", "T4"},
		},
		{
			name:    "month prefix does not match",
			month:   "2024",
			wantIDs: []string{},
		},
		{
			name:        "filters combine",
			application: "billing",
			month:       "2024-02",
			wantIDs:     []string{"T2"},
		},
		{
			name:        "rows without application never match a filter",
			application: "Portal",
			wantIDs:     []string{"T3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRows(rows, tt.application, tt.month)
			ids := []string{}
			for _, row := range got {
				ids = append(ids, row.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestQueryRowsPagination(t *testing.T) {
	rows := make([]models.TicketRow, 7)
	for i := range rows {
		rows[i] = models.TicketRow{ID: string(rune('A' + i))}
	}
	store := storeWithRows(rows...)

	tests := []struct {
		name      string
		page      int
		size      int
		wantItems int
		wantPages int
		wantTotal int64
		wantFirst string
	}{
		{
			name:      "first page",
			page:      0,
			size:      3,
			wantItems: 3,
			wantPages: 3,
			wantTotal: 7,
			wantFirst: "A",
		},
		{
			name:      "last partial page",
			page:      2,
			size:      3,
			wantItems: 1,
			wantPages: 3,
			wantTotal: 7,
			wantFirst: "G",
		},
		{
			name:      "page size covering everything",
			page:      0,
			size:      100,
			wantItems: 7,
			wantPages: 1,
			wantTotal: 7,
			wantFirst: "A",
		},
		{
			name:      "out-of-range page keeps totals",
			page:      9,
			size:      3,
			wantItems: 0,
			wantPages: 3,
			wantTotal: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := QueryRows(store, tt.page, tt.size, "", "")

			assert.Equal(t, tt.page, resp.Page)
			assert.Equal(t, tt.size, resp.Size)
			assert.Equal(t, tt.wantTotal, resp.TotalItems)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
			assert.Len(t, resp.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.wantFirst, resp.Items[0].ID)
			}
		})
	}
}

func TestQueryRowsTotalsFollowFilter(t *testing.T) {
	store := storeWithRows(
		models.TicketRow{ID: "T1", Application: "billing"},
		models.TicketRow{ID: "T2", Application: "billing"},
		models.TicketRow{ID: "T3", Application: "portal"},
	)

	resp := QueryRows(store, 0, 50, "billing", "")
	assert.Equal(t, int64(2), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Items, 2)
}

func TestQueryRowsEmptyStore(t *testing.T) {
	resp := QueryRows(NewMemoryStore(), 0, 50, "", "")

	assert.Equal(t, int64(0), resp.TotalItems)
	assert.Equal(t, 0, resp.TotalPages)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestQueryMetrics(t *testing.T) {
	store := storeWithRows(
		models.TicketRow{ID: "T1", Application: "billing", Month: "2024-01"},
	)

	t.Run("no filters return the stored aggregate", func(t *testing.T) {
		entries := QueryMetrics(store, "", "")
		require.Len(t, entries, 1)
		assert.Equal(t, 1, entries[0].TotalTickets)
	})

	t.Run("filters exclude the context-free aggregate", func(t *testing.T) {
		// Uploads carry no application/month context, so any non-blank
		// filter matches nothing even when the rows would match.
		assert.Empty(t, QueryMetrics(store, "billing", ""))
		assert.Empty(t, QueryMetrics(store, "", "2024-01"))
	})

	t.Run("empty store returns no entries", func(t *testing.T) {
		entries := QueryMetrics(NewMemoryStore(), "", "")
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}

func TestFormatAPIEntry(t *testing.T) {
	entry := models.MetricEntry{
		Application:         "billing",
		Month:               "2024-09",
		TotalTickets:        12,
		SlaAdherencePercent: 94.64,
		MttrHours:           2.5,
	}

	got := FormatAPIEntry(entry)

	require.NotNil(t, got.Application)
	assert.Equal(t, "billing", *got.Application)
	require.NotNil(t, got.Month)
	assert.Equal(t, "September", *got.Month)
	require.NotNil(t, got.NoOfTicketsReceived)
	assert.Equal(t, 12, *got.NoOfTicketsReceived)
	require.NotNil(t, got.MTTRResolveMin)
	assert.Equal(t, 150, *got.MTTRResolveMin)
	require.NotNil(t, got.AdherenceToResolutionSLA)
	assert.Equal(t, "95%", *got.AdherenceToResolutionSLA)
	require.NotNil(t, got.ResolutionAdherenceRate)
	assert.Equal(t, "95%", *got.ResolutionAdherenceRate)

	// Fields without source data stay null.
	assert.Nil(t, got.MTTRRespondMin)
	assert.Nil(t, got.AdherenceToResponseSLA)
	assert.Nil(t, got.Remarks)
}

func TestFormatAPIEntryContextFree(t *testing.T) {
	got := FormatAPIEntry(models.MetricEntry{TotalTickets: 3, SlaAdherencePercent: 100})

	assert.Nil(t, got.Application)
	assert.Nil(t, got.Month)
	require.NotNil(t, got.AdherenceToResolutionSLA)
	assert.Equal(t, "100%", *got.AdherenceToResolutionSLA)
}

func TestIsYearMonth(t *testing.T) {
	assert.True(t, isYearMonth("2024-01"))
	assert.True(t, isYearMonth("1999-12"))
	assert.False(t, isYearMonth("2024-13"))
	assert.False(t, isYearMonth("2024-00"))
	assert.False(t, isYearMonth("2024-1"))
	assert.False(t, isYearMonth("202401"))
	assert.False(t, isYearMonth(""))
}
