package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketmetrics/models"
)

func TestMemoryStoreEmpty(t *testing.T) {
	store := NewMemoryStore()

	snapshot, ok := store.Current()
	assert.False(t, ok)
	assert.Nil(t, snapshot)
}

func TestMemoryStoreReplaceWins(t *testing.T) {
	store := NewMemoryStore()

	first := &models.Snapshot{ID: "first"}
	second := &models.Snapshot{ID: "second"}

	store.Replace(first)
	snapshot, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "first", snapshot.ID)

	store.Replace(second)
	snapshot, ok = store.Current()
	require.True(t, ok)
	assert.Equal(t, "second", snapshot.ID)
}

func TestMemoryStoreReaderKeepsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	store.Replace(&models.Snapshot{ID: "old", Rows: []models.TicketRow{{ID: "T1"}}})

	held, ok := store.Current()
	require.True(t, ok)

	store.Replace(&models.Snapshot{ID: "new"})

	// The snapshot handed out earlier is unaffected by the swap.
	assert.Equal(t, "old", held.ID)
	assert.Len(t, held.Rows, 1)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	store.Replace(&models.Snapshot{ID: "seed"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Replace(&models.Snapshot{ID: "writer"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snapshot, ok := store.Current()
				assert.True(t, ok)
				assert.NotNil(t, snapshot)
			}
		}()
	}
	wg.Wait()
}
