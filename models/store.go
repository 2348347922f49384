package models

// SnapshotStore defines the dataset store for ticketmetrics.
//
// It holds the most recently ingested snapshot under a single-writer,
// multiple-reader discipline. There is no merging or versioning beyond
// last-write-wins: every Replace fully supersedes the previous snapshot.
// The primary implementation is MemoryStore, which keeps the snapshot
// in process memory; persistence across restarts is deliberately out of
// scope.
//
// Thread safety: implementations must guarantee that readers never
// observe a partially-written snapshot. Snapshots are treated as
// immutable after publication, so a reader holding a snapshot from
// Current is unaffected by later Replace calls.
type SnapshotStore interface {
	// Replace atomically publishes a new snapshot, discarding the old
	// one. The snapshot must not be mutated after it is passed in.
	Replace(s *Snapshot)

	// Current returns the latest published snapshot.
	//
	// Returns the snapshot and true if an ingestion has happened,
	// nil and false otherwise.
	Current() (*Snapshot, bool)
}
