package events

import "time"

// SnapshotPublished is sent when a documentation snapshot has been written
// to object storage.
type SnapshotPublished struct {
	Bucket    string    // S3 bucket name (e.g., "teasite")
	Prefix    string    // S3 prefix (e.g., "snapshots/2026-01-02T10-00-00")
	Documents int       // Number of documents in the snapshot
	Timestamp time.Time // When the upload completed
}

// MirrorComplete is sent when a snapshot has been indexed into the search
// mirror.
type MirrorComplete struct {
	Prefix   string        // S3 prefix that was mirrored
	Indexed  int           // Number of documents indexed
	Pruned   int           // Stale documents removed from the index
	Duration time.Duration // How long mirroring took
	Errors   []string      // Per-document failures (non-fatal)
}
