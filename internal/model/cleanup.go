package model

import "time"

// SampleLimit caps the number of names returned by a scan for preview.
const SampleLimit = 10

// CleanupFilter selects files in Directory whose name ends with Extension and
// whose modification time is strictly before Cutoff (unix seconds).
type CleanupFilter struct {
	Directory string
	Extension string
	Cutoff    int64
}

type ScanResult struct {
	// Extension is the normalized extension the scan matched against.
	Extension string
	MatchCount  int
	TotalBytes  int64
	SampleNames []string
	// Paths holds every matched path. It never leaves the server.
	Paths []string
	// ExtensionMatches counts files that matched the extension regardless of age.
	ExtensionMatches int
}

type ExecuteResult struct {
	DeletedCount int
	FreedBytes   int64
	FailedCount  int
}

// CleanupRecord is the persisted outcome of one executed cleanup.
type CleanupRecord struct {
	ID           string    `json:"id" db:"id"`
	Directory    string    `json:"directory" db:"directory"`
	Extension    string    `json:"extension" db:"extension"`
	Cutoff       int64     `json:"beforeTimestamp" db:"cutoff"`
	DeletedCount int       `json:"count" db:"deleted_count"`
	FreedBytes   int64     `json:"totalSize" db:"freed_bytes"`
	FailedCount  int       `json:"failed" db:"failed_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
