package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeIncremental Mode = "incremental"
	ModeFull        Mode = "full"
)

// ParseMode maps the invocation input onto a Mode; empty means incremental.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeIncremental:
		return ModeIncremental, nil
	case ModeFull:
		return ModeFull, nil
	default:
		return "", fmt.Errorf("invalid sync mode %q", s)
	}
}

// Degradation is how far the fetcher had to fall back on the remote query.
type Degradation string

const (
	DegradationNone     Degradation = "none"
	DegradationNoSelect Degradation = "no-select"
	DegradationNoFilter Degradation = "no-filter"
)

// RunSummary holds the counters of one sync run.
type RunSummary struct {
	Fetched          int         `firestore:"fetched" json:"fetched"`
	Upserted         int         `firestore:"upserted" json:"upserted"`
	SkippedMissingID int         `firestore:"skippedMissingId" json:"skippedMissingId"`
	Events           int         `firestore:"events" json:"events"`
	Pages            int         `firestore:"pages" json:"pages"`
	Truncated        bool        `firestore:"truncated" json:"truncated"`
	Degradation      Degradation `firestore:"degradation" json:"degradation"`
	DurationMs       int64       `firestore:"durationMs" json:"durationMs"`
}

// SyncState is the persisted coordinator state, one document for the engine.
type SyncState struct {
	LastSyncAt          time.Time  `firestore:"lastSyncAt" json:"lastSyncAt"`
	LastRunAt           time.Time  `firestore:"lastRunAt" json:"lastRunAt"`
	LastMode            Mode       `firestore:"lastMode" json:"lastMode"`
	LastSelectSignature string     `firestore:"lastSelectSignature" json:"lastSelectSignature"`
	LastRunSummary      RunSummary `firestore:"lastRunSummary" json:"lastRunSummary"`
}

// FieldSchemaCache is the advisory list of columns known to exist on a remote table.
type FieldSchemaCache struct {
	Table     string    `firestore:"table"`
	Fields    []string  `firestore:"fields"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}
