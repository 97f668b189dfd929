package domain

import "time"

// HistoryRecord captures one interpreted line and its outcome.
type HistoryRecord struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Input      string      `json:"input"`
	Kind       CommandKind `json:"kind"`
	ExitCode   int         `json:"exit_code"`
	DurationMS int64       `json:"duration_ms"`
}
