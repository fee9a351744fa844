package model

import "time"

// SessionRecord describes one completed phase.
type SessionRecord struct {
	Phase       Phase
	Actual      time.Duration
	CompletedAt time.Time
}
