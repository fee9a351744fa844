package history

import (
	"sync"
	"time"

	"focustimer/internal/core/model"
)

// Log is an in-memory, append-only record of completed phases.
// It grows for the lifetime of the process and is never persisted here.
type Log struct {
	mu      sync.RWMutex
	records []model.SessionRecord
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Append records a completed phase.
func (log *Log) Append(record model.SessionRecord) {
	log.mu.Lock()
	log.records = append(log.records, record)
	log.mu.Unlock()
}

// All returns a copy of every record, newest first.
func (log *Log) All() []model.SessionRecord {
	log.mu.RLock()
	defer log.mu.RUnlock()

	result := make([]model.SessionRecord, len(log.records))
	for i, record := range log.records {
		result[len(log.records)-1-i] = record
	}
	return result
}

// PhaseTotals aggregates the records of one phase.
type PhaseTotals struct {
	Count int
	Time  time.Duration
}

// Summary aggregates records per phase.
func (log *Log) Summary() map[model.Phase]PhaseTotals {
	log.mu.RLock()
	defer log.mu.RUnlock()

	summary := make(map[model.Phase]PhaseTotals, len(model.Phases()))
	for _, record := range log.records {
		totals := summary[record.Phase]
		totals.Count++
		totals.Time += record.Actual
		summary[record.Phase] = totals
	}
	return summary
}
