package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
	"focustimer/internal/storage"
)

const (
	journalQueueSize    = 32
	journalWriteTimeout = 2 * time.Second
)

// journalWriter persists completed phases on its own goroutine so a slow
// disk never holds up the engine. Write failures are logged only.
type journalWriter struct {
	journal *storage.Journal
	logger  *slog.Logger
	records chan model.SessionRecord
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

func newJournalWriter(journal *storage.Journal, logger *slog.Logger, buffer int) *journalWriter {
	if buffer <= 0 {
		buffer = journalQueueSize
	}
	writer := &journalWriter{
		journal: journal,
		logger:  logger,
		records: make(chan model.SessionRecord, buffer),
		done:    make(chan struct{}),
	}
	go writer.run()
	return writer
}

// Listener queues completed phases without blocking the caller.
func (writer *journalWriter) Listener() timer.Listener {
	return func(event timer.Event) {
		if event.Type != timer.EventPhaseCompleted {
			return
		}
		writer.mu.Lock()
		defer writer.mu.Unlock()
		if writer.closed {
			return
		}
		select {
		case writer.records <- event.Record:
		default:
			writer.logger.Warn("journal queue full, dropping session", "phase", event.Record.Phase)
		}
	}
}

// Close flushes queued records and stops the writer.
func (writer *journalWriter) Close() {
	writer.mu.Lock()
	if writer.closed {
		writer.mu.Unlock()
		return
	}
	writer.closed = true
	close(writer.records)
	writer.mu.Unlock()
	<-writer.done
}

func (writer *journalWriter) run() {
	defer close(writer.done)
	for record := range writer.records {
		writer.write(record)
	}
}

func (writer *journalWriter) write(record model.SessionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()
	id, err := writer.journal.Record(ctx, record)
	if err != nil {
		writer.logger.Error("record session", "phase", record.Phase, "error", err)
		return
	}
	writer.logger.Debug("session recorded", "id", id, "phase", record.Phase)
}
