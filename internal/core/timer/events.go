package timer

import (
	"fmt"
	"time"

	"focustimer/internal/core/model"
)

// State is an immutable snapshot of the timer.
type State struct {
	Phase     model.Phase
	Remaining time.Duration
	Total     time.Duration
	Running   bool
	Cycles    int
}

// Progress returns the elapsed share of the current countdown in percent.
func (state State) Progress() float64 {
	if state.Total <= 0 {
		return 0
	}
	progress := 100 - float64(state.Remaining)/float64(state.Total)*100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// Clock renders the remaining time as MM:SS.
func (state State) Clock() string {
	return FormatClock(state.Remaining)
}

// FormatClock renders a duration as MM:SS.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange      EventType = "state_change"
	EventTick             EventType = "tick"
	EventPhaseCompleted   EventType = "phase_completed"
	EventCycleIncremented EventType = "cycle_incremented"
	EventDurationsChanged EventType = "durations_changed"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	State     State
	Record    model.SessionRecord
	Durations model.DurationConfig
	At        time.Time
}

// Listener receives events synchronously, in the order the engine produced them.
type Listener func(Event)
