package timer

import (
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/model"
)

// CyclesPerLongBreak is the number of completed focus phases between long breaks.
const CyclesPerLongBreak = 4

// Options contains runtime options for Engine.
type Options struct {
	Scheduler Scheduler
	Interval  time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
}

// Engine is the focus/break state machine. It never auto-starts a phase:
// after a phase completes the next one is loaded paused.
type Engine struct {
	mu         sync.Mutex
	options    Options
	durations  model.DurationConfig
	state      State
	cancelTick func()
	generation uint64
	listeners  []Listener
	events     []chan Event
	queue      []Event
	draining   bool
	closed     bool
	toClose    []chan Event
}

// New creates an Engine paused at the start of a focus phase.
func New(durations model.DurationConfig, options Options) *Engine {
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Interval <= 0 {
		options.Interval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	durations.Normalize()

	engine := &Engine{
		options:   options,
		durations: durations,
	}
	engine.loadPhaseLocked(model.PhaseFocus)
	return engine
}

// Attach registers a listener that is called synchronously for every event.
// Listeners may read State but should not block.
func (engine *Engine) Attach(listener Listener) {
	if listener == nil {
		return
	}
	engine.mu.Lock()
	engine.listeners = append(engine.listeners, listener)
	engine.mu.Unlock()
}

// Subscribe registers a new observer channel. Sends never block the engine;
// a full channel drops the event.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// State returns a snapshot of the timer.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Durations returns the configured phase lengths.
func (engine *Engine) Durations() model.DurationConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.durations
}

// Start begins ticking. A phase left at zero is reloaded first.
func (engine *Engine) Start() {
	engine.mu.Lock()
	engine.startLocked()
	engine.commitLocked()
}

// Pause stops ticking without touching the remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	engine.pauseLocked()
	engine.commitLocked()
}

// Toggle starts a paused timer or pauses a running one.
func (engine *Engine) Toggle() {
	engine.mu.Lock()
	if engine.state.Running {
		engine.pauseLocked()
	} else {
		engine.startLocked()
	}
	engine.commitLocked()
}

// Reset stops ticking and reloads the full duration of the current phase.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	engine.state.Running = false
	engine.cancelLocked()
	engine.loadPhaseLocked(engine.state.Phase)
	engine.queueLocked(Event{Type: EventStateChange})
	engine.commitLocked()
}

// SetPhase switches to phase, stopped, with its full duration loaded.
func (engine *Engine) SetPhase(phase model.Phase) {
	if !phase.Valid() {
		return
	}
	engine.mu.Lock()
	engine.state.Running = false
	engine.cancelLocked()
	engine.loadPhaseLocked(phase)
	engine.options.Logger.Debug("phase selected", "phase", phase)
	engine.queueLocked(Event{Type: EventStateChange})
	engine.commitLocked()
}

// UpdateDuration clamps minutes into the bounds of phase and stores it.
// A stopped timer showing that phase picks the new length up immediately;
// otherwise it applies on the next fresh load. A value equal to the stored
// one changes nothing. It returns the minutes applied.
func (engine *Engine) UpdateDuration(phase model.Phase, minutes int) int {
	engine.mu.Lock()
	previous := engine.durations.For(phase)
	applied := engine.durations.Update(phase, minutes)
	if applied == 0 || engine.durations.For(phase) == previous {
		engine.mu.Unlock()
		return applied
	}
	if phase == engine.state.Phase && !engine.state.Running {
		engine.loadPhaseLocked(phase)
	}
	engine.queueLocked(Event{Type: EventDurationsChanged})
	engine.commitLocked()
	return applied
}

// Tick advances the countdown by one second. It is a no-op while stopped.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	engine.tickLocked()
	engine.commitLocked()
}

// Close cancels ticking and closes subscriber channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.state.Running = false
	engine.cancelLocked()
	channels := engine.events
	engine.events = nil
	if engine.draining {
		engine.toClose = append(engine.toClose, channels...)
		engine.mu.Unlock()
		return
	}
	engine.mu.Unlock()

	for _, ch := range channels {
		close(ch)
	}
}

func (engine *Engine) startLocked() {
	if engine.closed || engine.state.Running {
		return
	}
	if engine.state.Remaining <= 0 {
		engine.loadPhaseLocked(engine.state.Phase)
	}
	engine.state.Running = true
	engine.scheduleLocked()
	engine.options.Logger.Debug("timer started", "phase", engine.state.Phase, "remaining", engine.state.Remaining)
	engine.queueLocked(Event{Type: EventStateChange})
}

func (engine *Engine) pauseLocked() {
	if !engine.state.Running {
		return
	}
	engine.state.Running = false
	engine.cancelLocked()
	engine.options.Logger.Debug("timer paused", "phase", engine.state.Phase, "remaining", engine.state.Remaining)
	engine.queueLocked(Event{Type: EventStateChange})
}

func (engine *Engine) scheduleLocked() {
	engine.cancelLocked()
	generation := engine.generation
	engine.cancelTick = engine.options.Scheduler.Every(engine.options.Interval, func() {
		engine.tickFrom(generation)
	})
}

// cancelLocked stops the active schedule. Bumping the generation turns any
// tick already in flight from that schedule into a no-op.
func (engine *Engine) cancelLocked() {
	engine.generation++
	if engine.cancelTick != nil {
		engine.cancelTick()
		engine.cancelTick = nil
	}
}

func (engine *Engine) tickFrom(generation uint64) {
	engine.mu.Lock()
	if generation != engine.generation {
		engine.mu.Unlock()
		return
	}
	engine.tickLocked()
	engine.commitLocked()
}

func (engine *Engine) tickLocked() {
	if !engine.state.Running {
		return
	}
	if engine.state.Remaining > time.Second {
		engine.state.Remaining -= time.Second
		engine.queueLocked(Event{Type: EventTick})
		return
	}
	engine.state.Remaining = 0
	engine.completeLocked()
}

func (engine *Engine) completeLocked() {
	finished := engine.state.Phase
	record := model.SessionRecord{
		Phase:       finished,
		Actual:      engine.state.Total - engine.state.Remaining,
		CompletedAt: engine.options.Now(),
	}

	engine.state.Running = false
	engine.cancelLocked()
	engine.queueLocked(Event{Type: EventPhaseCompleted, Record: record})

	next := model.PhaseFocus
	if finished == model.PhaseFocus {
		engine.state.Cycles++
		engine.queueLocked(Event{Type: EventCycleIncremented})
		next = model.PhaseShortBreak
		if engine.state.Cycles%CyclesPerLongBreak == 0 {
			next = model.PhaseLongBreak
		}
	}

	engine.loadPhaseLocked(next)
	engine.options.Logger.Info("phase completed",
		"phase", finished,
		"actual", record.Actual,
		"cycles", engine.state.Cycles,
		"next", next,
	)
	engine.queueLocked(Event{Type: EventStateChange})
}

func (engine *Engine) loadPhaseLocked(phase model.Phase) {
	engine.state.Phase = phase
	engine.state.Total = engine.durations.For(phase)
	engine.state.Remaining = engine.state.Total
}

func (engine *Engine) queueLocked(event Event) {
	event.State = engine.state
	event.Durations = engine.durations
	event.At = engine.options.Now()
	engine.queue = append(engine.queue, event)
}

// commitLocked delivers queued events and releases the lock. Only one caller
// drains at a time; events queued meanwhile are picked up by the drainer,
// so listeners observe them in the order they were produced.
func (engine *Engine) commitLocked() {
	if engine.draining || len(engine.queue) == 0 {
		engine.mu.Unlock()
		return
	}
	engine.draining = true
	for len(engine.queue) > 0 {
		batch := engine.queue
		engine.queue = nil
		listeners := append([]Listener(nil), engine.listeners...)
		channels := append([]chan Event(nil), engine.events...)
		engine.mu.Unlock()

		for _, event := range batch {
			for _, listener := range listeners {
				listener(event)
			}
			for _, ch := range channels {
				select {
				case ch <- event:
				default:
				}
			}
		}

		engine.mu.Lock()
	}
	engine.draining = false
	toClose := engine.toClose
	engine.toClose = nil
	engine.mu.Unlock()

	for _, ch := range toClose {
		close(ch)
	}
}
