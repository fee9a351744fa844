// Package session wires the timer engine to its collaborators and exposes
// the command surface used by the desktop host.
package session

import (
	"log/slog"

	"focustimer/internal/audio"
	"focustimer/internal/core/history"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
)

// Config contains the inputs needed to build a Session.
type Config struct {
	Durations model.DurationConfig
	Volume    int
	Muted     bool
	Player    audio.Player
	Timer     timer.Options
	Logger    *slog.Logger
}

// Session owns one engine, its history log and its cue controller.
type Session struct {
	engine  *timer.Engine
	history *history.Log
	audio   *audio.Controller
}

// New builds a Session. The history log starts empty.
func New(config Config) *Session {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timer.Logger == nil {
		config.Timer.Logger = logger.With("component", "timer")
	}

	session := &Session{
		engine:  timer.New(config.Durations, config.Timer),
		history: history.New(),
		audio:   audio.NewController(config.Player, logger.With("component", "audio")),
	}
	session.audio.SetVolume(config.Volume)
	session.audio.SetMuted(config.Muted)
	session.engine.Attach(session.handleEvent)
	return session
}

func (session *Session) handleEvent(event timer.Event) {
	switch event.Type {
	case timer.EventPhaseCompleted:
		session.history.Append(event.Record)
		session.audio.SetRunning(false)
		session.audio.Alarm()
	case timer.EventTick:
	default:
		session.audio.SetRunning(event.State.Running)
	}
}

// Start begins or resumes the countdown.
func (session *Session) Start() { session.engine.Start() }

// Pause stops the countdown, keeping the remaining time.
func (session *Session) Pause() { session.engine.Pause() }

// Toggle pauses a running timer or starts a stopped one.
func (session *Session) Toggle() { session.engine.Toggle() }

// Reset stops the timer and reloads the current phase.
func (session *Session) Reset() { session.engine.Reset() }

// SetPhase switches the timer to phase, stopped.
func (session *Session) SetPhase(phase model.Phase) {
	session.engine.SetPhase(phase)
}

// UpdateDuration changes a phase length and returns the minutes applied.
func (session *Session) UpdateDuration(phase model.Phase, minutes int) int {
	return session.engine.UpdateDuration(phase, minutes)
}

// ApplyDurations pushes every phase of config through UpdateDuration.
// Phases whose length is unchanged leave the countdown alone.
func (session *Session) ApplyDurations(config model.DurationConfig) {
	for _, phase := range model.Phases() {
		session.engine.UpdateDuration(phase, config.Minutes(phase))
	}
}

// SetMuted silences or restores every cue without touching the timer.
func (session *Session) SetMuted(muted bool) { session.audio.SetMuted(muted) }

// SetVolume sets the cue volume, clamped to 0..100.
func (session *Session) SetVolume(percent int) { session.audio.SetVolume(percent) }

// Muted reports whether cues are silenced.
func (session *Session) Muted() bool { return session.audio.Muted() }

// Volume returns the cue volume in percent.
func (session *Session) Volume() int { return session.audio.Volume() }

// State returns the current timer snapshot.
func (session *Session) State() timer.State {
	return session.engine.State()
}

// Durations returns the configured phase lengths.
func (session *Session) Durations() model.DurationConfig {
	return session.engine.Durations()
}

// History returns completed phases, newest first.
func (session *Session) History() []model.SessionRecord {
	return session.history.All()
}

// Summary aggregates the history per phase.
func (session *Session) Summary() map[model.Phase]history.PhaseTotals {
	return session.history.Summary()
}

// Subscribe registers a UI observer channel.
func (session *Session) Subscribe(buffer int) <-chan timer.Event {
	return session.engine.Subscribe(buffer)
}

// Attach registers a synchronous listener, after the built-in collaborators.
func (session *Session) Attach(listener timer.Listener) {
	session.engine.Attach(listener)
}

// Close stops ticking, silences the loop and closes subscribers.
func (session *Session) Close() {
	session.engine.Close()
	session.audio.SetRunning(false)
}
