package audio

import (
	"log/slog"
	"sync"
)

// DefaultVolume is the initial cue volume in percent.
const DefaultVolume = 70

// Controller keeps the ambient loop playing exactly while the timer runs
// unmuted and fires the completion alarm. Playback errors are logged and
// dropped; a missed cue never reaches the caller.
type Controller struct {
	mu      sync.Mutex
	player  Player
	logger  *slog.Logger
	running bool
	muted   bool
	volume  int
	looping bool
}

// NewController creates a controller at DefaultVolume.
func NewController(player Player, logger *slog.Logger) *Controller {
	if player == nil {
		player = NopPlayer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	controller := &Controller{
		player: player,
		logger: logger,
		volume: DefaultVolume,
	}
	controller.report("set volume", controller.player.SetVolume(controller.volume))
	return controller
}

// SetRunning tells the controller whether the timer is ticking.
func (controller *Controller) SetRunning(running bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.running = running
	controller.syncLoopLocked()
}

// SetMuted silences or restores both cues. The loop follows immediately.
func (controller *Controller) SetMuted(muted bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.muted = muted
	controller.syncLoopLocked()
}

// SetVolume applies percent, clamped to 0..100, without restarting the loop.
func (controller *Controller) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if percent == controller.volume {
		return
	}
	controller.volume = percent
	controller.report("set volume", controller.player.SetVolume(percent))
}

// Alarm fires the completion cue unless muted.
func (controller *Controller) Alarm() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.muted {
		return
	}
	controller.report("play alarm", controller.player.Play(CueAlarm))
}

// Muted reports the mute flag.
func (controller *Controller) Muted() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.muted
}

// Volume reports the current volume in percent.
func (controller *Controller) Volume() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.volume
}

// loopActive reports whether the ambient loop should currently be audible.
func (controller *Controller) loopActive() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.looping
}

func (controller *Controller) syncLoopLocked() {
	want := controller.running && !controller.muted
	if want == controller.looping {
		return
	}
	controller.looping = want
	controller.report("toggle ticking loop", controller.player.Loop(CueTicking, want))
}

func (controller *Controller) report(action string, err error) {
	if err != nil {
		controller.logger.Warn("audio cue failed", "action", action, "error", err)
	}
}
