package audio

import "errors"

// Cue identifies an audio signal.
type Cue string

const (
	// CueTicking is the ambient loop played while a phase is running.
	CueTicking Cue = "ticking"
	// CueAlarm is the one-shot signal fired when a phase completes.
	CueAlarm Cue = "alarm"
)

// ErrUnknownCue indicates the backend has no sound loaded for a cue.
var ErrUnknownCue = errors.New("unknown cue")

// Player is the playback capability used by Controller.
type Player interface {
	Play(cue Cue) error
	Loop(cue Cue, playing bool) error
	SetVolume(percent int) error
}

// NopPlayer discards every call. It stands in when no audio device is available.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(Cue) error { return nil }

// Loop does nothing.
func (NopPlayer) Loop(Cue, bool) error { return nil }

// SetVolume does nothing.
func (NopPlayer) SetVolume(int) error { return nil }
