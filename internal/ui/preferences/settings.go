package preferences

import (
	"focustimer/internal/audio"
	"focustimer/internal/core/model"
	"focustimer/internal/core/session"
)

// Settings defines editable user preferences.
type Settings struct {
	Durations     model.DurationConfig
	Volume        int
	Muted         bool
	Notifications bool
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		Durations:     model.DefaultDurations(),
		Volume:        audio.DefaultVolume,
		Muted:         false,
		Notifications: true,
	}
}

// Normalized clamps durations and volume into their valid ranges.
func (settings Settings) Normalized() Settings {
	settings.Durations.Normalize()
	if settings.Volume < 0 {
		settings.Volume = 0
	}
	if settings.Volume > 100 {
		settings.Volume = 100
	}
	return settings
}

// SessionConfig converts settings to a session configuration.
// Player, timer options and logger are left for the caller.
func (settings Settings) SessionConfig() session.Config {
	return session.Config{
		Durations: settings.Durations,
		Volume:    settings.Volume,
		Muted:     settings.Muted,
	}
}
