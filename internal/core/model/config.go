package model

import "time"

// Bounds defines the editable range of a phase duration in minutes.
type Bounds struct {
	Min  int
	Max  int
	Step int
}

var phaseBounds = map[Phase]Bounds{
	PhaseFocus:      {Min: 5, Max: 60, Step: 5},
	PhaseShortBreak: {Min: 1, Max: 15, Step: 1},
	PhaseLongBreak:  {Min: 5, Max: 30, Step: 5},
}

// BoundsFor returns the editable range for a phase.
func BoundsFor(phase Phase) (Bounds, bool) {
	bounds, ok := phaseBounds[phase]
	return bounds, ok
}

// Clamp limits minutes to the range and snaps them to the nearest step.
func (bounds Bounds) Clamp(minutes int) int {
	if minutes < bounds.Min {
		minutes = bounds.Min
	}
	if minutes > bounds.Max {
		minutes = bounds.Max
	}
	if bounds.Step <= 1 {
		return minutes
	}
	steps := (minutes - bounds.Min + bounds.Step/2) / bounds.Step
	snapped := bounds.Min + steps*bounds.Step
	if snapped > bounds.Max {
		snapped = bounds.Max
	}
	return snapped
}

// DurationConfig holds the configured length of each phase.
type DurationConfig struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns 25/5/15 minute phases.
func DefaultDurations() DurationConfig {
	return DurationConfig{
		Focus:      25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// For returns the configured duration of a phase.
func (config DurationConfig) For(phase Phase) time.Duration {
	switch phase {
	case PhaseFocus:
		return config.Focus
	case PhaseShortBreak:
		return config.ShortBreak
	case PhaseLongBreak:
		return config.LongBreak
	}
	return 0
}

// Minutes returns the configured duration of a phase in whole minutes.
func (config DurationConfig) Minutes(phase Phase) int {
	return int(config.For(phase) / time.Minute)
}

// Update clamps minutes to the phase bounds and stores the result.
// It returns the minutes applied, or 0 for an unknown phase.
func (config *DurationConfig) Update(phase Phase, minutes int) int {
	bounds, ok := BoundsFor(phase)
	if !ok {
		return 0
	}
	applied := bounds.Clamp(minutes)
	value := time.Duration(applied) * time.Minute
	switch phase {
	case PhaseFocus:
		config.Focus = value
	case PhaseShortBreak:
		config.ShortBreak = value
	case PhaseLongBreak:
		config.LongBreak = value
	}
	return applied
}

// Normalize clamps every phase into its bounds. Zero values fall back to defaults.
func (config *DurationConfig) Normalize() {
	defaults := DefaultDurations()
	for _, phase := range Phases() {
		current := config.For(phase)
		if current <= 0 {
			current = defaults.For(phase)
		}
		config.Update(phase, int((current+30*time.Second)/time.Minute))
	}
}
