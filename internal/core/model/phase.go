package model

// Phase identifies the timer mode.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Phases returns every phase in tab order.
func Phases() []Phase {
	return []Phase{PhaseFocus, PhaseShortBreak, PhaseLongBreak}
}

// Valid reports whether the phase is one of the known modes.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseFocus, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Label returns the display name of the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseFocus:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(phase)
}
