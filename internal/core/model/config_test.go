package model

import (
	"testing"
	"time"
)

func TestDefaultDurations(t *testing.T) {
	config := DefaultDurations()
	if config.For(PhaseFocus) != 25*time.Minute {
		t.Fatalf("expected 25m focus, got %v", config.For(PhaseFocus))
	}
	if config.For(PhaseShortBreak) != 5*time.Minute {
		t.Fatalf("expected 5m short break, got %v", config.For(PhaseShortBreak))
	}
	if config.For(PhaseLongBreak) != 15*time.Minute {
		t.Fatalf("expected 15m long break, got %v", config.For(PhaseLongBreak))
	}
}

func TestUpdateClampsAndRounds(t *testing.T) {
	cases := []struct {
		name    string
		phase   Phase
		minutes int
		want    int
	}{
		{"focus in range", PhaseFocus, 50, 50},
		{"focus below min", PhaseFocus, 0, 5},
		{"focus negative", PhaseFocus, -20, 5},
		{"focus above max", PhaseFocus, 90, 60},
		{"focus rounds down", PhaseFocus, 27, 25},
		{"focus rounds up", PhaseFocus, 28, 30},
		{"short in range", PhaseShortBreak, 7, 7},
		{"short below min", PhaseShortBreak, 0, 1},
		{"short above max", PhaseShortBreak, 16, 15},
		{"long rounds up", PhaseLongBreak, 13, 15},
		{"long above max", PhaseLongBreak, 31, 30},
		{"long below min", PhaseLongBreak, 2, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultDurations()
			applied := config.Update(tc.phase, tc.minutes)
			if applied != tc.want {
				t.Fatalf("expected %d minutes applied, got %d", tc.want, applied)
			}
			if got := config.For(tc.phase); got != time.Duration(tc.want)*time.Minute {
				t.Fatalf("expected %dm stored, got %v", tc.want, got)
			}
		})
	}
}

func TestUpdateUnknownPhaseIsNoop(t *testing.T) {
	config := DefaultDurations()
	if applied := config.Update(Phase("nap"), 10); applied != 0 {
		t.Fatalf("expected 0 for unknown phase, got %d", applied)
	}
	if config != DefaultDurations() {
		t.Fatalf("unknown phase must not change the config: %+v", config)
	}
}

func TestNormalize(t *testing.T) {
	config := DurationConfig{
		Focus:      90 * time.Minute,
		ShortBreak: 0,
		LongBreak:  12*time.Minute + 40*time.Second,
	}
	config.Normalize()

	if config.Focus != 60*time.Minute {
		t.Fatalf("expected focus clamped to 60m, got %v", config.Focus)
	}
	if config.ShortBreak != 5*time.Minute {
		t.Fatalf("expected zero short break to fall back to 5m, got %v", config.ShortBreak)
	}
	if config.LongBreak != 15*time.Minute {
		t.Fatalf("expected long break snapped to 15m, got %v", config.LongBreak)
	}
}

func TestPhaseHelpers(t *testing.T) {
	if !PhaseFocus.Valid() || Phase("").Valid() {
		t.Fatalf("unexpected validity")
	}
	if PhaseFocus.IsBreak() || !PhaseLongBreak.IsBreak() {
		t.Fatalf("unexpected break classification")
	}
	if PhaseShortBreak.Label() != "Short Break" {
		t.Fatalf("unexpected label %q", PhaseShortBreak.Label())
	}
	if len(Phases()) != 3 || Phases()[0] != PhaseFocus {
		t.Fatalf("unexpected phase order %v", Phases())
	}
}
