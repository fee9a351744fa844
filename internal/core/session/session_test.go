package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"focustimer/internal/audio"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
)

type stepSchedule struct {
	fn func()
}

// stepScheduler fires ticks only when the test advances it.
type stepScheduler struct {
	active *stepSchedule
}

func (scheduler *stepScheduler) Every(_ time.Duration, fn func()) func() {
	schedule := &stepSchedule{fn: fn}
	scheduler.active = schedule
	return func() {
		if scheduler.active == schedule {
			scheduler.active = nil
		}
	}
}

func (scheduler *stepScheduler) advance(n int) {
	for i := 0; i < n && scheduler.active != nil; i++ {
		scheduler.active.fn()
	}
}

type cuePlayer struct {
	loopStarts int
	loopStops  int
	alarms     int
	volume     int
}

func (player *cuePlayer) Play(cue audio.Cue) error {
	if cue == audio.CueAlarm {
		player.alarms++
	}
	return nil
}

func (player *cuePlayer) Loop(_ audio.Cue, playing bool) error {
	if playing {
		player.loopStarts++
	} else {
		player.loopStops++
	}
	return nil
}

func (player *cuePlayer) SetVolume(percent int) error {
	player.volume = percent
	return nil
}

func newTestSession(t *testing.T) (*Session, *stepScheduler, *cuePlayer) {
	t.Helper()
	scheduler := &stepScheduler{}
	player := &cuePlayer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := New(Config{
		Durations: model.DefaultDurations(),
		Volume:    audio.DefaultVolume,
		Player:    player,
		Timer:     timer.Options{Scheduler: scheduler},
		Logger:    logger,
	})
	t.Cleanup(session.Close)
	return session, scheduler, player
}

func TestFocusThenShortBreakScenario(t *testing.T) {
	session, scheduler, player := newTestSession(t)

	session.Start()
	scheduler.advance(1500)

	state := session.State()
	if state.Phase != model.PhaseShortBreak || state.Cycles != 1 || state.Running {
		t.Fatalf("unexpected state after focus %+v", state)
	}
	records := session.History()
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Phase != model.PhaseFocus || records[0].Actual != 1500*time.Second {
		t.Fatalf("unexpected record %+v", records[0])
	}
	if player.alarms != 1 {
		t.Fatalf("expected one alarm, got %d", player.alarms)
	}
	if player.loopStarts != 1 || player.loopStops != 1 {
		t.Fatalf("loop should start once and stop on completion, got %d/%d", player.loopStarts, player.loopStops)
	}

	session.Start()
	scheduler.advance(300)

	state = session.State()
	if state.Phase != model.PhaseFocus {
		t.Fatalf("expected focus after the short break, got %s", state.Phase)
	}
	records = session.History()
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0].Phase != model.PhaseShortBreak || records[1].Phase != model.PhaseFocus {
		t.Fatalf("history must be newest first: %+v", records)
	}
	if player.alarms != 2 {
		t.Fatalf("expected two alarms, got %d", player.alarms)
	}
}

func TestFourthBreakIsLong(t *testing.T) {
	session, scheduler, _ := newTestSession(t)

	var breaks []model.Phase
	for i := 0; i < 4; i++ {
		session.Start()
		scheduler.advance(1500)
		phase := session.State().Phase
		breaks = append(breaks, phase)
		session.Start()
		scheduler.advance(int(session.Durations().For(phase) / time.Second))
	}

	want := []model.Phase{model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseLongBreak}
	for i := range want {
		if breaks[i] != want[i] {
			t.Fatalf("break %d: expected %s, got %s", i+1, want[i], breaks[i])
		}
	}
	if session.State().Cycles != 4 {
		t.Fatalf("expected 4 cycles, got %d", session.State().Cycles)
	}
	if got := session.Summary()[model.PhaseFocus].Count; got != 4 {
		t.Fatalf("expected 4 focus records, got %d", got)
	}
}

func TestMuteWhileRunningKeepsCounting(t *testing.T) {
	session, scheduler, player := newTestSession(t)
	session.Start()
	scheduler.advance(10)

	session.SetMuted(true)
	if player.loopStops != 1 {
		t.Fatalf("mute must stop the loop synchronously")
	}

	scheduler.advance(10)
	state := session.State()
	if !state.Running || state.Remaining != 25*time.Minute-20*time.Second {
		t.Fatalf("countdown must continue while muted: %+v", state)
	}
	if player.loopStarts != 1 {
		t.Fatalf("no loop restarts expected while muted, got %d", player.loopStarts)
	}

	scheduler.advance(1480)
	if player.alarms != 0 {
		t.Fatalf("muted completion must not fire the alarm")
	}
	if len(session.History()) != 1 {
		t.Fatalf("muted completion is still recorded")
	}
}

func TestPauseStopsLoop(t *testing.T) {
	session, scheduler, player := newTestSession(t)
	session.Start()
	scheduler.advance(3)
	session.Pause()
	if player.loopStops != 1 {
		t.Fatalf("pause should stop the loop")
	}
	session.Toggle()
	if player.loopStarts != 2 || !session.State().Running {
		t.Fatalf("toggle should resume with the loop")
	}
}

func TestApplyDurationsAndVolume(t *testing.T) {
	session, _, player := newTestSession(t)
	session.ApplyDurations(model.DurationConfig{
		Focus:      50 * time.Minute,
		ShortBreak: 10 * time.Minute,
		LongBreak:  30 * time.Minute,
	})

	if session.State().Remaining != 3000*time.Second {
		t.Fatalf("stopped focus should pick up the new length")
	}
	if session.Durations().LongBreak != 30*time.Minute {
		t.Fatalf("long break not applied")
	}

	session.SetVolume(25)
	if session.Volume() != 25 || player.volume != 25 {
		t.Fatalf("volume not applied")
	}
}

func TestApplyUnchangedDurationsKeepsPausedCountdown(t *testing.T) {
	session, scheduler, _ := newTestSession(t)
	session.Start()
	scheduler.advance(600)
	session.Pause()

	before := session.State().Remaining
	session.ApplyDurations(session.Durations())
	if after := session.State().Remaining; after != before {
		t.Fatalf("saving unchanged durations moved the countdown from %v to %v", before, after)
	}
	if before != 15*time.Minute {
		t.Fatalf("expected 15m left after 600 ticks, got %v", before)
	}
}

func TestAttachRunsAfterHistory(t *testing.T) {
	session, scheduler, _ := newTestSession(t)
	session.UpdateDuration(model.PhaseFocus, 5)

	var seen int
	session.Attach(func(event timer.Event) {
		if event.Type == timer.EventPhaseCompleted {
			seen = len(session.History())
		}
	})
	session.Start()
	scheduler.advance(300)
	if seen != 1 {
		t.Fatalf("external listeners should observe the appended record, saw %d", seen)
	}
}
