// Package notify turns engine events into desktop notifications.
package notify

import (
	"fmt"

	"focustimer/internal/core/timer"

	"fyne.io/fyne/v2"
)

const title = "Focus Timer"

// ForEvent returns the notifications an event warrants, in display order.
func ForEvent(event timer.Event) []*fyne.Notification {
	switch event.Type {
	case timer.EventCycleIncremented:
		cycles := event.State.Cycles
		next := "Time for a short break!"
		if cycles%timer.CyclesPerLongBreak == 0 {
			next = "Time for a long break!"
		}
		return []*fyne.Notification{
			fyne.NewNotification("Focus session completed!", completedMessage(cycles)),
			fyne.NewNotification(title, next),
		}
	case timer.EventPhaseCompleted:
		if event.Record.Phase.IsBreak() {
			return []*fyne.Notification{
				fyne.NewNotification(title, "Break time is over. Ready to focus again?"),
			}
		}
	}
	return nil
}

// Sender delivers notifications, usually fyne.App.
type Sender interface {
	SendNotification(*fyne.Notification)
}

// Listener returns an engine listener that forwards notifications while
// enabled reports true.
func Listener(sender Sender, enabled func() bool) timer.Listener {
	return func(event timer.Event) {
		if enabled != nil && !enabled() {
			return
		}
		for _, notification := range ForEvent(event) {
			sender.SendNotification(notification)
		}
	}
}

func completedMessage(cycles int) string {
	noun := "sessions"
	if cycles == 1 {
		noun = "session"
	}
	return fmt.Sprintf("Great job! You've completed %d %s today.", cycles, noun)
}
