package timerview

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"focustimer/internal/core/history"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controls is the command surface the window drives.
type Controls interface {
	Toggle()
	Reset()
	SetPhase(phase model.Phase)
	SetMuted(muted bool)
	SetVolume(percent int)
	State() timer.State
	History() []model.SessionRecord
	Summary() map[model.Phase]history.PhaseTotals
	Muted() bool
	Volume() int
}

var phaseColors = map[model.Phase]color.NRGBA{
	model.PhaseFocus:      {R: 155, G: 135, B: 245, A: 255},
	model.PhaseShortBreak: {R: 51, G: 195, B: 240, A: 255},
	model.PhaseLongBreak:  {R: 76, G: 175, B: 80, A: 255},
}

// Window shows the countdown, controls and session history.
type Window struct {
	window       fyne.Window
	controls     Controls
	phases       *widget.RadioGroup
	clockLabel   *canvas.Text
	progress     *widget.ProgressBar
	toggleButton *widget.Button
	resetButton  *widget.Button
	muteCheck    *widget.Check
	volume       *widget.Slider
	cyclesLabel  *widget.Label
	summaryLabel *widget.Label
	historyList  *widget.List
	history      []model.SessionRecord
	updating     bool
}

// New creates the timer window. It is not shown until Show is called.
func New(app fyne.App, controls Controls) *Window {
	window := app.NewWindow("Focus Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:   window,
		controls: controls,
	}

	labels := make([]string, 0, len(model.Phases()))
	for _, phase := range model.Phases() {
		labels = append(labels, phase.Label())
	}
	view.phases = widget.NewRadioGroup(labels, view.handlePhaseSelected)
	view.phases.Horizontal = true
	view.phases.Required = true

	view.clockLabel = canvas.NewText("--:--", phaseColors[model.PhaseFocus])
	view.clockLabel.Alignment = fyne.TextAlignCenter
	view.clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clockLabel.TextSize = 56

	view.progress = widget.NewProgressBar()
	view.progress.Max = 100
	view.progress.TextFormatter = func() string {
		return fmt.Sprintf("%.0f%%", view.progress.Value)
	}

	view.toggleButton = widget.NewButton("Start", controls.Toggle)
	view.toggleButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButton("Reset", controls.Reset)

	view.muteCheck = widget.NewCheck("Mute", view.handleMuted)
	view.volume = widget.NewSlider(0, 100)
	view.volume.Step = 1
	view.volume.OnChanged = view.handleVolume

	view.cyclesLabel = widget.NewLabel("")
	view.summaryLabel = widget.NewLabel("")
	view.historyList = widget.NewList(
		func() int {
			return len(view.history)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(view.history) {
				return
			}
			item.(*widget.Label).SetText(describeRecord(view.history[id]))
		},
	)

	controlsRow := container.NewHBox(layout.NewSpacer(), view.toggleButton, view.resetButton, layout.NewSpacer())
	audioRow := container.NewBorder(nil, nil, view.muteCheck, nil, view.volume)
	timerPanel := container.NewVBox(
		container.NewCenter(view.phases),
		view.clockLabel,
		view.progress,
		controlsRow,
		audioRow,
		view.cyclesLabel,
		view.summaryLabel,
	)
	historyPanel := container.NewBorder(
		widget.NewLabelWithStyle("Session History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		view.historyList,
	)

	window.SetContent(container.NewHSplit(timerPanel, historyPanel))
	window.Resize(fyne.NewSize(720, 380))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	view.render(controls.State())
	view.renderAudio()
	view.refreshHistory()
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Update applies an engine event from any goroutine.
func (view *Window) Update(event timer.Event) {
	fyne.Do(func() {
		view.render(event.State)
		if event.Type == timer.EventPhaseCompleted {
			view.refreshHistory()
		}
	})
}

// RefreshAudio re-reads mute and volume after they changed elsewhere.
func (view *Window) RefreshAudio() {
	fyne.Do(view.renderAudio)
}

func (view *Window) render(state timer.State) {
	view.updating = true
	defer func() {
		view.updating = false
	}()

	view.phases.SetSelected(state.Phase.Label())
	view.clockLabel.Text = state.Clock()
	view.clockLabel.Color = phaseColors[state.Phase]
	view.clockLabel.Refresh()
	view.progress.SetValue(state.Progress())

	if state.Running {
		view.toggleButton.SetText("Pause")
	} else {
		view.toggleButton.SetText("Start")
	}
	view.cyclesLabel.SetText(fmt.Sprintf("Session count: %d", state.Cycles))
}

func (view *Window) renderAudio() {
	view.updating = true
	defer func() {
		view.updating = false
	}()

	view.muteCheck.SetChecked(view.controls.Muted())
	view.volume.SetValue(float64(view.controls.Volume()))
	if view.controls.Muted() {
		view.volume.Disable()
	} else {
		view.volume.Enable()
	}
}

func (view *Window) refreshHistory() {
	view.history = view.controls.History()
	view.historyList.Refresh()
	view.summaryLabel.SetText(describeSummary(view.controls.Summary()))
}

func (view *Window) handlePhaseSelected(label string) {
	if view.updating {
		return
	}
	for _, phase := range model.Phases() {
		if phase.Label() == label {
			view.controls.SetPhase(phase)
			return
		}
	}
}

func (view *Window) handleMuted(muted bool) {
	if view.updating {
		return
	}
	view.controls.SetMuted(muted)
	if muted {
		view.volume.Disable()
	} else {
		view.volume.Enable()
	}
}

func (view *Window) handleVolume(value float64) {
	if view.updating {
		return
	}
	view.controls.SetVolume(int(value))
}

func describeRecord(record model.SessionRecord) string {
	return fmt.Sprintf("%s · %s · %s",
		record.Phase.Label(),
		timer.FormatClock(record.Actual),
		record.CompletedAt.Format("Jan 2 15:04"),
	)
}

func describeSummary(summary map[model.Phase]history.PhaseTotals) string {
	parts := make([]string, 0, len(model.Phases())+1)
	for _, phase := range model.Phases() {
		parts = append(parts, fmt.Sprintf("%s %d", phase.Label(), summary[phase].Count))
	}
	focused := summary[model.PhaseFocus].Time / time.Minute
	parts = append(parts, fmt.Sprintf("%d min focused", focused))
	return strings.Join(parts, " · ")
}
