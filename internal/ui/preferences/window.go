package preferences

import (
	"fmt"

	"focustimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onCancel      func()
	labels        map[model.Phase]*widget.Label
	sliders       map[model.Phase]*widget.Slider
	volume        *widget.Slider
	volumeLabel   *widget.Label
	muted         *widget.Check
	notifications *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Focus Timer Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		labels:   make(map[model.Phase]*widget.Label),
		sliders:  make(map[model.Phase]*widget.Slider),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, phase := range model.Phases() {
		bounds, _ := model.BoundsFor(phase)
		label := widget.NewLabel("")
		slider := widget.NewSlider(float64(bounds.Min), float64(bounds.Max))
		slider.Step = float64(bounds.Step)
		slider.OnChanged = func(value float64) {
			label.SetText(fmt.Sprintf("%d min", int(value)))
		}
		prefs.labels[phase] = label
		prefs.sliders[phase] = slider
		form.Add(container.NewBorder(nil, nil, widget.NewLabel(phase.Label()), label, slider))
	}

	prefs.volumeLabel = widget.NewLabel("")
	prefs.volume = widget.NewSlider(0, 100)
	prefs.volume.Step = 1
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeLabel.SetText(fmt.Sprintf("%d%%", int(value)))
	}
	prefs.muted = widget.NewCheck("Mute sounds", nil)
	prefs.notifications = widget.NewCheck("Show notifications", nil)

	form.Add(widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	form.Add(container.NewBorder(nil, nil, widget.NewLabel("Volume"), prefs.volumeLabel, prefs.volume))
	form.Add(prefs.muted)
	form.Add(prefs.notifications)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Normalized()
	prefs.settings = settings
	for phase, slider := range prefs.sliders {
		minutes := settings.Durations.Minutes(phase)
		slider.SetValue(float64(minutes))
		prefs.labels[phase].SetText(fmt.Sprintf("%d min", minutes))
	}
	prefs.volume.SetValue(float64(settings.Volume))
	prefs.volumeLabel.SetText(fmt.Sprintf("%d%%", settings.Volume))
	prefs.muted.SetChecked(settings.Muted)
	prefs.notifications.SetChecked(settings.Notifications)
}

// Settings returns the values currently shown, as they would be saved.
func (prefs *Window) Settings() Settings {
	settings := prefs.settings
	for phase, slider := range prefs.sliders {
		settings.Durations.Update(phase, int(slider.Value))
	}
	settings.Volume = int(prefs.volume.Value)
	settings.Muted = prefs.muted.Checked
	settings.Notifications = prefs.notifications.Checked
	return settings.Normalized()
}

func (prefs *Window) handleSave() {
	settings := prefs.Settings()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
