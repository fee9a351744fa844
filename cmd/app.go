package main

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"focustimer/internal/audio"
	"focustimer/internal/core/session"
	"focustimer/internal/core/timer"
	"focustimer/internal/notify"
	"focustimer/internal/platform"
	"focustimer/internal/ui/preferences"
	"focustimer/internal/ui/timerview"
	"focustimer/internal/ui/tray"
	"focustimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runApp(opts *options, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("already running, asking the open instance to show itself")
			return platform.ActivateRunning(appName)
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := loadSettings(opts)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
		settings = preferences.DefaultSettings()
	}

	player := newPlayer(opts, logger)
	if closer, ok := player.(interface{ Close() }); ok {
		defer closer.Close()
	}

	var writer *journalWriter
	journal, err := openJournal(opts)
	if err != nil {
		logger.Warn("session journal unavailable", "error", err)
	} else {
		defer journal.Close()
		logger.Debug("session journal opened", "path", journal.Path())
		writer = newJournalWriter(journal, logger, journalQueueSize)
		defer writer.Close()
	}

	config := settings.SessionConfig()
	config.Player = player
	config.Timer = timer.Options{Scheduler: timer.TickerScheduler{}}
	config.Logger = logger
	pomodoro := session.New(config)
	defer pomodoro.Close()

	if writer != nil {
		pomodoro.Attach(writer.Listener())
	}

	fyneApp := app.NewWithID("com.focustimer.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	var notificationsEnabled atomic.Bool
	notificationsEnabled.Store(settings.Notifications)
	pomodoro.Attach(notify.Listener(fyneApp, notificationsEnabled.Load))

	timerWindow := timerview.New(fyneApp, pomodoro)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		pomodoro.ApplyDurations(updated.Durations)
		pomodoro.SetVolume(updated.Volume)
		pomodoro.SetMuted(updated.Muted)
		notificationsEnabled.Store(updated.Notifications)
		timerWindow.RefreshAudio()
		if err := saveSettings(opts, updated); err != nil {
			logger.Error("save settings", "error", err)
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Running: resources.MustLogo(resources.LogoActive),
			Stopped: resources.MustLogo(resources.LogoPaused),
		}, tray.Callbacks{
			OnToggle:    pomodoro.Toggle,
			OnReset:     pomodoro.Reset,
			OnShowTimer: timerWindow.Show,
			OnPreferences: func() {
				prefsWindow.UpdateSettings(currentSettings(settings, pomodoro))
				prefsWindow.Show()
			},
			OnQuit: fyneApp.Quit,
		})
		trayManager.Update(pomodoro.State())
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	go guard.Serve(func() {
		fyne.Do(timerWindow.Show)
	})

	events := pomodoro.Subscribe(16)
	go func() {
		for event := range events {
			timerWindow.Update(event)
			if trayManager != nil {
				state := event.State
				fyne.Do(func() {
					trayManager.Update(state)
				})
			}
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

func newPlayer(opts *options, logger *slog.Logger) audio.Player {
	if opts.noAudio {
		return audio.NopPlayer{}
	}
	player, err := audio.NewBeepPlayer(map[audio.Cue][]byte{
		audio.CueTicking: resources.MustSound(resources.TickingSound).Content(),
		audio.CueAlarm:   resources.MustSound(resources.AlarmSound).Content(),
	})
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return audio.NopPlayer{}
	}
	return player
}

func currentSettings(saved preferences.Settings, pomodoro *session.Session) preferences.Settings {
	saved.Durations = pomodoro.Durations()
	saved.Volume = pomodoro.Volume()
	saved.Muted = pomodoro.Muted()
	return saved
}
