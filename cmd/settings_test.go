package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focustimer/internal/audio"
	"focustimer/internal/core/model"
	"focustimer/internal/core/session"
	"focustimer/internal/ui/preferences"
)

func writeTOMLSettings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := strings.Join([]string{
		"focus_minutes = 45",
		"short_break_minutes = 3",
		"long_break_minutes = 20",
		"volume = 35",
		"muted = true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func runSettings(t *testing.T, opts *options, args ...string) string {
	t.Helper()
	cmd := settingsCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("settings command: %v", err)
	}
	return out.String()
}

func TestSettingsCommandPrintsYAML(t *testing.T) {
	opts := &options{configPath: writeTOMLSettings(t)}

	text := runSettings(t, opts)
	for _, want := range []string{"focus_minutes: 45", "short_break_minutes: 3", "long_break_minutes: 20", "volume: 35", "muted: true", "notifications: true"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestSettingsCommandPrintsTOML(t *testing.T) {
	opts := &options{configPath: writeTOMLSettings(t)}

	text := runSettings(t, opts, "--toml")
	for _, want := range []string{"focus_minutes = 45", "long_break_minutes = 20", "volume = 35"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "focus_minutes:") {
		t.Fatalf("expected TOML, got YAML:\n%s", text)
	}
}

func TestSettingsCommandMissingFileUsesDefaults(t *testing.T) {
	opts := &options{configPath: filepath.Join(t.TempDir(), "absent.yaml")}

	text := runSettings(t, opts)
	if !strings.Contains(text, "focus_minutes: 25") || !strings.Contains(text, "volume: 70") {
		t.Fatalf("expected defaults, got:\n%s", text)
	}
}

func TestCurrentSettingsReflectsSession(t *testing.T) {
	pomodoro := session.New(session.Config{
		Durations: model.DefaultDurations(),
		Volume:    audio.DefaultVolume,
		Player:    audio.NopPlayer{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(pomodoro.Close)

	pomodoro.UpdateDuration(model.PhaseFocus, 40)
	pomodoro.SetVolume(20)
	pomodoro.SetMuted(true)

	saved := preferences.DefaultSettings()
	saved.Notifications = false
	got := currentSettings(saved, pomodoro)

	if got.Durations.Focus != 40*time.Minute || got.Durations.ShortBreak != 5*time.Minute {
		t.Fatalf("unexpected durations %+v", got.Durations)
	}
	if got.Volume != 20 || !got.Muted {
		t.Fatalf("unexpected audio settings %+v", got)
	}
	if got.Notifications {
		t.Fatalf("notifications come from the saved settings")
	}
}
