package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focustimer/internal/ui/preferences"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type fileSettings struct {
	FocusMinutes      int   `yaml:"focus_minutes" toml:"focus_minutes"`
	ShortBreakMinutes int   `yaml:"short_break_minutes" toml:"short_break_minutes"`
	LongBreakMinutes  int   `yaml:"long_break_minutes" toml:"long_break_minutes"`
	Volume            *int  `yaml:"volume,omitempty" toml:"volume,omitempty"`
	Muted             bool  `yaml:"muted" toml:"muted"`
	Notifications     *bool `yaml:"notifications,omitempty" toml:"notifications,omitempty"`
}

// LoadSettings reads user preferences from the default YAML file.
// If the file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from path. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData fileSettings
	if isTOML(path) {
		if err := toml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings toml: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings yaml: %w", err)
		}
	}

	applyFileSettings(&settings, fileData)
	return settings.Normalized(), nil
}

// SaveSettings writes user preferences to the default YAML file.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes preferences to path in the format its extension selects.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings, isTOML(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// MarshalSettings encodes preferences as YAML, or TOML when asTOML is set.
func MarshalSettings(settings preferences.Settings, asTOML bool) ([]byte, error) {
	settings = settings.Normalized()
	volume := settings.Volume
	notifications := settings.Notifications
	fileData := fileSettings{
		FocusMinutes:      int(settings.Durations.Focus / time.Minute),
		ShortBreakMinutes: int(settings.Durations.ShortBreak / time.Minute),
		LongBreakMinutes:  int(settings.Durations.LongBreak / time.Minute),
		Volume:            &volume,
		Muted:             settings.Muted,
		Notifications:     &notifications,
	}

	if asTOML {
		serialized, err := toml.Marshal(fileData)
		if err != nil {
			return nil, fmt.Errorf("marshal settings toml: %w", err)
		}
		return serialized, nil
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// SettingsPath returns the default settings location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func applyFileSettings(settings *preferences.Settings, fileData fileSettings) {
	if fileData.FocusMinutes > 0 {
		settings.Durations.Focus = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.Durations.ShortBreak = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.Durations.LongBreak = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.Volume != nil {
		settings.Volume = *fileData.Volume
	}
	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	settings.Muted = fileData.Muted
}
