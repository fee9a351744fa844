package main

import (
	"fmt"
	"log/slog"
	"os"

	"focustimer/internal/storage"
	"focustimer/internal/ui/preferences"

	"github.com/spf13/cobra"
)

const appName = "FocusTimer"

// Version is set at build time with -ldflags.
var Version = "dev"

type options struct {
	configPath  string
	journalPath string
	debug       bool
	noAudio     bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "focustimer",
		Short:   "Pomodoro focus timer with breaks, sounds and a session journal",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(opts, newLogger(opts.debug))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (.yaml or .toml)")
	flags.StringVar(&opts.journalPath, "journal", "", "session journal database")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&opts.noAudio, "no-audio", false, "disable sound output")

	rootCmd.AddCommand(historyCmd(opts))
	rootCmd.AddCommand(settingsCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadSettings(opts *options) (preferences.Settings, error) {
	if opts.configPath != "" {
		return storage.LoadSettingsFile(opts.configPath)
	}
	return storage.LoadSettings(appName)
}

func saveSettings(opts *options, settings preferences.Settings) error {
	if opts.configPath != "" {
		return storage.SaveSettingsFile(opts.configPath, settings)
	}
	return storage.SaveSettings(appName, settings)
}

func openJournal(opts *options) (*storage.Journal, error) {
	path := opts.journalPath
	if path == "" {
		defaultPath, err := storage.JournalPath(appName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return storage.OpenJournal(path)
}
