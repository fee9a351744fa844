package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
	"focustimer/internal/storage"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func historyCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently completed sessions from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := openJournal(opts)
			if err != nil {
				return err
			}
			defer journal.Close()
			return printHistory(cmd.Context(), color.Output, journal, limit, time.Now())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum sessions to show")

	return cmd
}

func printHistory(ctx context.Context, out io.Writer, journal *storage.Journal, limit int, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := journal.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No sessions recorded yet.")
	} else {
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Completed"), bold.Sprint("Phase"), bold.Sprint("Length"))
		for _, entry := range entries {
			tbl.AddRow(
				entry.CompletedAt.Local().Format("2006-01-02 15:04"),
				entry.Phase.Label(),
				timer.FormatClock(entry.Actual),
			)
		}
		tbl.RightAlign(2)
		_, _ = fmt.Fprintln(out, tbl)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	focused, err := journal.CountSince(ctx, model.PhaseFocus, startOfDay)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nFocus sessions today: %d\n", focused)
	_, _ = fmt.Fprintf(out, "Journal: %s\n", journal.Path())
	return nil
}
