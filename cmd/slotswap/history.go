package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/messages"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.HistoryUse,
		Short: messages.HistoryShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			records, err := a.store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, messages.HistoryEmpty)
				return nil
			}
			for _, rec := range records {
				_, _ = fmt.Fprintf(out, messages.HistoryRowFmt+"\n", rec.ID, rec.Operation, statusColor(rec.Status), rec.Target)
			}
			return nil
		},
	}
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   messages.HistoryShowUse,
		Short: messages.HistoryShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			rec, err := a.store.Read(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(data))
				return nil
			}
			printRecord(out, rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, flagJSON, false, messages.FlagJSON)
	return cmd
}

func printRecord(w io.Writer, rec journal.Record) {
	field := func(name string, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, messages.HistoryFieldFmt+"\n", name+":", value)
	}
	field("Run", rec.ID)
	field("Operation", string(rec.Operation))
	field("Status", statusColor(rec.Status))
	field("Source", rec.Source)
	field("Target", rec.Target)
	field("Started", rec.StartedAtUTC)
	field("Finished", rec.FinishedAtUTC)
	field("Error", rec.Error)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, messages.HistoryLogHeader)
	for _, line := range rec.Log {
		_, _ = fmt.Fprintln(w, "  "+line)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, messages.HistoryDiffHeader)
	diff, truncated := journal.Diff(rec.Before, rec.After, journal.DiffMaxLines)
	if diff == "" {
		_, _ = fmt.Fprintln(w, messages.HistoryNoChanges)
		return
	}
	_, _ = fmt.Fprint(w, diff)
	if truncated {
		_, _ = fmt.Fprintln(w, messages.HistoryDiffTruncated)
	}
}

func statusColor(status journal.Status) string {
	switch status {
	case journal.StatusSucceeded:
		return color.GreenString(string(status))
	case journal.StatusPartial:
		return color.YellowString(string(status))
	case journal.StatusFailed:
		return color.RedString(string(status))
	default:
		return string(status)
	}
}
