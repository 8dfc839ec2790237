package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

// partialExitCode is returned when a run finished with per-item failures.
const partialExitCode = 2

// printInstallSummary prints the outcome of an install and returns the error
// the command should exit with.
func printInstallSummary(w io.Writer, res runner.Result, runErr error) error {
	if runErr != nil {
		if res.Record.ID != "" {
			_, _ = fmt.Fprintln(w, color.RedString(messages.InstallFailed))
		}
		return runErr
	}
	report := res.Install
	if report == nil {
		return nil
	}
	if report.Partial() {
		_, _ = fmt.Fprintln(w, color.YellowString(messages.InstallPartialFmt, len(report.Failures), report.Target))
		for _, failure := range report.Failures {
			_, _ = fmt.Fprintf(w, messages.FailureLineFmt+"\n", failure.Op, failure.Item, failure.Message)
		}
		printPatchedSlots(w, *report)
		return &SilentExitError{Code: partialExitCode}
	}
	_, _ = fmt.Fprintln(w, color.GreenString(messages.InstallSucceededFmt, len(report.Copied), report.Target))
	printPatchedSlots(w, *report)
	return nil
}

func printPatchedSlots(w io.Writer, report swap.InstallReport) {
	backups := make(map[string]swap.BackupOutcome, len(report.Backups))
	for _, backup := range report.Backups {
		backups[backup.Slot] = backup
	}
	for _, patched := range report.Patched {
		backup, ok := backups[patched.Slot]
		if ok && backup.Created {
			_, _ = fmt.Fprintf(w, messages.InstallPatchedFmt+"\n", patched.Slot, patched.Candidate, backup.Active, backup.Backup)
			continue
		}
		_, _ = fmt.Fprintf(w, messages.InstallPatchedNoBackupFmt+"\n", patched.Slot, patched.Candidate, activeName(report, patched.Slot))
	}
}

func activeName(report swap.InstallReport, slot string) string {
	for _, backup := range report.Backups {
		if backup.Slot == slot {
			return backup.Active
		}
	}
	return slot
}

// printRevertSummary prints the outcome of a revert and returns the error the
// command should exit with.
func printRevertSummary(w io.Writer, res runner.Result, runErr error) error {
	report := res.Revert
	if runErr != nil {
		if res.Record.ID != "" {
			_, _ = fmt.Fprintln(w, color.RedString(messages.RevertFailed))
		}
		if report != nil {
			printRevertFailures(w, revertFailures(*report))
		}
		return runErr
	}
	if report == nil {
		return nil
	}

	failures := revertFailures(*report)
	if len(failures) > 0 {
		_, _ = fmt.Fprintln(w, color.YellowString(messages.RevertPartialFmt, len(failures), report.Target))
		printRevertFailures(w, failures)
		return &SilentExitError{Code: partialExitCode}
	}

	restored, deleted := revertCounts(*report)
	if restored == 0 && deleted == 0 {
		_, _ = fmt.Fprintln(w, messages.RevertNothingToDo)
		return nil
	}
	_, _ = fmt.Fprintln(w, color.GreenString(messages.RevertSucceededFmt, restored, deleted, report.Target))
	return nil
}

func revertCounts(report swap.RevertReport) (restored int, deleted int) {
	for _, item := range report.Manifest {
		if item.Status == swap.ItemDeleted {
			deleted++
		}
	}
	if report.PayloadDir != nil && report.PayloadDir.Status == swap.ItemDeleted {
		deleted++
	}
	for _, restore := range report.Restores {
		if restore.Status == swap.RestoreRestored {
			restored++
		}
	}
	return restored, deleted
}

// revertFailures flattens every failed step of a revert into ItemFailure rows.
func revertFailures(report swap.RevertReport) []swap.ItemFailure {
	var failures []swap.ItemFailure
	items := append([]swap.ItemOutcome{}, report.Manifest...)
	if report.PayloadDir != nil {
		items = append(items, *report.PayloadDir)
	}
	for _, item := range items {
		if item.Status == swap.ItemFailed {
			failures = append(failures, swap.ItemFailure{Item: item.Name, Op: "delete", Message: item.Error})
		}
	}
	for _, restore := range report.Restores {
		if restore.RemoveActiveError != "" {
			failures = append(failures, swap.ItemFailure{Item: restore.Slot, Op: "clear", Message: restore.RemoveActiveError})
		}
		if restore.Status == swap.RestoreFailed {
			failures = append(failures, swap.ItemFailure{Item: restore.Slot, Op: "restore", Message: restore.Error})
		}
	}
	return failures
}

func printRevertFailures(w io.Writer, failures []swap.ItemFailure) {
	for _, failure := range failures {
		_, _ = fmt.Fprintf(w, messages.FailureLineFmt+"\n", failure.Op, failure.Item, failure.Message)
	}
}

// stateColor renders a probe state the way status output highlights it.
func stateColor(state swap.State) string {
	switch state {
	case swap.StatePatched:
		return color.GreenString(string(state))
	case swap.StateInconsistent:
		return color.YellowString(string(state))
	default:
		return string(state)
	}
}

func yesNo(present bool) string {
	if present {
		return "yes"
	}
	return "no"
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
