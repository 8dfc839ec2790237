package swap

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/conn-castle/slotswap/internal/messages"
)

// ItemStatus is the outcome of deleting one manifest entry.
type ItemStatus string

// Manifest and payload folder outcomes.
const (
	ItemDeleted ItemStatus = "deleted"
	ItemAbsent  ItemStatus = "absent"
	ItemFailed  ItemStatus = "failed"
)

// ItemOutcome records the deletion outcome of one name.
type ItemOutcome struct {
	Name   string     `json:"name"`
	Status ItemStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// RestoreStatus is the outcome of restoring one slot.
type RestoreStatus string

// Slot restore outcomes.
const (
	RestoreRestored RestoreStatus = "restored"
	RestoreNothing  RestoreStatus = "nothing_to_restore"
	RestoreFailed   RestoreStatus = "restore_failed"
)

// RestoreOutcome records the restore of one slot.
type RestoreOutcome struct {
	Slot   string        `json:"slot"`
	Status RestoreStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
	// RemoveActiveError is set when the current active file could not be
	// deleted before the rename was attempted.
	RemoveActiveError string `json:"remove_active_error,omitempty"`
}

// RevertReport describes a finished revert run.
type RevertReport struct {
	Target     string           `json:"target"`
	Manifest   []ItemOutcome    `json:"manifest"`
	PayloadDir *ItemOutcome     `json:"payload_dir,omitempty"`
	Restores   []RestoreOutcome `json:"restores"`
}

// Partial reports whether any deletion or restore failed.
func (r RevertReport) Partial() bool {
	for _, item := range r.Manifest {
		if item.Status == ItemFailed {
			return true
		}
	}
	if r.PayloadDir != nil && r.PayloadDir.Status == ItemFailed {
		return true
	}
	for _, restore := range r.Restores {
		if restore.Status == RestoreFailed || restore.RemoveActiveError != "" {
			return true
		}
	}
	return false
}

// Revert deletes the manifest entries and payload folder from target and
// restores every slot that has a backup.
//
// Deletion and restore failures are recorded and the run continues. When
// every slot that had a backup failed to restore, a *RestoreFailedError is
// returned together with the complete report.
func Revert(target string, opts Options) (RevertReport, error) {
	sys := opts.System
	if sys == nil {
		return RevertReport{}, errors.New(messages.SwapSystemRequired)
	}
	rep := newReporter(opts.Sink)
	report := RevertReport{Target: target}
	rep.logf(messages.SwapRevertStartFmt, target)

	if err := requireDir(sys, RoleTarget, target); err != nil {
		return report, err
	}

	files := opts.Profile.Manifest.Files
	for i, name := range files {
		report.Manifest = append(report.Manifest, deleteManifestEntry(sys, target, name, rep))
		rep.span(0, 50, i+1, len(files))
	}
	rep.progress(50)

	if dir := opts.Profile.Manifest.PayloadDir; dir != "" {
		outcome := deletePayloadDir(sys, target, dir, rep)
		report.PayloadDir = &outcome
	} else {
		rep.logf(messages.SwapPayloadNone)
	}
	rep.progress(65)

	var attempted, failed []string
	restored := 0
	for i, slot := range opts.Profile.Slots {
		outcome := restoreSlot(sys, target, slot, rep)
		switch outcome.Status {
		case RestoreRestored:
			attempted = append(attempted, slot.Name)
			restored++
		case RestoreFailed:
			attempted = append(attempted, slot.Name)
			failed = append(failed, slot.Name)
		}
		report.Restores = append(report.Restores, outcome)
		rep.span(65, 100, i+1, len(opts.Profile.Slots))
	}

	rep.logf(messages.SwapRevertCompleteFmt, restored, len(failed))
	rep.progress(100)
	if len(attempted) > 0 && len(failed) == len(attempted) {
		return report, &RestoreFailedError{Slots: failed}
	}
	return report, nil
}

func deleteManifestEntry(sys System, target string, name string, rep *reporter) ItemOutcome {
	path := filepath.Join(target, name)
	info, err := sys.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rep.logf(messages.SwapDeleteAbsentFmt, name)
			return ItemOutcome{Name: name, Status: ItemAbsent}
		}
		rep.logf(messages.SwapDeleteFailedFmt, name, err)
		return ItemOutcome{Name: name, Status: ItemFailed, Error: err.Error()}
	}
	if info.IsDir() {
		err = sys.RemoveAll(path)
	} else {
		err = sys.Remove(path)
	}
	if err != nil {
		rep.logf(messages.SwapDeleteFailedFmt, name, err)
		return ItemOutcome{Name: name, Status: ItemFailed, Error: err.Error()}
	}
	rep.logf(messages.SwapDeletedFmt, name)
	return ItemOutcome{Name: name, Status: ItemDeleted}
}

func deletePayloadDir(sys System, target string, name string, rep *reporter) ItemOutcome {
	path := filepath.Join(target, name)
	present, err := exists(sys, path)
	if err != nil {
		rep.logf(messages.SwapDeleteFailedFmt, name, err)
		return ItemOutcome{Name: name, Status: ItemFailed, Error: err.Error()}
	}
	if !present {
		rep.logf(messages.SwapPayloadAbsentFmt, name)
		return ItemOutcome{Name: name, Status: ItemAbsent}
	}
	if err := sys.RemoveAll(path); err != nil {
		rep.logf(messages.SwapDeleteFailedFmt, name, err)
		return ItemOutcome{Name: name, Status: ItemFailed, Error: err.Error()}
	}
	rep.logf(messages.SwapPayloadDeletedFmt, name)
	return ItemOutcome{Name: name, Status: ItemDeleted}
}

// restoreSlot deletes the current active file, then renames the backup into
// place. The rename is attempted even when the delete fails.
func restoreSlot(sys System, target string, slot NameSlot, rep *reporter) RestoreOutcome {
	outcome := RestoreOutcome{Slot: slot.Name}
	backupPath := filepath.Join(target, slot.Backup)
	activePath := filepath.Join(target, slot.Active)

	present, err := exists(sys, backupPath)
	if err != nil {
		rep.logf(messages.SwapRestoreRenameFailedFmt, slot.Backup, slot.Active, err)
		outcome.Status = RestoreFailed
		outcome.Error = err.Error()
		return outcome
	}
	if !present {
		rep.logf(messages.SwapNothingToRestoreFmt, slot.Name, slot.Backup)
		outcome.Status = RestoreNothing
		return outcome
	}

	if activePresent, err := exists(sys, activePath); err != nil || activePresent {
		if err == nil {
			err = sys.RemoveAll(activePath)
		}
		if err != nil {
			rep.logf(messages.SwapRemoveActiveFailedFmt, slot.Active, err)
			outcome.RemoveActiveError = err.Error()
		} else {
			rep.logf(messages.SwapRemoveActiveFmt, slot.Active, slot.Backup)
		}
	}

	if err := sys.Rename(backupPath, activePath); err != nil {
		rep.logf(messages.SwapRestoreRenameFailedFmt, slot.Backup, slot.Active, err)
		outcome.Status = RestoreFailed
		outcome.Error = err.Error()
		return outcome
	}
	rep.logf(messages.SwapRestoredFmt, slot.Backup, slot.Active)
	outcome.Status = RestoreRestored
	return outcome
}
