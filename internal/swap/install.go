package swap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/slotswap/internal/messages"
)

// PatchedSlot records a slot whose replacement was found in the source folder.
type PatchedSlot struct {
	Slot      string `json:"slot"`
	Candidate string `json:"candidate"`
	// SourceBackup is set when a file already named Active in the source
	// folder was moved aside to Active+".bak".
	SourceBackup string `json:"source_backup,omitempty"`
}

// BackupOutcome records what happened to one slot's active file in the target.
type BackupOutcome struct {
	Slot   string `json:"slot"`
	Active string `json:"active"`
	Backup string `json:"backup"`
	// ReplacedStale is set when an existing backup was deleted to make room.
	ReplacedStale bool `json:"replaced_stale,omitempty"`
	// Rotated lists the generation moves performed before the backup, in order.
	Rotated []string `json:"rotated,omitempty"`
	Created bool     `json:"created"`
}

// InstallReport describes a finished install run.
type InstallReport struct {
	Source   string          `json:"source"`
	Target   string          `json:"target"`
	Patched  []PatchedSlot   `json:"patched"`
	Backups  []BackupOutcome `json:"backups,omitempty"`
	Copied   []string        `json:"copied,omitempty"`
	Failures []ItemFailure   `json:"failures,omitempty"`
}

// Partial reports whether any per-item step failed.
func (r InstallReport) Partial() bool {
	return len(r.Failures) > 0
}

type installer struct {
	sys     System
	profile Profile
	rep     *reporter
	source  string
	target  string
	report  InstallReport

	// unprotected holds active names whose backup failed; the copy must not
	// overwrite them or the original would be lost.
	unprotected map[string]bool
}

type slotMatch struct {
	slot      NameSlot
	candidate string
}

// Install patches target with the replacement set in source.
//
// It returns an error only for failures that happen before the target is
// touched: a missing or overlapping folder, no replacement found, or a
// failure to rename the replacement inside source. Backup and copy failures
// are collected in the report and the run continues.
func Install(source string, target string, opts Options) (InstallReport, error) {
	sys := opts.System
	if sys == nil {
		return InstallReport{}, errors.New(messages.SwapSystemRequired)
	}
	if len(opts.Profile.Slots) == 0 {
		return InstallReport{}, errors.New(messages.SwapProfileNoSlots)
	}
	inst := &installer{
		sys:     sys,
		profile: opts.Profile,
		rep:     newReporter(opts.Sink),
		source:  source,
		target:  target,
		report:  InstallReport{Source: source, Target: target},

		unprotected: make(map[string]bool),
	}
	inst.rep.logf(messages.SwapInstallStartFmt, source, target)

	if err := requireDir(sys, RoleSource, source); err != nil {
		return inst.report, err
	}
	if err := requireDir(sys, RoleTarget, target); err != nil {
		return inst.report, err
	}
	if err := requireDisjoint(sys, source, target); err != nil {
		return inst.report, err
	}

	matches, err := inst.detect()
	if err != nil {
		return inst.report, err
	}
	inst.rep.progress(10)

	for i, m := range matches {
		if err := inst.canonicalize(m); err != nil {
			return inst.report, fmt.Errorf(messages.SwapCanonicalizeFmt, m.slot.Active, err)
		}
		inst.rep.span(10, 25, i+1, len(matches))
	}

	for i, slot := range inst.profile.Slots {
		inst.backup(slot)
		inst.rep.span(25, 40, i+1, len(inst.profile.Slots))
	}

	if err := inst.copyAll(); err != nil {
		// The listing failed after backups were made; record it like any
		// other per-item failure so the caller sees a partial run.
		inst.report.Failures = append(inst.report.Failures, newItemFailure(source, OpCopy, err))
		inst.rep.logf(messages.SwapCopyFailedFmt, source, err)
	}

	inst.rep.progress(95)
	inst.rep.logf(messages.SwapInstallCompleteFmt, len(inst.report.Copied), len(inst.report.Failures))
	inst.rep.progress(100)
	return inst.report, nil
}

func (inst *installer) detect() ([]slotMatch, error) {
	entries, err := inst.sys.ReadDir(inst.source)
	if err != nil {
		return nil, fmt.Errorf(messages.SwapReadDirFailedFmt, inst.source, err)
	}
	// Only regular files qualify. A symlinked candidate would be copied as a
	// link back into the source folder.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	var matches []slotMatch
	var looked []string
	for _, slot := range inst.profile.Slots {
		looked = append(looked, slot.Candidates...)
		candidate := slot.matchCandidate(names)
		if candidate == "" {
			inst.rep.logf(messages.SwapNoCandidateForSlotFmt, slot.Name)
			continue
		}
		inst.rep.logf(messages.SwapFoundCandidateFmt, slot.Name, candidate)
		matches = append(matches, slotMatch{slot: slot, candidate: candidate})
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf(messages.SwapNoCandidateFoundFmt, ErrNoCandidateFound, inst.source, quoteJoin(looked))
	}
	return matches, nil
}

// canonicalize renames the matched candidate to the slot's active name inside
// the source folder so the bulk copy lands it under the expected name.
func (inst *installer) canonicalize(m slotMatch) error {
	patched := PatchedSlot{Slot: m.slot.Name, Candidate: m.candidate}
	if m.candidate == m.slot.Active {
		inst.report.Patched = append(inst.report.Patched, patched)
		return nil
	}

	candidatePath := filepath.Join(inst.source, m.candidate)
	activePath := filepath.Join(inst.source, m.slot.Active)
	occupied, err := inst.occupiedByOther(candidatePath, activePath)
	if err != nil {
		return err
	}
	if occupied {
		bak := m.slot.Active + SourceBackupSuffix
		bakPath := filepath.Join(inst.source, bak)
		inst.rep.logf(messages.SwapSourceBackupFmt, m.slot.Active, bak)
		if err := inst.sys.RemoveAll(bakPath); err != nil {
			return err
		}
		if err := inst.sys.Rename(activePath, bakPath); err != nil {
			return err
		}
		patched.SourceBackup = bak
	}

	inst.rep.logf(messages.SwapRenameCandidateFmt, m.candidate, m.slot.Active)
	if err := inst.sys.Rename(candidatePath, activePath); err != nil {
		return err
	}
	inst.report.Patched = append(inst.report.Patched, patched)
	return nil
}

// occupiedByOther reports whether activePath names a file other than the
// candidate. On case-insensitive filesystems both paths can resolve to the
// same file.
func (inst *installer) occupiedByOther(candidatePath string, activePath string) (bool, error) {
	activeInfo, err := inst.sys.Lstat(activePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	candidateInfo, err := inst.sys.Lstat(candidatePath)
	if err != nil {
		return false, err
	}
	return !os.SameFile(activeInfo, candidateInfo), nil
}

// backup moves the slot's active file in the target to its backup name,
// clearing the backup name first.
func (inst *installer) backup(slot NameSlot) {
	activePath := filepath.Join(inst.target, slot.Active)
	present, err := exists(inst.sys, activePath)
	if err != nil {
		inst.failBackup(slot, err)
		return
	}
	if !present {
		return
	}

	outcome := BackupOutcome{Slot: slot.Name, Active: slot.Active, Backup: slot.Backup}
	rotated, replaced, err := rotateBackups(inst.sys, inst.target, slot, inst.profile.generations(), inst.rep)
	outcome.Rotated = rotated
	outcome.ReplacedStale = replaced
	if err != nil {
		inst.unprotected[slot.Active] = true
		inst.rep.logf(messages.SwapBackupSkippedFmt, slot.Active, slot.Backup, err)
		inst.report.Failures = append(inst.report.Failures, newItemFailure(slot.Active, OpBackup, err))
		inst.report.Backups = append(inst.report.Backups, outcome)
		return
	}

	inst.rep.logf(messages.SwapBackupFmt, slot.Active, slot.Backup)
	if err := inst.sys.Rename(activePath, filepath.Join(inst.target, slot.Backup)); err != nil {
		inst.report.Backups = append(inst.report.Backups, outcome)
		inst.failBackup(slot, err)
		return
	}
	outcome.Created = true
	inst.report.Backups = append(inst.report.Backups, outcome)
}

func (inst *installer) failBackup(slot NameSlot, err error) {
	inst.unprotected[slot.Active] = true
	inst.rep.logf(messages.SwapBackupFailedFmt, slot.Active, err)
	inst.report.Failures = append(inst.report.Failures, newItemFailure(slot.Active, OpBackup, err))
}

func (inst *installer) copyAll() error {
	inst.rep.logf(messages.SwapCopyStart)
	entries, err := inst.sys.ReadDir(inst.source)
	if err != nil {
		return fmt.Errorf(messages.SwapReadDirFailedFmt, inst.source, err)
	}
	for i, entry := range entries {
		name := entry.Name()
		if inst.unprotected[name] {
			err := fmt.Errorf(messages.SwapCopyUnprotectedFmt, name)
			inst.rep.logf(messages.SwapCopyFailedFmt, name, err)
			inst.report.Failures = append(inst.report.Failures, newItemFailure(name, OpCopy, err))
			inst.rep.span(40, 95, i+1, len(entries))
			continue
		}
		if err := copyEntry(inst.sys, filepath.Join(inst.source, name), filepath.Join(inst.target, name)); err != nil {
			inst.rep.logf(messages.SwapCopyFailedFmt, name, err)
			inst.report.Failures = append(inst.report.Failures, newItemFailure(name, OpCopy, err))
		} else {
			inst.rep.logf(messages.SwapCopiedFmt, name)
			inst.report.Copied = append(inst.report.Copied, name)
		}
		inst.rep.span(40, 95, i+1, len(entries))
	}
	return nil
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
