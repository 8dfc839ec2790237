// Package swap implements the install and revert orchestration for a target
// folder: swapping slot executables with their backups, copying in a
// replacement set, and restoring the originals.
package swap

import (
	"strconv"
	"strings"
)

// SourceBackupSuffix is appended to an active name already present in the
// source folder before the candidate is renamed over it.
const SourceBackupSuffix = ".bak"

// NameSlot describes one swappable executable.
type NameSlot struct {
	// Name identifies the slot in logs and reports.
	Name string `json:"name"`
	// Active is the file name the game expects at runtime.
	Active string `json:"active"`
	// Backup is the file name holding the pre-patch original.
	Backup string `json:"backup"`
	// Candidates are source file names recognized as this slot's replacement,
	// matched case-insensitively in order.
	Candidates []string `json:"candidates"`
}

// DeletionManifest lists names removed from the target on revert.
type DeletionManifest struct {
	Files      []string `json:"files"`
	PayloadDir string   `json:"payload_dir,omitempty"`
}

// Profile is the immutable configuration shared by install, revert, and probe.
type Profile struct {
	Slots    []NameSlot       `json:"slots"`
	Manifest DeletionManifest `json:"manifest"`
	// BackupGenerations is how many backups of each slot are kept. Values
	// below 1 are treated as 1: a stale backup is deleted before a new one is made.
	BackupGenerations int `json:"backup_generations"`
}

func (p Profile) generations() int {
	if p.BackupGenerations < 1 {
		return 1
	}
	return p.BackupGenerations
}

// BackupGenerationName returns the file name of backup generation n, where
// generation 0 is the slot's Backup name itself.
func (s NameSlot) BackupGenerationName(n int) string {
	if n <= 0 {
		return s.Backup
	}
	return s.Backup + "." + strconv.Itoa(n)
}

// matchCandidate returns the first entry name matching the slot's candidates
// in priority order, or "" when none match.
func (s NameSlot) matchCandidate(names []string) string {
	for _, candidate := range s.Candidates {
		for _, name := range names {
			if strings.EqualFold(name, candidate) {
				return name
			}
		}
	}
	return ""
}
