package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/slotswap/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if len(c.Slots) == 0 {
		return fmt.Errorf(messages.ConfigNoSlotsFmt, path)
	}
	if gens := c.BackupGenerations(); gens < 1 || gens > MaxBackupGenerations {
		return fmt.Errorf(messages.ConfigGenerationsRangeFmt, path, MaxBackupGenerations, gens)
	}

	seenNames := make(map[string]int, len(c.Slots))
	// slotFiles maps a folded active or backup name to its slot index.
	slotFiles := make(map[string]int, 2*len(c.Slots))
	candidates := make(map[string]int)
	for i, slot := range c.Slots {
		if slot.Name == "" {
			return fmt.Errorf(messages.ConfigSlotNameRequiredFmt, path, i)
		}
		if prev, ok := seenNames[slot.Name]; ok {
			return fmt.Errorf(messages.ConfigSlotNameDuplicateFmt, path, i, slot.Name, prev)
		}
		seenNames[slot.Name] = i

		for _, field := range []struct{ key, value string }{{"active", slot.Active}, {"backup", slot.Backup}} {
			if field.value == "" {
				return fmt.Errorf(messages.ConfigSlotFieldRequiredFmt, path, i, field.key)
			}
			if !isBaseName(field.value) {
				return fmt.Errorf(messages.ConfigSlotFieldNotBaseNameFmt, path, i, field.key, field.value)
			}
		}
		if strings.EqualFold(slot.Active, slot.Backup) {
			return fmt.Errorf(messages.ConfigSlotActiveIsBackupFmt, path, i, i, slot.Active)
		}
		for _, name := range []string{slot.Active, slot.Backup} {
			key := strings.ToLower(name)
			if _, ok := slotFiles[key]; ok {
				return fmt.Errorf(messages.ConfigSlotNameReusedFmt, path, name)
			}
			slotFiles[key] = i
		}

		if len(slot.Candidates) == 0 {
			return fmt.Errorf(messages.ConfigSlotCandidatesRequiredFmt, path, i)
		}
		for _, candidate := range slot.Candidates {
			if !isBaseName(candidate) {
				return fmt.Errorf(messages.ConfigSlotFieldNotBaseNameFmt, path, i, "candidates", candidate)
			}
			key := strings.ToLower(candidate)
			if prev, ok := candidates[key]; ok && prev != i {
				return fmt.Errorf(messages.ConfigCandidateReusedFmt, path, candidate)
			}
			candidates[key] = i
		}
	}
	// A candidate may equal its own slot's active name, never another slot's file.
	for i, slot := range c.Slots {
		for _, candidate := range slot.Candidates {
			if owner, ok := slotFiles[strings.ToLower(candidate)]; ok && owner != i {
				return fmt.Errorf(messages.ConfigCandidateIsSlotFileFmt, path, i, candidate, c.Slots[owner].Name)
			}
		}
	}

	for i, entry := range c.Revert.Delete {
		if entry == "" {
			return fmt.Errorf(messages.ConfigRevertEntryRequiredFmt, path, i)
		}
		if !isBaseName(entry) {
			return fmt.Errorf(messages.ConfigRevertEntryNotBaseNameFmt, path, i, entry)
		}
		if _, ok := slotFiles[strings.ToLower(entry)]; ok {
			return fmt.Errorf(messages.ConfigRevertEntryIsSlotFileFmt, path, i, entry)
		}
	}
	if dir := c.Revert.PayloadDir; dir != "" {
		if !isBaseName(dir) {
			return fmt.Errorf(messages.ConfigPayloadDirNotBaseNameFmt, path, dir)
		}
		if _, ok := slotFiles[strings.ToLower(dir)]; ok {
			return fmt.Errorf(messages.ConfigPayloadDirIsSlotFileFmt, path, dir)
		}
	}
	return nil
}

// isBaseName reports whether name is a single path element.
func isBaseName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
