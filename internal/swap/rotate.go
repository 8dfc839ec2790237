package swap

import (
	"path/filepath"

	"github.com/conn-castle/slotswap/internal/messages"
)

// rotateBackups clears the slot's backup name in dir so the active file can
// be moved onto it. With one generation the stale backup is deleted; with
// more, each generation shifts up by one and the oldest is dropped. Every
// move targets a name that was vacated first, and the first failure stops
// the rotation so nothing is moved over an existing file.
func rotateBackups(sys System, dir string, slot NameSlot, generations int, rep *reporter) (rotated []string, replaced bool, err error) {
	backupPath := filepath.Join(dir, slot.Backup)
	present, err := exists(sys, backupPath)
	if err != nil || !present {
		return nil, false, err
	}

	if generations <= 1 {
		rep.logf(messages.SwapRemoveStaleBackupFmt, slot.Backup)
		if err := sys.RemoveAll(backupPath); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	oldest := filepath.Join(dir, slot.BackupGenerationName(generations-1))
	if err := sys.RemoveAll(oldest); err != nil {
		return nil, false, err
	}
	for n := generations - 2; n >= 0; n-- {
		from := slot.BackupGenerationName(n)
		fromPath := filepath.Join(dir, from)
		present, err := exists(sys, fromPath)
		if err != nil {
			return rotated, false, err
		}
		if !present {
			continue
		}
		to := slot.BackupGenerationName(n + 1)
		rep.logf(messages.SwapRotateBackupFmt, from, to)
		if err := sys.Rename(fromPath, filepath.Join(dir, to)); err != nil {
			return rotated, false, err
		}
		rotated = append(rotated, from+" -> "+to)
	}
	return rotated, false, nil
}
