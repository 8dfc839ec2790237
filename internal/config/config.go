// Package config loads and validates the slotswap configuration file.
package config

import "github.com/conn-castle/slotswap/internal/swap"

// DefaultBackupGenerations is used when backup.generations is omitted.
const DefaultBackupGenerations = 1

// MaxBackupGenerations bounds backup.generations.
const MaxBackupGenerations = 9

// Config is the parsed config.toml.
type Config struct {
	Backup BackupConfig `toml:"backup"`
	Revert RevertConfig `toml:"revert"`
	Slots  []SlotConfig `toml:"slots"`
}

// BackupConfig controls how slot backups are kept.
type BackupConfig struct {
	Generations *int `toml:"generations"`
}

// RevertConfig lists what revert removes from the target folder.
type RevertConfig struct {
	Delete     []string `toml:"delete"`
	PayloadDir string   `toml:"payload_dir"`
}

// SlotConfig is one [[slots]] table.
type SlotConfig struct {
	Name       string   `toml:"name"`
	Active     string   `toml:"active"`
	Backup     string   `toml:"backup"`
	Candidates []string `toml:"candidates"`
}

// BackupGenerations returns the configured generation count or the default.
func (c *Config) BackupGenerations() int {
	if c.Backup.Generations == nil {
		return DefaultBackupGenerations
	}
	return *c.Backup.Generations
}

// Profile converts a validated config into the profile used by install,
// revert, and probe. Slices are copied so the profile does not alias c.
func (c *Config) Profile() swap.Profile {
	slots := make([]swap.NameSlot, 0, len(c.Slots))
	for _, s := range c.Slots {
		slots = append(slots, swap.NameSlot{
			Name:       s.Name,
			Active:     s.Active,
			Backup:     s.Backup,
			Candidates: append([]string(nil), s.Candidates...),
		})
	}
	return swap.Profile{
		Slots: slots,
		Manifest: swap.DeletionManifest{
			Files:      append([]string(nil), c.Revert.Delete...),
			PayloadDir: c.Revert.PayloadDir,
		},
		BackupGenerations: c.BackupGenerations(),
	}
}
