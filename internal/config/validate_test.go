package config

import (
	"strings"
	"testing"

	"github.com/conn-castle/slotswap/internal/testutil"
)

func validConfig() Config {
	return Config{
		Revert: RevertConfig{
			Delete:     []string{"patch.cfg", "patch64.dll"},
			PayloadDir: "extras",
		},
		Slots: []SlotConfig{
			{Name: "main", Active: "Game.exe", Backup: "Game_org.exe", Candidates: []string{"Game fixed.exe"}},
			{Name: "showcase", Active: "Game_Showcase.exe", Backup: "Game_Showcase_org.exe", Candidates: []string{"Game_Showcase fixed.exe"}},
		},
	}
}

func withSlot(cfg Config, i int, mutate func(*SlotConfig)) Config {
	slots := append([]SlotConfig(nil), cfg.Slots...)
	mutate(&slots[i])
	cfg.Slots = slots
	return cfg
}

func withGenerations(cfg Config, n int) Config {
	cfg.Backup.Generations = testutil.IntPtr(n)
	return cfg
}

func withRevert(cfg Config, deleteNames []string, payloadDir string) Config {
	cfg.Revert = RevertConfig{Delete: deleteNames, PayloadDir: payloadDir}
	return cfg
}

func TestValidateConfigValid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate("config.toml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg = withGenerations(cfg, MaxBackupGenerations)
	if err := cfg.Validate("config.toml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg = withRevert(cfg, nil, "")
	if err := cfg.Validate("config.toml"); err != nil {
		t.Fatalf("unexpected error for empty revert section: %v", err)
	}
	cfg = withSlot(cfg, 0, func(s *SlotConfig) { s.Candidates = []string{"Game fixed.exe", "game.exe"} })
	if err := cfg.Validate("config.toml"); err != nil {
		t.Fatalf("unexpected error for candidate equal to its own active name: %v", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	valid := validConfig()

	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no slots",
			cfg:     Config{},
			wantErr: "at least one [[slots]]",
		},
		{
			name:    "zero generations",
			cfg:     withGenerations(valid, 0),
			wantErr: "backup.generations",
		},
		{
			name:    "too many generations",
			cfg:     withGenerations(valid, 10),
			wantErr: "backup.generations",
		},
		{
			name:    "missing slot name",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Name = "" }),
			wantErr: "slots[0].name is required",
		},
		{
			name:    "duplicate slot name",
			cfg:     withSlot(valid, 1, func(s *SlotConfig) { s.Name = "main" }),
			wantErr: "duplicates slots[0].name",
		},
		{
			name:    "missing active",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Active = "" }),
			wantErr: "slots[0].active is required",
		},
		{
			name:    "missing backup",
			cfg:     withSlot(valid, 1, func(s *SlotConfig) { s.Backup = "" }),
			wantErr: "slots[1].backup is required",
		},
		{
			name:    "active with folder",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Active = "bin/Game.exe" }),
			wantErr: "plain file name",
		},
		{
			name:    "backup is dot dot",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Backup = ".." }),
			wantErr: "plain file name",
		},
		{
			name:    "candidate is a later slot's active",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Candidates = []string{"game_showcase.exe"} }),
			wantErr: `slots[0].candidates "game_showcase.exe" is the active or backup name of slot "showcase"`,
		},
		{
			name:    "candidate is an earlier slot's backup",
			cfg:     withSlot(valid, 1, func(s *SlotConfig) { s.Candidates = []string{"Game_org.exe"} }),
			wantErr: `slots[1].candidates "Game_org.exe" is the active or backup name of slot "main"`,
		},
		{
			name:    "active equals backup",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Backup = "game.EXE" }),
			wantErr: "must differ",
		},
		{
			name:    "file shared between slots",
			cfg:     withSlot(valid, 1, func(s *SlotConfig) { s.Backup = "GAME_ORG.exe" }),
			wantErr: "used by more than one slot",
		},
		{
			name:    "no candidates",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Candidates = nil }),
			wantErr: "candidates must list",
		},
		{
			name:    "candidate with folder",
			cfg:     withSlot(valid, 0, func(s *SlotConfig) { s.Candidates = []string{`crack\Game.exe`} }),
			wantErr: "plain file name",
		},
		{
			name:    "candidate shared between slots",
			cfg:     withSlot(valid, 1, func(s *SlotConfig) { s.Candidates = []string{"game FIXED.exe"} }),
			wantErr: "listed by more than one slot",
		},
		{
			name:    "empty delete entry",
			cfg:     withRevert(valid, []string{""}, ""),
			wantErr: "revert.delete[0] is empty",
		},
		{
			name:    "delete entry with folder",
			cfg:     withRevert(valid, []string{"../outside"}, ""),
			wantErr: "revert.delete[0]",
		},
		{
			name:    "delete entry names active file",
			cfg:     withRevert(valid, []string{"patch.cfg", "game.exe"}, ""),
			wantErr: "revert.delete[1] \"game.exe\" names a slot file",
		},
		{
			name:    "delete entry names backup file",
			cfg:     withRevert(valid, []string{"Game_Showcase_org.exe"}, ""),
			wantErr: "names a slot file",
		},
		{
			name:    "payload dir with folder",
			cfg:     withRevert(valid, nil, "a/b"),
			wantErr: "revert.payload_dir",
		},
		{
			name:    "payload dir names slot file",
			cfg:     withRevert(valid, nil, "Game_org.exe"),
			wantErr: "revert.payload_dir",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate("config.toml")
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if !strings.HasPrefix(err.Error(), "config.toml:") {
				t.Fatalf("expected source prefix, got %v", err)
			}
		})
	}
}

func TestIsBaseName(t *testing.T) {
	cases := map[string]bool{
		"Game.exe":       true,
		"Game fixed.exe": true,
		".hidden":        true,
		"":               false,
		".":              false,
		"..":             false,
		"a/b":            false,
		`a\b`:            false,
	}
	for name, want := range cases {
		if got := isBaseName(name); got != want {
			t.Fatalf("isBaseName(%q) = %v, want %v", name, got, want)
		}
	}
}
