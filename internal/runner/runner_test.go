package runner

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/swap"
)

func testProfile() swap.Profile {
	return swap.Profile{
		Slots: []swap.NameSlot{
			{Name: "main", Active: "Game.exe", Backup: "Game_org.exe", Candidates: []string{"Game fixed.exe"}},
		},
		Manifest: swap.DeletionManifest{
			Files:      []string{"patch.cfg"},
			PayloadDir: "extras",
		},
		BackupGenerations: 1,
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestRunner(t *testing.T) (*Runner, *journal.Store) {
	t.Helper()
	state := t.TempDir()
	store, err := journal.NewStore(filepath.Join(state, "runs"))
	require.NoError(t, err)
	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return &Runner{
		System:  swap.RealSystem{},
		Profile: testProfile(),
		Journal: store,
		LockDir: filepath.Join(state, "locks"),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}, store
}

func TestRunner_InstallThenRevertAreJournaled(t *testing.T) {
	r, store := newTestRunner(t)
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "Game fixed.exe"), "patched")
	writeFile(t, filepath.Join(source, "patch.cfg"), "cfg")
	writeFile(t, filepath.Join(target, "Game.exe"), "original")

	var logged []string
	sink := swap.SinkFuncs{LogFunc: func(line string) { logged = append(logged, line) }}

	res, err := r.Install(source, target, sink)
	require.NoError(t, err)
	require.NoError(t, res.JournalErr)
	require.NotNil(t, res.Install)
	assert.Equal(t, journal.StatusSucceeded, res.Status())
	assert.Equal(t, logged, res.Record.Log)
	assert.Equal(t, []journal.Entry{{Name: "Game.exe", Kind: journal.KindFile, Size: 8}}, res.Record.Before)
	assert.Len(t, res.Record.After, 3)

	rec, err := store.Read(res.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, journal.OperationInstall, rec.Operation)
	assert.Contains(t, string(rec.Report), `"patched"`)

	res, err = r.Revert(target, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Revert)
	assert.Equal(t, journal.StatusSucceeded, res.Status())

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, journal.OperationRevert, list[0].Operation)
	assert.Equal(t, journal.OperationInstall, list[1].Operation)
}

func TestRunner_FailedRunIsJournaled(t *testing.T) {
	r, store := newTestRunner(t)
	source := t.TempDir()
	target := t.TempDir()

	res, err := r.Install(source, target, nil)
	require.ErrorIs(t, err, swap.ErrNoCandidateFound)
	assert.Equal(t, journal.StatusFailed, res.Status())
	assert.NotEmpty(t, res.Record.Error)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, journal.StatusFailed, list[0].Status)
}

func TestRunner_PartialRevert(t *testing.T) {
	r, _ := newTestRunner(t)
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Game_org.exe"), "original")
	writeFile(t, filepath.Join(target, "Game.exe"), "patched")
	r.System = removeFailSystem{System: swap.RealSystem{}, path: filepath.Join(target, "Game.exe")}

	res, err := r.Revert(target, nil)
	require.NoError(t, err)
	assert.Equal(t, journal.StatusPartial, res.Status())
}

func TestRunner_WithoutJournal(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Journal = nil
	r.LockDir = ""
	target := t.TempDir()

	res, err := r.Revert(target, nil)
	require.NoError(t, err)
	assert.NoError(t, res.JournalErr)
	assert.Equal(t, journal.StatusSucceeded, res.Status())
}

func TestRunner_RequiresInputs(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Install("", t.TempDir(), nil)
	require.Error(t, err)
	_, err = r.Revert("", nil)
	require.Error(t, err)
	_, err = r.Status("")
	require.Error(t, err)

	r.System = nil
	_, err = r.Revert(t.TempDir(), nil)
	require.Error(t, err)
}

func TestRunner_Status(t *testing.T) {
	r, _ := newTestRunner(t)
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Game.exe"), "patched")
	writeFile(t, filepath.Join(target, "Game_org.exe"), "original")

	probe, err := r.Status(target)
	require.NoError(t, err)
	assert.Equal(t, swap.StatePatched, probe.State)
}

func TestRunner_TargetBusy(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("advisory locks are unix-only")
	}
	r, store := newTestRunner(t)
	target := t.TempDir()
	absTarget, err := filepath.Abs(target)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(r.LockDir, 0o755))

	held, err := acquireLock(LockPath(r.LockDir, absTarget))
	require.NoError(t, err)

	_, err = r.Revert(target, nil)
	require.ErrorIs(t, err, ErrTargetBusy)
	assert.Contains(t, err.Error(), absTarget)

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list, "a rejected run must not be journaled")

	require.NoError(t, held.release())
	_, err = r.Revert(target, nil)
	require.NoError(t, err)
}

func TestLockPath_StablePerTarget(t *testing.T) {
	a := LockPath("/locks", "/games/one")
	assert.Equal(t, a, LockPath("/locks", "/games/one"))
	assert.NotEqual(t, a, LockPath("/locks", "/games/two"))
	assert.Equal(t, ".lock", filepath.Ext(a))
}

func TestRunner_JournalWriteFailureDoesNotFailRun(t *testing.T) {
	r, _ := newTestRunner(t)
	blocker := filepath.Join(t.TempDir(), "file")
	writeFile(t, blocker, "x")
	store, err := journal.NewStore(filepath.Join(blocker, "runs"))
	require.NoError(t, err)
	r.Journal = store

	res, err := r.Revert(t.TempDir(), nil)
	require.NoError(t, err)
	require.Error(t, res.JournalErr)
	assert.Equal(t, journal.StatusSucceeded, res.Status())
}

type removeFailSystem struct {
	swap.System
	path string
}

func (s removeFailSystem) RemoveAll(path string) error {
	if filepath.Clean(path) == filepath.Clean(s.path) {
		return errors.New("locked by another process")
	}
	return s.System.RemoveAll(path)
}
