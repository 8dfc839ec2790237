package swap

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// faultSystem wraps a System and fails operations on chosen paths, so error
// handling can be tested without chmod tricks.
type faultSystem struct {
	System
	lstatErrs     map[string]error
	readDirErrs   map[string]error
	removeErrs    map[string]error
	removeAllErrs map[string]error
	renameErrs    map[string]error
	copyErrs      map[string]error
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{
		System:        base,
		lstatErrs:     map[string]error{},
		readDirErrs:   map[string]error{},
		removeErrs:    map[string]error{},
		removeAllErrs: map[string]error{},
		renameErrs:    map[string]error{},
		copyErrs:      map[string]error{},
	}
}

func (f *faultSystem) Lstat(name string) (os.FileInfo, error) {
	if err, ok := f.lstatErrs[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.System.Lstat(name)
}

func (f *faultSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := f.readDirErrs[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.System.ReadDir(name)
}

func (f *faultSystem) Remove(name string) error {
	if err, ok := f.removeErrs[filepath.Clean(name)]; ok {
		return err
	}
	return f.System.Remove(name)
}

func (f *faultSystem) RemoveAll(path string) error {
	if err, ok := f.removeAllErrs[filepath.Clean(path)]; ok {
		return err
	}
	return f.System.RemoveAll(path)
}

// Rename fails when oldpath is registered.
func (f *faultSystem) Rename(oldpath string, newpath string) error {
	if err, ok := f.renameErrs[filepath.Clean(oldpath)]; ok {
		return err
	}
	return f.System.Rename(oldpath, newpath)
}

// CopyFile fails when src is registered.
func (f *faultSystem) CopyFile(src string, dst string) error {
	if err, ok := f.copyErrs[filepath.Clean(src)]; ok {
		return err
	}
	return f.System.CopyFile(src, dst)
}

func testProfile() Profile {
	return Profile{
		Slots: []NameSlot{
			{Name: "main", Active: "Game.exe", Backup: "Game_org.exe", Candidates: []string{"Game fixed.exe"}},
			{Name: "showcase", Active: "Game_Showcase.exe", Backup: "Game_Showcase_org.exe", Candidates: []string{"Game_Showcase fixed.exe"}},
		},
		Manifest: DeletionManifest{
			Files:      []string{"patch.cfg", "patch64.dll", "patch.cfg.bak", "readme.html"},
			PayloadDir: "extras",
		},
		BackupGenerations: 1,
	}
}

// recordingSink captures log lines and progress values.
type recordingSink struct {
	lines    []string
	progress []int
}

func (s *recordingSink) Log(line string)      { s.lines = append(s.lines, line) }
func (s *recordingSink) Progress(percent int) { s.progress = append(s.progress, percent) }

func (s *recordingSink) requireMonotonic(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.progress)
	require.Equal(t, 0, s.progress[0], "progress must start at 0")
	require.Equal(t, 100, s.progress[len(s.progress)-1], "progress must end at 100")
	for i := 1; i < len(s.progress); i++ {
		require.GreaterOrEqual(t, s.progress[i], s.progress[i-1], "progress decreased at %d: %v", i, s.progress)
	}
}

func (s *recordingSink) logContains(substr string) bool {
	for _, line := range s.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// writeTree creates files under root. Keys ending in "/" create directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// snapshotTree maps every path under root to its content, or "<dir>".
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if entry.IsDir() {
			out[rel+"/"] = "<dir>"
			return nil
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = "-> " + link
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func topLevelNames(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
