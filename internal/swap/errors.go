package swap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/slotswap/internal/messages"
)

// ErrNoCandidateFound reports that the source folder holds no replacement for any slot.
var ErrNoCandidateFound = errors.New("no replacement executable found")

// ErrFoldersOverlap reports a source and target that are the same folder or
// where one lies inside the other.
var ErrFoldersOverlap = errors.New("source and target folders overlap")

// Directory roles used by DirectoryNotFoundError.
const (
	RoleSource = "source"
	RoleTarget = "target"
)

// DirectoryNotFoundError reports a missing source or target folder.
type DirectoryNotFoundError struct {
	Role string
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf(messages.SwapDirectoryNotFoundFmt, e.Role, e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }

// RestoreFailedError reports that every slot with a backup failed to restore.
type RestoreFailedError struct {
	Slots []string
}

func (e *RestoreFailedError) Error() string {
	return fmt.Sprintf(messages.SwapRestoreFailedFmt, strings.Join(e.Slots, ", "))
}

// ItemFailure records a per-item error that was logged and skipped.
type ItemFailure struct {
	Item    string `json:"item"`
	Op      string `json:"op"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func newItemFailure(item string, op string, err error) ItemFailure {
	return ItemFailure{Item: item, Op: op, Message: err.Error(), Err: err}
}

// Per-item operations named in ItemFailure.Op.
const (
	OpBackup = "backup"
	OpCopy   = "copy"
)

func requireDir(sys System, role string, path string) error {
	info, err := sys.Stat(path)
	if err != nil {
		return &DirectoryNotFoundError{Role: role, Path: path, Err: err}
	}
	if !info.IsDir() {
		return &DirectoryNotFoundError{Role: role, Path: path, Err: fmt.Errorf("%s is not a directory", path)}
	}
	return nil
}

// exists reports whether name is present without following a final symlink.
func exists(sys System, name string) (bool, error) {
	if _, err := sys.Lstat(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// requireDisjoint rejects a source and target that are the same folder or
// nested in each other.
func requireDisjoint(sys System, source string, target string) error {
	sourceInfo, err := sys.Stat(source)
	if err != nil {
		return &DirectoryNotFoundError{Role: RoleSource, Path: source, Err: err}
	}
	targetInfo, err := sys.Stat(target)
	if err != nil {
		return &DirectoryNotFoundError{Role: RoleTarget, Path: target, Err: err}
	}
	overlap := os.SameFile(sourceInfo, targetInfo)
	if !overlap {
		src, dst := resolvedPath(source), resolvedPath(target)
		overlap = within(src, dst) || within(dst, src)
	}
	if overlap {
		return fmt.Errorf(messages.SwapFoldersOverlapFmt, ErrFoldersOverlap, source, target)
	}
	return nil
}

// resolvedPath returns path made absolute with symlinks evaluated, falling
// back to the cleaned absolute path.
func resolvedPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// within reports whether path lies strictly inside dir.
func within(path string, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
