package swap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conn-castle/slotswap/internal/messages"
)

// copyEntry copies the top-level source entry src to dst, replacing whatever
// dst holds. Directories are replaced wholesale, never merged.
func copyEntry(sys System, src string, dst string) error {
	info, err := sys.Lstat(src)
	if err != nil {
		return err
	}
	if err := clearForCopy(sys, dst, info.IsDir()); err != nil {
		return err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return copySymlink(sys, src, dst)
	case info.IsDir():
		return copyTree(sys, src, dst)
	case info.Mode().IsRegular():
		return sys.CopyFile(src, dst)
	default:
		return fmt.Errorf(messages.SwapUnsupportedEntryTypeFmt, info.Mode().Type())
	}
}

// clearForCopy removes dst when it cannot simply be overwritten: any existing
// directory when copying a directory, and a directory or symlink in the way
// of a file.
func clearForCopy(sys System, dst string, srcIsDir bool) error {
	info, err := sys.Lstat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if srcIsDir || info.IsDir() || info.Mode()&fs.ModeSymlink != 0 {
		return sys.RemoveAll(dst)
	}
	return nil
}

func copyTree(sys System, srcRoot string, dstRoot string) error {
	return sys.WalkDir(srcRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstRoot, rel)
		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			return copySymlink(sys, path, dst)
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			return sys.MkdirAll(dst, info.Mode().Perm()|0o700)
		case entry.Type().IsRegular():
			return sys.CopyFile(path, dst)
		default:
			return fmt.Errorf(messages.SwapUnsupportedEntryTypeFmt, entry.Type())
		}
	})
}

func copySymlink(sys System, src string, dst string) error {
	link, err := sys.Readlink(src)
	if err != nil {
		return err
	}
	return sys.Symlink(link, dst)
}
