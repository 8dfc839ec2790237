package journal

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/slotswap/internal/messages"
)

// EntryKind classifies a listed name.
type EntryKind string

// Listing entry kinds.
const (
	KindFile    EntryKind = "file"
	KindDir     EntryKind = "dir"
	KindSymlink EntryKind = "symlink"
	KindOther   EntryKind = "other"
)

// Entry is one top-level name in a target folder listing.
type Entry struct {
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`
	Size int64     `json:"size,omitempty"`
}

// DiffMaxLines caps the rendered listing diff.
const DiffMaxLines = 200

// CaptureListing lists the top level of dir. Only names, kinds, and file
// sizes are recorded; folders are not descended into.
func CaptureListing(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(messages.JournalListingFailedFmt, dir, err)
	}
	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := Entry{Name: de.Name()}
		switch {
		case de.Type()&os.ModeSymlink != 0:
			entry.Kind = KindSymlink
		case de.IsDir():
			entry.Kind = KindDir
		case de.Type().IsRegular():
			entry.Kind = KindFile
			if info, err := de.Info(); err == nil {
				entry.Size = info.Size()
			}
		default:
			entry.Kind = KindOther
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FormatListing renders entries one per line.
func FormatListing(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case KindFile:
			_, _ = fmt.Fprintf(&b, "%s (%d bytes)\n", e.Name, e.Size)
		case KindDir:
			_, _ = fmt.Fprintf(&b, "%s/\n", e.Name)
		case KindSymlink:
			_, _ = fmt.Fprintf(&b, "%s@\n", e.Name)
		default:
			_, _ = fmt.Fprintf(&b, "%s (%s)\n", e.Name, e.Kind)
		}
	}
	return b.String()
}

// Diff returns a unified diff of two listings, truncated to maxLines. It
// returns "" when the listings are identical.
func Diff(before []Entry, after []Entry, maxLines int) (string, bool) {
	diff := udiff.Unified("before", "after", FormatListing(before), FormatListing(after))
	trimmed := strings.TrimRight(diff, "\n")
	if trimmed == "" {
		return "", false
	}
	lines := strings.Split(trimmed, "\n")
	if maxLines <= 0 || len(lines) <= maxLines {
		return trimmed + "\n", false
	}
	lines = append(lines[:maxLines], fmt.Sprintf("... (%d more lines)", len(lines)-maxLines))
	return strings.Join(lines, "\n") + "\n", true
}
