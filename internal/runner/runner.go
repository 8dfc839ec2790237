// Package runner wraps install and revert runs with a per-target lock and a
// journal record. The CLI and the MCP server both run through it.
package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/swap"
)

// ErrTargetBusy reports that another run holds the target folder's lock.
var ErrTargetBusy = errors.New("another slotswap run is using this target folder")

// Runner executes locked, journaled runs against one profile.
type Runner struct {
	System  swap.System
	Profile swap.Profile
	// Journal receives a record per run. Nil disables recording.
	Journal *journal.Store
	// LockDir holds the per-target lock files. Empty disables locking.
	LockDir string
	Now     func() time.Time
}

// Result describes a finished run.
type Result struct {
	Record  journal.Record
	Install *swap.InstallReport
	Revert  *swap.RevertReport
	// JournalErr is set when the record could not be written. The run itself
	// is unaffected.
	JournalErr error
}

// Status returns the record status of the run.
func (r Result) Status() journal.Status {
	return r.Record.Status
}

// Install runs swap.Install from source into target.
func (r *Runner) Install(source string, target string, sink swap.Sink) (Result, error) {
	if source == "" {
		return Result{}, errors.New(messages.RunnerSourceRequired)
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return Result{}, fmt.Errorf(messages.RunnerResolvePathFmt, source, err)
	}
	var report swap.InstallReport
	res, err := r.run(journal.OperationInstall, absSource, target, sink, func(absTarget string, opts swap.Options) (any, bool, error) {
		var err error
		report, err = swap.Install(absSource, absTarget, opts)
		return report, report.Partial(), err
	})
	if res.Record.ID != "" {
		res.Install = &report
	}
	return res, err
}

// Revert runs swap.Revert on target.
func (r *Runner) Revert(target string, sink swap.Sink) (Result, error) {
	var report swap.RevertReport
	res, err := r.run(journal.OperationRevert, "", target, sink, func(absTarget string, opts swap.Options) (any, bool, error) {
		var err error
		report, err = swap.Revert(absTarget, opts)
		return report, report.Partial(), err
	})
	if res.Record.ID != "" {
		res.Revert = &report
	}
	return res, err
}

// Status probes target without taking the lock.
func (r *Runner) Status(target string) (swap.ProbeResult, error) {
	if target == "" {
		return swap.ProbeResult{}, errors.New(messages.RunnerTargetRequired)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return swap.ProbeResult{}, fmt.Errorf(messages.RunnerResolvePathFmt, target, err)
	}
	return swap.Probe(r.System, absTarget, r.Profile)
}

// runFunc performs one orchestrator call and returns its report and whether
// the report records per-item failures.
type runFunc func(absTarget string, opts swap.Options) (report any, partial bool, err error)

func (r *Runner) run(op journal.Operation, source string, target string, sink swap.Sink, fn runFunc) (Result, error) {
	if r.System == nil {
		return Result{}, errors.New(messages.RunnerSystemRequired)
	}
	if target == "" {
		return Result{}, errors.New(messages.RunnerTargetRequired)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return Result{}, fmt.Errorf(messages.RunnerResolvePathFmt, target, err)
	}

	lock, err := r.lock(absTarget)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = lock.release()
	}()

	now := r.now()
	rec := journal.Record{
		ID:           journal.NewID(now),
		Operation:    op,
		Source:       source,
		Target:       absTarget,
		StartedAtUTC: now.UTC().Format(time.RFC3339Nano),
	}
	rec.Before, _ = journal.CaptureListing(absTarget)

	tee := &teeSink{next: sink}
	report, partial, runErr := fn(absTarget, swap.Options{System: r.System, Profile: r.Profile, Sink: tee})

	rec.After, _ = journal.CaptureListing(absTarget)
	rec.Log = tee.lines
	rec.FinishedAtUTC = r.now().UTC().Format(time.RFC3339Nano)
	if data, err := json.Marshal(report); err == nil {
		rec.Report = data
	}
	switch {
	case runErr != nil:
		rec.Status = journal.StatusFailed
		rec.Error = runErr.Error()
	case partial:
		rec.Status = journal.StatusPartial
	default:
		rec.Status = journal.StatusSucceeded
	}

	res := Result{Record: rec}
	if r.Journal != nil {
		res.JournalErr = r.Journal.Write(rec)
	}
	return res, runErr
}

func (r *Runner) lock(absTarget string) (*fileLock, error) {
	if r.LockDir == "" {
		return &fileLock{}, nil
	}
	if err := os.MkdirAll(r.LockDir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.RunnerCreateLockDirFmt, r.LockDir, err)
	}
	lock, err := acquireLock(LockPath(r.LockDir, absTarget))
	if errors.Is(err, ErrTargetBusy) {
		return nil, fmt.Errorf(messages.RunnerTargetBusyFmt, ErrTargetBusy, absTarget)
	}
	return lock, err
}

// LockPath returns the lock file used for absTarget.
func LockPath(lockDir string, absTarget string) string {
	sum := sha256.Sum256([]byte(absTarget))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// teeSink records log lines for the journal and forwards everything.
type teeSink struct {
	next  swap.Sink
	lines []string
}

func (t *teeSink) Log(line string) {
	t.lines = append(t.lines, line)
	if t.next != nil {
		t.next.Log(line)
	}
}

func (t *teeSink) Progress(percent int) {
	if t.next != nil {
		t.next.Progress(percent)
	}
}
