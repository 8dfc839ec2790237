package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/prompt"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
	"github.com/conn-castle/slotswap/internal/terminal"
	"github.com/conn-castle/slotswap/internal/tui"
)

var (
	resolvePaths    = config.DefaultPaths
	isInteractive   = terminal.IsInteractive
	newConfirmUI    = func() prompt.UI { return prompt.NewHuhUI() }
	runProgressView = tui.Run
)

// app holds what every command needs after flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	fromFile   bool
	store      *journal.Store
	runner     *runner.Runner
}

// loadApp resolves paths and loads the config. An explicit --config file
// must exist; otherwise the built-in template stands in for a missing file.
func loadApp(cmd *cobra.Command) (*app, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, err
	}
	configPath, explicit, err := configPathFor(cmd, paths)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	fromFile := true
	if explicit {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, fromFile, err = config.LoadOrTemplate(configPath)
	}
	if err != nil {
		return nil, err
	}

	store, err := journal.NewStore(paths.RunsDir)
	if err != nil {
		return nil, err
	}
	return &app{
		configPath: configPath,
		cfg:        cfg,
		fromFile:   fromFile,
		store:      store,
		runner: &runner.Runner{
			System:  swap.RealSystem{},
			Profile: cfg.Profile(),
			Journal: store,
			LockDir: filepath.Join(paths.StateDir, "locks"),
		},
	}, nil
}

// configPathFor returns the --config value, expanded, or the default path.
func configPathFor(cmd *cobra.Command, paths config.Paths) (string, bool, error) {
	flagValue, _ := cmd.Flags().GetString(flagConfig)
	if flagValue == "" {
		return paths.ConfigPath, false, nil
	}
	path, err := config.ExpandPath(flagValue)
	return path, true, err
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool(flagQuiet)
	return quiet
}

// confirm asks before a destructive run unless yes is set. A cancelled or
// declined prompt returns false without error.
func confirm(yes bool, title string, body string) (bool, error) {
	if yes {
		return true, nil
	}
	ok := false
	err := newConfirmUI().Confirm(title, body, &ok)
	if errors.Is(err, prompt.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

type runFunc func(sink swap.Sink) (runner.Result, error)

// execRun runs fn behind the live progress view when attached to a terminal,
// and with plain log lines otherwise.
func execRun(cmd *cobra.Command, title string, plain bool, fn runFunc) (runner.Result, error) {
	quiet := quietFlag(cmd)
	if !quiet && !plain && isInteractive() {
		var res runner.Result
		var runErr error
		viewErr := runProgressView(title, cmd.InOrStdin(), cmd.OutOrStdout(), func(sink swap.Sink) {
			res, runErr = fn(sink)
		})
		if viewErr != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), viewErr)
		}
		return res, runErr
	}
	return fn(&tui.PlainSink{Out: cmd.OutOrStdout(), Quiet: quiet})
}

// warnJournal reports a record that could not be saved.
func warnJournal(w io.Writer, res runner.Result) {
	if res.JournalErr != nil {
		_, _ = fmt.Fprintln(w, color.YellowString(messages.RunnerJournalWriteWarnFmt, res.JournalErr))
	}
}
