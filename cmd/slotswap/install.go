package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

func newInstallCmd() *cobra.Command {
	var yes bool
	var plain bool

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			target, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			ok, err := confirm(yes, messages.InstallConfirmTitle, fmt.Sprintf(messages.InstallConfirmBodyFmt, source, target))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.Cancelled)
				return nil
			}

			res, runErr := execRun(cmd, fmt.Sprintf(messages.InstallViewTitleFmt, target), plain, func(sink swap.Sink) (runner.Result, error) {
				return a.runner.Install(source, target, sink)
			})
			warnJournal(cmd.ErrOrStderr(), res)
			return printInstallSummary(cmd.OutOrStdout(), res, runErr)
		},
	}
	cmd.Flags().BoolVarP(&yes, flagYes, "y", false, messages.FlagYes)
	cmd.Flags().BoolVar(&plain, flagPlain, false, messages.FlagPlain)
	return cmd
}
