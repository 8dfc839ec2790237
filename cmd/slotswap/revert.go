package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

func newRevertCmd() *cobra.Command {
	var yes bool
	var plain bool

	cmd := &cobra.Command{
		Use:   messages.RevertUse,
		Short: messages.RevertShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			ok, err := confirm(yes, messages.RevertConfirmTitle, fmt.Sprintf(messages.RevertConfirmBodyFmt, target))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.Cancelled)
				return nil
			}

			res, runErr := execRun(cmd, fmt.Sprintf(messages.RevertViewTitleFmt, target), plain, func(sink swap.Sink) (runner.Result, error) {
				return a.runner.Revert(target, sink)
			})
			warnJournal(cmd.ErrOrStderr(), res)
			return printRevertSummary(cmd.OutOrStdout(), res, runErr)
		},
	}
	cmd.Flags().BoolVarP(&yes, flagYes, "y", false, messages.FlagYes)
	cmd.Flags().BoolVar(&plain, flagPlain, false, messages.FlagPlain)
	return cmd
}
