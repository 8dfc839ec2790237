package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/swap"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
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
			result, err := a.runner.Status(target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(data))
				return nil
			}

			_, _ = fmt.Fprintf(out, messages.StatusHeaderFmt+"\n", result.Target, stateColor(result.State))
			for _, slot := range result.Slots {
				_, _ = fmt.Fprintf(out, messages.StatusSlotFmt+"\n", slot.Slot, slot.State, yesNo(slot.ActivePresent), yesNo(slot.BackupPresent))
			}
			_, _ = fmt.Fprintf(out, messages.StatusManifestFmt+"\n", joinOrNone(result.ManifestPresent))
			if result.State == swap.StateInconsistent {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.StatusInconsistentTip))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, flagJSON, false, messages.FlagJSON)
	return cmd
}
