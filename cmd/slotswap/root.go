package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/messages"
)

const (
	flagConfig = "config"
	flagYes    = "yes"
	flagQuiet  = "quiet"
	flagPlain  = "plain"
	flagJSON   = "json"
	flagForce  = "force"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.PersistentFlags().String(flagConfig, "", messages.FlagConfig)
	cmd.PersistentFlags().BoolP(flagQuiet, "q", false, messages.FlagQuiet)

	cmd.AddCommand(
		newInstallCmd(),
		newRevertCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newMcpCmd(),
	)
	return cmd
}
