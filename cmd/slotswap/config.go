package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/messages"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   messages.ConfigInitUse,
		Short: messages.ConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			path, _, err := configPathFor(cmd, paths)
			if err != nil {
				return err
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigInitDoneFmt+"\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, flagForce, false, messages.FlagForce)
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigShowUse,
		Short: messages.ConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.fromFile {
				_, _ = fmt.Fprintf(out, messages.ConfigShowFileFmt+"\n", a.configPath)
			} else {
				_, _ = fmt.Fprintln(out, messages.ConfigShowBuiltin)
			}
			_, _ = fmt.Fprintf(out, messages.ConfigShowGensFmt+"\n", a.cfg.BackupGenerations())
			for _, slot := range a.cfg.Slots {
				_, _ = fmt.Fprintf(out, messages.ConfigShowSlotFmt+"\n", slot.Name, slot.Active, slot.Backup, strings.Join(slot.Candidates, ", "))
			}
			_, _ = fmt.Fprintf(out, messages.ConfigShowDeleteFmt+"\n", joinOrNone(a.cfg.Revert.Delete))
			payload := a.cfg.Revert.PayloadDir
			if payload == "" {
				payload = "none"
			}
			_, _ = fmt.Fprintf(out, messages.ConfigShowPayloadFmt+"\n", payload)
			return nil
		},
	}
}
