package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/slotswap/internal/mcp"
	"github.com/conn-castle/slotswap/internal/messages"
)

var runMcpServer = mcp.RunServer

func newMcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.McpUse,
		Short: messages.McpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runMcpServer(cmd.Context(), Version, a.runner)
		},
	}
}
