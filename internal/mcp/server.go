// Package mcp exposes status, install, and revert as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

// Tool names.
const (
	ToolStatus  = "status"
	ToolInstall = "install"
	ToolRevert  = "revert"
)

// Runner performs the runs behind the tools.
type Runner interface {
	Install(source string, target string, sink swap.Sink) (runner.Result, error)
	Revert(target string, sink swap.Sink) (runner.Result, error)
	Status(target string) (swap.ProbeResult, error)
}

type serverRunner func(ctx context.Context, server *mcp.Server) error

// RunServer starts the MCP tool server over stdio.
func RunServer(ctx context.Context, version string, r Runner) error {
	return runServer(ctx, version, r, defaultServerRunner)
}

// runServer builds the MCP server and runs it using the provided runner.
func runServer(ctx context.Context, version string, r Runner, run serverRunner) error {
	if run == nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, errors.New(messages.McpServerRunnerNil))
	}
	server, err := NewServer(version, r)
	if err != nil {
		return err
	}
	if err := run(ctx, server); err != nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, err)
	}
	return nil
}

// defaultServerRunner runs the MCP server over stdio.
func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewServer returns a server with the slotswap tools registered. A nil
// Runner, including a nil *runner.Runner, is rejected.
func NewServer(version string, r Runner) (*mcp.Server, error) {
	if isNilRunner(r) {
		return nil, errors.New(messages.McpRunnerRequired)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "slotswap",
		Version: version,
	}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: ToolStatus, Description: messages.McpStatusToolDescription}, statusHandler(r))
	mcp.AddTool(server, &mcp.Tool{Name: ToolInstall, Description: messages.McpInstallToolDescription}, installHandler(r))
	mcp.AddTool(server, &mcp.Tool{Name: ToolRevert, Description: messages.McpRevertToolDescription}, revertHandler(r))
	return server, nil
}

func isNilRunner(r Runner) bool {
	if r == nil {
		return true
	}
	rr, ok := r.(*runner.Runner)
	return ok && rr == nil
}
