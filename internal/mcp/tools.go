package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/slotswap/internal/config"
	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/messages"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

// StatusInput is the input of the status tool.
type StatusInput struct {
	Target string `json:"target" jsonschema:"game folder to inspect"`
}

// StatusOutput is the output of the status tool.
type StatusOutput struct {
	Target          string           `json:"target" jsonschema:"absolute game folder path"`
	State           string           `json:"state" jsonschema:"original, patched, or inconsistent"`
	Slots           []swap.SlotProbe `json:"slots" jsonschema:"per-slot file presence and state"`
	ManifestPresent []string         `json:"manifest_present,omitempty" jsonschema:"installed files still present"`
}

// InstallInput is the input of the install tool.
type InstallInput struct {
	Source string `json:"source" jsonschema:"folder holding the replacement set"`
	Target string `json:"target" jsonschema:"game folder to patch"`
}

// RevertInput is the input of the revert tool.
type RevertInput struct {
	Target string `json:"target" jsonschema:"game folder to restore"`
}

// RunOutput is the output of the install and revert tools.
type RunOutput struct {
	RunID   string              `json:"run_id" jsonschema:"journal id of the run"`
	Status  string              `json:"status" jsonschema:"succeeded, partial, or failed"`
	Error   string              `json:"error,omitempty" jsonschema:"run error when the run failed"`
	Log     []string            `json:"log" jsonschema:"log lines in order"`
	Install *swap.InstallReport `json:"install,omitempty" jsonschema:"install report"`
	Revert  *swap.RevertReport  `json:"revert,omitempty" jsonschema:"revert report"`
}

func statusHandler(r Runner) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		target, err := config.ExpandPath(input.Target)
		if err != nil {
			return nil, StatusOutput{}, err
		}
		probe, err := r.Status(target)
		if err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{
			Target:          probe.Target,
			State:           string(probe.State),
			Slots:           probe.Slots,
			ManifestPresent: probe.ManifestPresent,
		}, nil
	}
}

func installHandler(r Runner) mcp.ToolHandlerFor[InstallInput, RunOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InstallInput) (*mcp.CallToolResult, RunOutput, error) {
		source, err := config.ExpandPath(input.Source)
		if err != nil {
			return nil, RunOutput{}, err
		}
		target, err := config.ExpandPath(input.Target)
		if err != nil {
			return nil, RunOutput{}, err
		}
		res, runErr := r.Install(source, target, nil)
		return runResult(ToolInstall, res, runErr)
	}
}

func revertHandler(r Runner) mcp.ToolHandlerFor[RevertInput, RunOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RevertInput) (*mcp.CallToolResult, RunOutput, error) {
		target, err := config.ExpandPath(input.Target)
		if err != nil {
			return nil, RunOutput{}, err
		}
		res, runErr := r.Revert(target, nil)
		return runResult(ToolRevert, res, runErr)
	}
}

// runResult maps a run to tool output. A run that never started (busy
// target, bad input) is a tool error; a run that started always returns its
// record, flagged as an error when it failed.
func runResult(tool string, res runner.Result, runErr error) (*mcp.CallToolResult, RunOutput, error) {
	if res.Record.ID == "" {
		if runErr == nil {
			runErr = fmt.Errorf(messages.McpRunFailedFmt, tool, "no run was recorded")
		}
		return nil, RunOutput{}, runErr
	}
	out := RunOutput{
		RunID:   res.Record.ID,
		Status:  string(res.Record.Status),
		Error:   res.Record.Error,
		Log:     res.Record.Log,
		Install: res.Install,
		Revert:  res.Revert,
	}
	var text string
	switch res.Record.Status {
	case journal.StatusFailed:
		text = fmt.Sprintf(messages.McpRunFailedFmt, tool, runErr)
	case journal.StatusPartial:
		text = fmt.Sprintf(messages.McpRunPartialFmt, tool)
	default:
		text = fmt.Sprintf(messages.McpRunSucceededFmt, tool)
	}
	return &mcp.CallToolResult{
		IsError: res.Record.Status == journal.StatusFailed,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, out, nil
}
