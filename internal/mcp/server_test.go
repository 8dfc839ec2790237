package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/slotswap/internal/journal"
	"github.com/conn-castle/slotswap/internal/runner"
	"github.com/conn-castle/slotswap/internal/swap"
)

type fakeRunner struct {
	installRes runner.Result
	installErr error
	revertRes  runner.Result
	revertErr  error
	probe      swap.ProbeResult
	probeErr   error

	gotSource string
	gotTarget string
}

func (f *fakeRunner) Install(source string, target string, _ swap.Sink) (runner.Result, error) {
	f.gotSource, f.gotTarget = source, target
	return f.installRes, f.installErr
}

func (f *fakeRunner) Revert(target string, _ swap.Sink) (runner.Result, error) {
	f.gotTarget = target
	return f.revertRes, f.revertErr
}

func (f *fakeRunner) Status(target string) (swap.ProbeResult, error) {
	f.gotTarget = target
	return f.probe, f.probeErr
}

func recordWith(status journal.Status, errText string) journal.Record {
	return journal.Record{ID: "20260501-100000-1", Status: status, Error: errText, Log: []string{"line"}}
}

func TestStatusHandler(t *testing.T) {
	r := &fakeRunner{probe: swap.ProbeResult{
		Target: "/games/Title",
		State:  swap.StatePatched,
		Slots:  []swap.SlotProbe{{Slot: "main", ActivePresent: true, BackupPresent: true, State: swap.StatePatched}},
	}}

	result, out, err := statusHandler(r)(context.Background(), &mcp.CallToolRequest{}, StatusInput{Target: "/games/../games/Title"})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, filepath.Clean("/games/Title"), r.gotTarget)
	assert.Equal(t, "patched", out.State)
	require.Len(t, out.Slots, 1)
	assert.Equal(t, "main", out.Slots[0].Slot)
}

func TestStatusHandlerError(t *testing.T) {
	r := &fakeRunner{probeErr: errors.New("boom")}
	_, _, err := statusHandler(r)(context.Background(), &mcp.CallToolRequest{}, StatusInput{Target: "/x"})
	require.EqualError(t, err, "boom")
}

func TestInstallHandlerSucceeded(t *testing.T) {
	report := &swap.InstallReport{Copied: []string{"Game.exe"}}
	r := &fakeRunner{installRes: runner.Result{Record: recordWith(journal.StatusSucceeded, ""), Install: report}}

	result, out, err := installHandler(r)(context.Background(), &mcp.CallToolRequest{}, InstallInput{Source: "/src", Target: "/dst"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.Equal(t, filepath.Clean("/src"), r.gotSource)
	assert.Equal(t, "succeeded", out.Status)
	assert.Equal(t, []string{"line"}, out.Log)
	assert.Same(t, report, out.Install)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "install succeeded", text.Text)
}

func TestInstallHandlerFailedRunIsToolError(t *testing.T) {
	runErr := swap.ErrNoCandidateFound
	r := &fakeRunner{
		installRes: runner.Result{Record: recordWith(journal.StatusFailed, runErr.Error()), Install: &swap.InstallReport{}},
		installErr: runErr,
	}

	result, out, err := installHandler(r)(context.Background(), &mcp.CallToolRequest{}, InstallInput{Source: "/src", Target: "/dst"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Equal(t, "failed", out.Status)
	assert.Equal(t, runErr.Error(), out.Error)
	text := result.Content[0].(*mcp.TextContent)
	assert.Contains(t, text.Text, "install failed")
}

func TestRevertHandlerPartial(t *testing.T) {
	r := &fakeRunner{revertRes: runner.Result{Record: recordWith(journal.StatusPartial, ""), Revert: &swap.RevertReport{}}}

	result, out, err := revertHandler(r)(context.Background(), &mcp.CallToolRequest{}, RevertInput{Target: "/dst"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "partial", out.Status)
	assert.NotNil(t, out.Revert)
}

func TestRevertHandlerBusyTargetIsError(t *testing.T) {
	r := &fakeRunner{revertErr: runner.ErrTargetBusy}
	_, _, err := revertHandler(r)(context.Background(), &mcp.CallToolRequest{}, RevertInput{Target: "/dst"})
	require.ErrorIs(t, err, runner.ErrTargetBusy)
}

func TestNewServerRequiresRunner(t *testing.T) {
	_, err := NewServer("v1.0.0", nil)
	require.Error(t, err)

	var typedNil *runner.Runner
	_, err = NewServer("v1.0.0", typedNil)
	require.Error(t, err)

	_, err = NewServer("v1.0.0", &runner.Runner{})
	require.NoError(t, err)
}

func TestRunServerRunnerErrors(t *testing.T) {
	err := runServer(context.Background(), "v1.0.0", &fakeRunner{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run MCP server")

	err = runServer(context.Background(), "v1.0.0", &fakeRunner{}, func(context.Context, *mcp.Server) error {
		return errors.New("transport closed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport closed")

	err = runServer(context.Background(), "v1.0.0", nil, func(context.Context, *mcp.Server) error { return nil })
	require.Error(t, err)
}

func TestServerListsAndCallsToolsOverTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeRunner{probe: swap.ProbeResult{
		Target: "/games/Title",
		State:  swap.StateOriginal,
		Slots:  []swap.SlotProbe{{Slot: "main", ActivePresent: true, State: swap.StateOriginal}},
	}}
	server, err := NewServer("v1.0.0", r)
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(clientCtx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolStatus, ToolInstall, ToolRevert}, names)

	res, err := session.CallTool(clientCtx, &mcp.CallToolParams{
		Name:      ToolStatus,
		Arguments: map[string]any{"target": "/games/Title"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.NotNil(t, res.StructuredContent)

	require.NoError(t, session.Close())
	cancel()
	select {
	case <-serveErr:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
