package messages

// MCP messages for the slotswap tool server.
const (
	// McpRunServerFailedFmt formats MCP server failures.
	McpRunServerFailedFmt = "failed to run MCP server: %w"
	McpRunnerRequired     = "mcp runner is required"
	McpServerRunnerNil    = "mcp server runner is nil"

	McpStatusToolDescription  = "Report whether a game folder is original, patched, or inconsistent, slot by slot"
	McpInstallToolDescription = "Install a replacement set from a source folder into a game folder, backing up each slot's executable"
	McpRevertToolDescription  = "Remove installed files from a game folder and restore each slot's backed-up executable"
	McpRunFailedFmt           = "%s failed: %v"
	McpRunPartialFmt          = "%s finished with failures; see the report"
	McpRunSucceededFmt        = "%s succeeded"
)
