package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "slotswap"
	// RootShort is the short description for the root command.
	RootShort       = "Swap a game's executables with a replacement set and restore them"
	RootVersionFlag = "Print version and exit"
	FlagConfig      = "path to config.toml (default $SLOTSWAP_HOME/config.toml or ~/.slotswap/config.toml)"
	FlagYes         = "proceed without asking for confirmation"
	FlagQuiet       = "print only the final summary"
	FlagPlain       = "print plain log lines instead of the live progress view"
	FlagJSON        = "print machine-readable JSON"
	FlagForce       = "overwrite an existing config file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command usage.
	InstallUse                = "install <source-folder> <game-folder>"
	InstallShort              = "Install a replacement set into a game folder"
	InstallConfirmTitle       = "Install into this game folder?"
	InstallConfirmBodyFmt     = "Source: %s\nTarget: %s\n\nEach slot's executable is moved to its backup name and every file in the source folder is copied over the game folder."
	InstallViewTitleFmt       = "Installing into %s"
	InstallSucceededFmt       = "Install complete: %d item(s) copied into %s."
	InstallPartialFmt         = "Install finished with %d failure(s) in %s:"
	InstallFailed             = "Install failed."
	InstallPatchedFmt         = "  %s: %s -> %s (original kept as %s)"
	InstallPatchedNoBackupFmt = "  %s: %s -> %s (no original to back up)"

	// RevertUse is the revert command usage.
	RevertUse            = "revert <game-folder>"
	RevertShort          = "Remove installed files and restore the original executables"
	RevertConfirmTitle   = "Revert this game folder?"
	RevertConfirmBodyFmt = "Target: %s\n\nInstalled files are deleted and each slot's backup is moved back into place."
	RevertViewTitleFmt   = "Reverting %s"
	RevertSucceededFmt   = "Revert complete: %d slot(s) restored, %d item(s) deleted in %s."
	RevertPartialFmt     = "Revert finished with %d failure(s) in %s:"
	RevertFailed         = "Revert failed."
	RevertNothingToDo    = "Nothing was installed here; the folder is unchanged."

	FailureLineFmt = "  %s %s: %s"
	Cancelled      = "Cancelled; nothing was changed."

	// StatusUse is the status command usage.
	StatusUse             = "status <game-folder>"
	StatusShort           = "Show whether a game folder is original, patched, or inconsistent"
	StatusHeaderFmt       = "%s: %s"
	StatusSlotFmt         = "  %-12s %-13s active=%s backup=%s"
	StatusManifestFmt     = "  installed files present: %s"
	StatusInconsistentTip = "  run `slotswap revert` to restore the originals, or fix the folder by hand"

	// HistoryUse is the history command name.
	HistoryUse           = "history"
	HistoryShort         = "List past install and revert runs"
	HistoryShowUse       = "show <run-id>"
	HistoryShowShort     = "Show one run with its log and folder changes"
	HistoryEmpty         = "No runs recorded yet."
	HistoryRowFmt        = "%-32s  %-8s  %-9s  %s"
	HistoryFieldFmt      = "%-10s %s"
	HistoryLogHeader     = "Log:"
	HistoryDiffHeader    = "Folder changes:"
	HistoryNoChanges     = "  (none)"
	HistoryDiffTruncated = "(diff truncated)"

	// ConfigUse is the config command name.
	ConfigUse            = "config"
	ConfigShort          = "Manage the slotswap configuration"
	ConfigInitUse        = "init"
	ConfigInitShort      = "Write the default config file"
	ConfigInitDoneFmt    = "Wrote %s"
	ConfigShowUse        = "show"
	ConfigShowShort      = "Print the effective configuration"
	ConfigShowFileFmt    = "Config: %s"
	ConfigShowBuiltin    = "Config: built-in defaults (run `slotswap config init` to customize)"
	ConfigShowGensFmt    = "Backup generations: %d"
	ConfigShowSlotFmt    = "Slot %s: active=%s backup=%s candidates=%s"
	ConfigShowDeleteFmt  = "Revert deletes: %s"
	ConfigShowPayloadFmt = "Revert payload folder: %s"

	// McpUse is the mcp command name.
	McpUse   = "mcp"
	McpShort = "Run the slotswap MCP tool server over stdio"
)
