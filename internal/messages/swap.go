package messages

// Swap messages for install, revert, and probe runs.
const (
	// SwapSystemRequired indicates a System implementation is required.
	SwapSystemRequired       = "swap system is required"
	SwapProfileNoSlots       = "swap profile has no slots"
	SwapDirectoryNotFoundFmt = "%s folder does not exist or is not a directory: %s"
	SwapNoCandidateFoundFmt  = "%w in %s (looked for %s)"
	SwapFoldersOverlapFmt    = "%w: %s and %s must be separate folders, neither inside the other"
	SwapReadDirFailedFmt     = "failed to list %s: %w"
	SwapCanonicalizeFmt      = "failed to prepare %s in source folder: %w"
	SwapRestoreFailedFmt     = "restore failed for slot(s) %s; the active file is missing, restore the backup manually"

	// SwapInstallStartFmt is the first install log line.
	SwapInstallStartFmt         = "Starting install from: %s to: %s"
	SwapFoundCandidateFmt       = "Found replacement for %s: %s"
	SwapNoCandidateForSlotFmt   = "No replacement for %s in source folder"
	SwapSourceBackupFmt         = "Existing %s in source folder found; moving it to %s"
	SwapRenameCandidateFmt      = "Renaming %s -> %s inside source folder"
	SwapRemoveStaleBackupFmt    = "Removing existing %s to allow backup."
	SwapRotateBackupFmt         = "Rotating %s -> %s"
	SwapBackupFmt               = "Backing up %s -> %s"
	SwapBackupFailedFmt         = "Failed to back up %s: %v"
	SwapBackupSkippedFmt        = "Skipping backup of %s: could not clear %s: %v"
	SwapCopyStart               = "Copying files from source folder into target folder (overwrite)."
	SwapCopiedFmt               = "Copied: %s"
	SwapCopyFailedFmt           = "Failed to copy %s: %v"
	SwapCopyUnprotectedFmt      = "not overwriting %s because its backup failed"
	SwapInstallCompleteFmt      = "Install complete: %d copied, %d failed."
	SwapRevertStartFmt          = "Starting revert in: %s"
	SwapDeletedFmt              = "Deleted: %s"
	SwapDeleteAbsentFmt         = "Not present, skipped: %s"
	SwapDeleteFailedFmt         = "Failed to delete %s: %v"
	SwapPayloadDeletedFmt       = "Deleted %s folder."
	SwapPayloadAbsentFmt        = "No %s folder found."
	SwapPayloadNone             = "No payload folder configured."
	SwapRemoveActiveFmt         = "Deleted current %s to allow restore from %s"
	SwapRemoveActiveFailedFmt   = "Failed to delete %s before restore: %v"
	SwapRestoredFmt             = "Restored %s -> %s"
	SwapRestoreRenameFailedFmt  = "Failed to restore %s -> %s: %v"
	SwapNothingToRestoreFmt     = "Nothing to restore for %s (no %s)."
	SwapRevertCompleteFmt       = "Revert complete: %d restored, %d failed."
	SwapUnsupportedEntryTypeFmt = "unsupported file type %s"
)
