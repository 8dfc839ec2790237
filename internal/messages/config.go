package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt        = "missing config file %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template config.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized config keys: %w"
	ConfigValidationGuidance    = "(run `slotswap config init --force` to start over from the default config)"
	ConfigHomeUnresolvedFmt     = "failed to resolve home directory: %w"
	ConfigExistsFmt             = "config file %s already exists (use --force to overwrite)"
	ConfigWriteFailedFmt        = "failed to write config file %s: %w"
	ConfigCreateDirFailedFmt    = "failed to create directory %s: %w"

	ConfigNoSlotsFmt                = "%s: at least one [[slots]] entry is required"
	ConfigGenerationsRangeFmt       = "%s: backup.generations must be between 1 and %d (got %d)"
	ConfigSlotNameRequiredFmt       = "%s: slots[%d].name is required"
	ConfigSlotNameDuplicateFmt      = "%s: slots[%d].name %q duplicates slots[%d].name"
	ConfigSlotFieldRequiredFmt      = "%s: slots[%d].%s is required"
	ConfigSlotFieldNotBaseNameFmt   = "%s: slots[%d].%s %q must be a plain file name without folders"
	ConfigSlotActiveIsBackupFmt     = "%s: slots[%d].active and slots[%d].backup must differ (both %q)"
	ConfigSlotCandidatesRequiredFmt = "%s: slots[%d].candidates must list at least one file name"
	ConfigSlotNameReusedFmt         = "%s: file name %q is used by more than one slot"
	ConfigCandidateReusedFmt        = "%s: candidate %q is listed by more than one slot"
	ConfigCandidateIsSlotFileFmt    = "%s: slots[%d].candidates %q is the active or backup name of slot %q"
	ConfigRevertEntryRequiredFmt    = "%s: revert.delete[%d] is empty"
	ConfigRevertEntryNotBaseNameFmt = "%s: revert.delete[%d] %q must be a plain file name without folders"
	ConfigRevertEntryIsSlotFileFmt  = "%s: revert.delete[%d] %q names a slot file; slot files are restored, not deleted"
	ConfigPayloadDirNotBaseNameFmt  = "%s: revert.payload_dir %q must be a plain folder name"
	ConfigPayloadDirIsSlotFileFmt   = "%s: revert.payload_dir %q names a slot file"
)
