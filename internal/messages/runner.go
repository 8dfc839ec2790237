package messages

// Runner messages for locked, journaled runs.
const (
	RunnerSystemRequired      = "runner system is required"
	RunnerTargetRequired      = "target folder is required"
	RunnerSourceRequired      = "source folder is required"
	RunnerResolvePathFmt      = "failed to resolve %s: %w"
	RunnerCreateLockDirFmt    = "failed to create lock directory %s: %w"
	RunnerOpenLockFmt         = "open lock %s: %w"
	RunnerLockFmt             = "lock %s: %w"
	RunnerTargetBusyFmt       = "%w: %s"
	RunnerJournalWriteWarnFmt = "warning: run finished but its record could not be saved: %v"
)
