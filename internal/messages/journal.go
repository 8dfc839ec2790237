package messages

// Journal messages for run records.
const (
	JournalDirRequired        = "journal directory is required"
	JournalCreateDirFailedFmt = "failed to create journal directory %s: %w"
	JournalWriteFailedFmt     = "failed to write run record %s: %w"
	JournalReadFailedFmt      = "failed to read run record %s: %w"
	JournalDecodeFailedFmt    = "decode run record %s: %w"
	JournalPruneFailedFmt     = "delete old run record %s: %w"
	JournalListFailedFmt      = "failed to list run records in %s: %w"
	JournalNotFoundFmt        = "run %q not found (see `slotswap history`)"
	JournalInvalidIDFmt       = "invalid run id %q"
	JournalListingFailedFmt   = "failed to list %s: %w"
)
