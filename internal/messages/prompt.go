package messages

// Prompt messages for confirmation forms.
const (
	// PromptRequiresTerminal indicates confirmation needs an interactive terminal.
	PromptRequiresTerminal = "confirmation requires an interactive terminal; re-run with --yes to proceed without prompting"
	PromptCancelled        = "cancelled"
	PromptAffirmative      = "Proceed"
	PromptNegative         = "Cancel"
)
