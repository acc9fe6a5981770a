package logger

// Error formatting internals exported for white-box tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// EntryMessage returns the message of an error entry.
func EntryMessage(e errorEntry) string { return e.message }

// EntryMetadata returns the rendered metadata of an error entry.
func EntryMetadata(e errorEntry) []string { return e.metadata }
