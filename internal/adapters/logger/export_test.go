package logger

// ErrorEntry exposes a collected chain link for tests.
type ErrorEntry = errorEntry

// Message returns the entry message.
func (e ErrorEntry) Message() string { return e.message }

// Metadata returns the entry metadata.
func (e ErrorEntry) Metadata() map[string]any { return e.metadata }

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
