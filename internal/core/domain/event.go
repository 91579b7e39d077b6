package domain

// SourceEventKind describes what happened to a watched source.
type SourceEventKind string

// Source event kinds.
const (
	SourceEventWritten SourceEventKind = "written"
	SourceEventRemoved SourceEventKind = "removed"
)

// SourceEvent reports a change to a source made outside the running process.
type SourceEvent struct {
	// Kind is the change type.
	Kind SourceEventKind

	// Path is the file that changed.
	Path string

	// Source is the record after the change. Nil for removals or unreadable files.
	Source *Source

	// Err is set when the changed file could not be decoded.
	Err error
}
