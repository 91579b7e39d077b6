package domain

const unknownDescription = "Unknown"

// DefaultSourcesDir is where APT looks for deb822 .sources files.
const DefaultSourcesDir = "/etc/apt/sources.list.d"

// StorageBackend selects where source records are kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite keeps records in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps records in memory for the lifetime of the process.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSourcesDir keeps one deb822 .sources file per record.
	StorageBackendSourcesDir StorageBackend = "sourcesdir"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory, StorageBackendSourcesDir:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if records survive process exit.
func (b StorageBackend) IsPersistent() bool {
	return b == StorageBackendSQLite || b == StorageBackendSourcesDir
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (local database)"
	case StorageBackendMemory:
		return "Memory (not persisted)"
	case StorageBackendSourcesDir:
		return "Sources directory (deb822 files)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all supported backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendSQLite,
		StorageBackendMemory,
		StorageBackendSourcesDir,
	}
}

// StorageSettings configures record persistence.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir holds the SQLite database. Empty means ~/.aptline/data.
	DataDir string

	// SourcesDir holds deb822 .sources files for the sourcesdir backend.
	SourcesDir string
}

// NamingSettings configures derived record names.
type NamingSettings struct {
	// Prefix is prepended to names derived from URIs.
	Prefix string
}

// LogSettings configures diagnostic output.
type LogSettings struct {
	// Verbose enables debug logging.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Naming  NamingSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend:    StorageBackendSQLite,
			SourcesDir: DefaultSourcesDir,
		},
		Naming: NamingSettings{
			Prefix: DefaultNamePrefix,
		},
	}
}
