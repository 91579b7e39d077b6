// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SourceService wraps the one-line codec in package debline and
// manages stored records. SettingsService reads and writes config.
package services
