// Package file provides the file-based implementation of the
// ConfigStore driven port. Configuration is persisted as TOML in the
// freemap config directory.
package file
