// Package config loads, normalizes, and validates bitfx configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), and
// reads TOML files. A missing file is not an error: the defaults apply, and
// command-line flags override whatever the file sets.
package config
