// Package config handles configuration management for resgather.
// It layers embedded defaults, project and explicit TOML files,
// RESGATHER_* environment variables and command-line overrides.
package config
