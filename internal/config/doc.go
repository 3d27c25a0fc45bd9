// Package config loads, normalizes, and validates Shelve configuration data.
//
// Configuration comes from a TOML file (default ~/.config/shelve/config.toml)
// layered over built-in defaults, with env var fallbacks for the archive
// folder and ntfy topic. Always obtain settings through this package so
// downstream code receives expanded paths, canonical log formats, and clear
// validation errors.
package config
