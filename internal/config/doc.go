// Package config loads, normalizes, and validates ucclean configuration data.
//
// It supplies defaults that reproduce the fixed release (cutoff 2024-08-31,
// the "Filing Number" / "Official Designation" / "Filing Date" columns, and
// the standard designation hierarchy), expands user paths, reads TOML files,
// and honours the UCCLEAN_INPUT and UCCLEAN_OUTPUT environment overrides.
//
// Always obtain settings through this package so downstream code receives
// absolute paths and a parsed cutoff.
package config
