// Package config loads, normalizes, and validates remuxer configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// REMUXER_LANGUAGES. The Config type centralizes every knob the scanner and
// CLI need: library roots, the remux policy, external tool binaries, and
// logging.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical mode names, and clear validation errors.
package config
