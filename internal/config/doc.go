// Package config loads, normalizes, and validates Clio configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// KLEIO_API_TOKEN. The Config type centralizes every knob the CLI needs, from
// the Kleio server address to the default stats window.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
