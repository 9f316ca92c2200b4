// Package config loads server configuration from a YAML file with
// environment variable overrides layered on top. Precedence, lowest to
// highest: built-in defaults, file values, environment.
package config
