// Package config defines the application configuration structures and
// loading logic. Configuration is sourced from environment variables
// with the MUSE_ prefix (and optionally a muse.yaml file), then
// validated before the application starts.
package config
