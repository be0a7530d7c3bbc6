// Package loader reads configuration sources: TOML files, .env files and
// prefixed environment variables.
package loader
