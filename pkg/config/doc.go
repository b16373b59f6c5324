// Package config loads and validates all application configuration from
// environment variables.
package config
