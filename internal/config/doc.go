// Package config defines the application configuration and its loading
// rules. Values come from an optional YAML file and from environment
// variables with the MISSIVE_ prefix, environment taking precedence.
// Loaded configuration is validated before use; a misconfigured pipeline
// must fail before any work starts.
package config
