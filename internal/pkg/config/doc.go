// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file through viper, overridden by SIGVAULT_-prefixed
// environment variables, and validated with go-playground/validator before use.
package config
