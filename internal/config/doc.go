// Package config defines configuration for the ollie CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (OLLIE_ prefix)
//   - YAML configuration file (<user config dir>/ollie/config.yaml)
//
// # Structure
//
//	type Config struct {
//	    ServerURL      string
//	    RequestTimeout time.Duration
//	    PullTimeout    time.Duration
//	}
package config
