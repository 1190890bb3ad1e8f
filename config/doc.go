// Package config provides configuration loading and validation for smallserver.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SMALLSERVER_ prefix)
//  4. CLI flags
//
// Without an explicit file, ./smallserver.yaml is read if present.
//
// # Usage
//
//	cfg, err := config.Load([]string{"smallserver.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with SMALLSERVER_ prefix:
//   - root → SMALLSERVER_ROOT
//   - server.port → SMALLSERVER_SERVER_PORT
//   - cache.max_age → SMALLSERVER_CACHE_MAX_AGE
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Index must be a bare file name
//   - Timeouts and max age must not be negative
//   - Log level must be debug, info, warn, or error
package config
