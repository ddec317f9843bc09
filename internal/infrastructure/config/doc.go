// Package config handles loading and validating shiperd configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with SHIPERD_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The JWT secret and PostgreSQL DSN should be set via environment variables
//   - JWT secrets shorter than 32 characters are rejected
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.API.Port)
package config
