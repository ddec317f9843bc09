// Package logging provides structured logging for shiperd.
//
// It wraps log/slog so every component emits records with the same
// default fields and format.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("api server listening", "address", addr)
//	logger.Error("migration failed", "error", err)
//
// # Security
//
// Never log passwords, password hashes, JWT secrets or bearer tokens.
package logging
