// Package logging provides structured logging for the pipelink binaries.
//
// This package wraps zap with convenience functions for the logging patterns
// used across the node and gateway: general leveled logging plus helpers for
// dumping raw radio frames and decode rejects.
//
// # Log Levels
//
//   - Debug: raw frame hex dumps, modem chatter, scan results
//   - Info: normal operations (transmissions, accepted records, startup)
//   - Warn: rejected frames, detected packet loss, transient link issues
//   - Error: startup failures, radio or serial port errors
//
// # Configuration
//
// Initialize logging at startup, either from a flag or from the
// PIPELINK_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is configured anywhere, logging is silent.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
