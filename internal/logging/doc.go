// Package logging provides structured logging for the dfplayer tools.
//
// This package wraps a package-global zap logger with convenience functions
// and a few domain helpers for frames and bridge connections.
//
// # Log Levels
//
//   - Debug: frame hex dumps, dropped frames, websocket payloads
//   - Info: port opened/closed, bridge clients, state changes
//   - Warn: out-of-range parameters that are still sent, client drops
//   - Error: serial read failures, startup failures
//
// # Silent By Default
//
// Nothing is logged unless a level is requested, either explicitly or via the
// DFPLAYER_LOG_LEVEL environment variable:
//
//	DFPLAYER_LOG_LEVEL=debug dfplayer monitor --port /dev/ttyUSB0
//
// # Configuration
//
//	err := logging.InitializeWithConfig(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    File: logging.FileConfig{
//	        Filename:  "/var/log/dfplayer/bridge.log",
//	        MaxSizeMB: 10,
//	    },
//	})
//	defer logging.Sync()
//
// Console output goes to stderr so that command output on stdout stays
// machine-readable. With a file name set, entries are also written to a
// lumberjack rotating file.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once initialized.
// Initialization itself is not; do it once at startup.
package logging
