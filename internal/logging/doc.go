// Package logging provides logging utilities for app-installer.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted progress messages for the person running the install
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("merging env", "path", path, "keys", len(pairs))
//	logging.Warn("failed to close pool", "connection", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Running migrations and seeders...")
//	logging.UserSuccess("Env file created successfully.")
//	logging.UserWarning("composer exited with an error")
//	logging.UserError("Your database credentials are wrong!")
//	logging.UserAlert("Application is installing...")
//
// Output destinations default to stdout (info, success, alert) and stderr
// (warning, error) and can be redirected with SetUserOutput.
//
// # Spinners
//
// Spin wraps a blocking step with a terminal spinner when stdout is a TTY.
package logging
