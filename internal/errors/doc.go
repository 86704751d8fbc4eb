// Package errors provides typed errors with exit codes for app-installer.
//
// # Error Types
//
// InstallError is the base error type that wraps an error with an exit code:
//
//	type InstallError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Each abort cause of an installation run has its own exit code:
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/unknown errors
//	ExitValidation   = 2  // Required option missing or invalid
//	ExitEnvFile      = 3  // .env could not be copied, read or written
//	ExitDatastore    = 4  // Connection profile could not be applied
//	ExitMigration    = 5  // migrate + seed failed
//	ExitManifest     = 6  // installer manifest invalid
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
