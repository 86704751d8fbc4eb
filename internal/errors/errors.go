package errors

import (
	"errors"
	"fmt"
)

// Exit codes for app-installer
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitValidation   = 2
	ExitEnvFile      = 3
	ExitDatastore    = 4
	ExitMigration    = 5
	ExitManifest     = 6
)

// InstallError is the base error type for app-installer
type InstallError struct {
	Code    int
	Message string
	Cause   error
}

func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InstallError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *InstallError) ExitCode() int {
	return e.Code
}

// New creates a new InstallError
func New(code int, message string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an InstallError
func Wrap(code int, message string, cause error) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ValidationError returns an error for input validation failures
func ValidationError(message string) *InstallError {
	return New(ExitValidation, message)
}

// EnvFileError returns an error for env file operations
func EnvFileError(op string, cause error) *InstallError {
	return Wrap(ExitEnvFile, fmt.Sprintf("env file %s failed", op), cause)
}

// DatastoreError returns an error for datastore reconfiguration
func DatastoreError(message string, cause error) *InstallError {
	return Wrap(ExitDatastore, message, cause)
}

// MigrationFailed returns an error for a failed migrate+seed run.
// The message is the user-facing diagnosis for the failure kind.
func MigrationFailed(message string, cause error) *InstallError {
	return Wrap(ExitMigration, message, cause)
}

// ManifestError returns an error for manifest loading or validation
func ManifestError(message string, cause error) *InstallError {
	return Wrap(ExitManifest, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var installErr *InstallError
	if errors.As(err, &installErr) {
		return installErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
