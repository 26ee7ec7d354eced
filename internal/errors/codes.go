package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Curve and configuration errors
	ErrInvalidCurve  ErrorCode = "invalid_curve"
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrReadConfig    ErrorCode = "read_config_failed"
	ErrWriteConfig   ErrorCode = "write_config_failed"

	// Profile selection errors
	ErrProfileNotFound  ErrorCode = "profile_not_found"
	ErrInvalidSelector  ErrorCode = "invalid_selector"
	ErrDuplicateProfile ErrorCode = "duplicate_profile"

	// Hardware errors
	ErrHardware ErrorCode = "hardware_error"

	// Daemon lifecycle errors
	ErrStartupFailed  ErrorCode = "startup_failed"
	ErrReloadFailed   ErrorCode = "reload_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Process errors
	ErrAlreadyRunning ErrorCode = "already_running"
	ErrNotRunning     ErrorCode = "not_running"
	ErrNotRoot        ErrorCode = "not_root"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrInvalidCurve:     "Invalid fan curve",
	ErrInvalidConfig:    "Invalid configuration",
	ErrReadConfig:       "Failed to read configuration",
	ErrWriteConfig:      "Failed to write configuration",
	ErrProfileNotFound:  "Profile not found",
	ErrInvalidSelector:  "Invalid profile selector",
	ErrDuplicateProfile: "Duplicate profile",
	ErrHardware:         "Hardware operation failed",
	ErrStartupFailed:    "Failed to start fan control",
	ErrReloadFailed:     "Failed to reload configuration",
	ErrShutdownFailed:   "Shutdown failed",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrNotRunning:       "No running instance found",
	ErrNotRoot:          "This command must be run as root",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
