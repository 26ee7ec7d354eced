package errors

// ErrorCode identifies a class of failure. Codes are stable strings and are
// logged as the error_code field.
type ErrorCode string

// Error is a domain error: a code plus an optional cause.
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

// Factory builds domain errors.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
