package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err (or any wrapped AppError) carries the given code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			if appErr.Code == code {
				return true
			}
			err = appErr.Cause
			continue
		}
		return false
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeSimulationInvalid    = "SIMULATION_INVALID"
	CodeSingularDesignMatrix = "SINGULAR_DESIGN_MATRIX"
	CodeInvalidPrior         = "INVALID_PRIOR"
	CodeNonConvergence       = "SAMPLER_NON_CONVERGENCE"
	CodeInsufficientChains   = "INSUFFICIENT_CHAINS"
	CodeSamplerTimeout       = "SAMPLER_TIMEOUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// SimulationInvalid signals an invalid simulation request (e.g. non-positive row count)
func SimulationInvalid(message string) *AppError {
	return New(CodeSimulationInvalid, message)
}

// SingularDesignMatrix signals a rank-deficient or under-determined OLS design
func SingularDesignMatrix(message string) *AppError {
	return New(CodeSingularDesignMatrix, message)
}

// InvalidPrior signals inconsistent prior parameters (e.g. non-positive scale)
func InvalidPrior(message string) *AppError {
	return New(CodeInvalidPrior, message)
}

// InsufficientChains signals a diagnostic that requires at least two chains
func InsufficientChains(message string) *AppError {
	return New(CodeInsufficientChains, message)
}

// SamplerTimeout signals that MCMC sampling exceeded its deadline
func SamplerTimeout(cause error) *AppError {
	return &AppError{
		Code:    CodeSamplerTimeout,
		Message: "sampler exceeded its deadline",
		Cause:   cause,
	}
}
