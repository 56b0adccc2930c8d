// Package errors provides typed errors for devnarrate
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrGit indicates a git command failure
	ErrGit
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTool indicates a tool dispatch/execution error
	ErrTool
	// ErrApproval indicates a side effect was refused without approval
	ErrApproval
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
)

// NarrateError is the base error type for all devnarrate errors
type NarrateError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *NarrateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *NarrateError) Unwrap() error {
	return e.Cause
}

// New creates a new NarrateError
func New(errType ErrorType, message string, cause error) *NarrateError {
	return &NarrateError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *NarrateError) WithContext(key string, value interface{}) *NarrateError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var nerr *NarrateError
	if err == nil {
		return false
	}
	if errors.As(err, &nerr) {
		return nerr.Type == errType
	}
	return false
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrGit:
		return "GIT"
	case ErrValidation:
		return "VALIDATION"
	case ErrTool:
		return "TOOL"
	case ErrApproval:
		return "APPROVAL"
	case ErrTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *NarrateError {
	return New(ErrConfig, message, cause)
}

// GitError creates a git command error
func GitError(message string, cause error) *NarrateError {
	return New(ErrGit, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *NarrateError {
	return New(ErrValidation, message, cause)
}

// ToolError creates a tool execution error
func ToolError(message string, cause error) *NarrateError {
	return New(ErrTool, message, cause)
}

// ApprovalError creates an approval-refused error
func ApprovalError(message string) *NarrateError {
	return New(ErrApproval, message, nil)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *NarrateError {
	return New(ErrTimeout, message, cause)
}
