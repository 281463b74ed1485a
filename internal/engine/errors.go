// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrDriverInit   = errors.New("browser driver failed to start")
	ErrPageTimeout  = errors.New("page load timeout")
	ErrNavigation   = errors.New("navigation failed")
	ErrStaleElement = errors.New("element is no longer attached to the page")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeDriverInit  ErrorCode = "DRIVER_INIT"
	ErrCodePageTimeout ErrorCode = "PAGE_TIMEOUT"
	ErrCodeNavigation  ErrorCode = "NAVIGATION"
	ErrCodeExtract     ErrorCode = "EXTRACT"
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another EngineError by code, or the sentinel bound to the code
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	if s := sentinelFor(e.Code); s != nil && target == s {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// IsFatal reports whether err must abort the whole crawl
func IsFatal(err error) bool {
	return errors.Is(err, ErrDriverInit)
}

func sentinelFor(code ErrorCode) error {
	switch code {
	case ErrCodeDriverInit:
		return ErrDriverInit
	case ErrCodePageTimeout:
		return ErrPageTimeout
	case ErrCodeNavigation:
		return ErrNavigation
	case ErrCodeExtract:
		return ErrStaleElement
	}
	return nil
}
