package generator

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a setting that must be present before any
// completion request is attempted, such as the provider API key.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// ProviderError reports a failed completion call: transport failure, non-2xx
// status, empty content, or content that is not JSON.
type ProviderError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := "provider error: " + e.Reason
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ValidationError reports JSON content that does not match the menu shape.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid menu response: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid menu response at %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

const (
	KindConfiguration = "configuration"
	KindProvider      = "provider"
	KindValidation    = "validation"
)

// ErrorKind classifies err into one of the Kind constants, or "" when err is
// not part of the generation taxonomy.
func ErrorKind(err error) string {
	var cfgErr *ConfigurationError
	var provErr *ProviderError
	var valErr *ValidationError

	switch {
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &provErr):
		return KindProvider
	default:
		return ""
	}
}
