package model

import (
	"fmt"
	"time"
)

// ConfigurationError reports an invalid ranking-weight configuration. It is
// surfaced to the caller before any scoring attempt and is never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// DictionaryLoadError reports a failure to load the pattern dictionaries.
// Callers degrade to an empty known-pattern set instead of aborting.
type DictionaryLoadError struct {
	Path string
	Err  error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("loading pattern dictionaries from %s: %v", e.Path, e.Err)
}

func (e *DictionaryLoadError) Unwrap() error {
	return e.Err
}

// HTTPError wraps an HTTP status code so callers can classify lookup
// failures (definitive vs. ambiguous).
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
