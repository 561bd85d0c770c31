// Package errors provides the error types raised while reading attribute sets
// and deriving MWL matching keys
package errors

import (
	"errors"
	"fmt"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// Common errors
var (
	ErrUnknownMatchingKey = errors.New("mwl: unknown matching key")
	ErrUnknownSPSStatus   = errors.New("mwl: unknown SPS status")
	ErrMalformedPatientID = errors.New("mwl: malformed patient identifier")
	ErrMalformedElement   = errors.New("dicom: malformed element value")
	ErrInvalidJSON        = errors.New("dicom: invalid JSON dataset")
)

// ExtractionError reports an attribute that is present but cannot be read as
// the caller expects it.
type ExtractionError struct {
	Tag tag.Tag
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Tag, e.Msg, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Tag, e.Msg)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new extraction error
func NewExtractionError(t tag.Tag, err error, msg string) *ExtractionError {
	return &ExtractionError{
		Tag: t,
		Msg: msg,
		Err: err,
	}
}

// ParseError represents a configuration or textual value that cannot be
// mapped onto one of the known enumerations
type ParseError struct {
	Kind  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new parse error
func NewParseError(kind, value string, err error) *ParseError {
	return &ParseError{
		Kind:  kind,
		Value: value,
		Err:   err,
	}
}

// ConfigError represents a configuration setting that failed validation
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		Key: key,
		Err: err,
	}
}
