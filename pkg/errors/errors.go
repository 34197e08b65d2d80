// Package errors provides the error types used across the metrics
// pipeline. Sentinel errors support programmatic checks with errors.Is;
// typed errors carry the file or source context a caller needs to log a
// skipped input without aborting the run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the pipeline.
var (
	// ErrInputRootMissing indicates the configured input root does not
	// exist. This is the one fatal pre-flight condition.
	ErrInputRootMissing = errors.New("input root not found")

	// ErrUnsupportedFile indicates a file whose type no reader handles.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrSheetNotFound indicates a requested workbook sheet is missing.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrEmptyFile indicates a file contained no rows at all.
	ErrEmptyFile = errors.New("empty file")

	// ErrMissingColumn indicates an expected column was not present.
	// Loaders degrade to an absent column rather than failing on it.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// FileError represents a failure to read or parse a single input file.
// Folder-level concatenation logs and skips the file.
type FileError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("file %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("file %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, message string, err error) *FileError {
	return &FileError{Path: path, Message: message, Err: err}
}

// WrapFile wraps an error as a FileError.
func WrapFile(path string, err error) error {
	if err == nil {
		return nil
	}
	return &FileError{Path: path, Err: err}
}

// SourceError represents a failure scoped to one data source.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("source %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// WrapSource wraps an error as a SourceError.
func WrapSource(source string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: source, Err: err}
}

// ConfigError represents invalid or incomplete runtime configuration.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}
