// Package xerrors defines textdex's typed errors. Every type wraps an
// underlying error and implements Unwrap, so callers can use
// errors.Is/As against either the typed wrapper or the cause.
package xerrors

import "fmt"

// FileError reports a failure opening, reading or writing a file.
type FileError struct {
	Op         string
	Path       string
	Underlying error
}

func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Underlying: err}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Op, e.Path, e.Underlying)
}

func (e *FileError) Unwrap() error { return e.Underlying }

// IndexError reports a failure in the index store or mutator.
type IndexError struct {
	Op         string
	Underlying error
}

func NewIndexError(op string, err error) *IndexError {
	return &IndexError{Op: op, Underlying: err}
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s failed: %v", e.Op, e.Underlying)
}

func (e *IndexError) Unwrap() error { return e.Underlying }

// QueryError reports a failure running a search.
type QueryError struct {
	Query      string
	Underlying error
}

func NewQueryError(query string, err error) *QueryError {
	return &QueryError{Query: query, Underlying: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("search failed for %q: %v", e.Query, e.Underlying)
}

func (e *QueryError) Unwrap() error { return e.Underlying }

// ConfigError reports a malformed configuration value.
type ConfigError struct {
	Field      string
	Underlying error
}

func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Underlying: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s: %v", e.Field, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }
