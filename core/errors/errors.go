// Package errors provides standardized error types and helpers for the ctskit codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNoTitle indicates a title lookup on an entity with no titles
	ErrNoTitle = errors.New("no title found")
	// ErrParse indicates an XML source could not be parsed
	ErrParse = errors.New("parse failure")
	// ErrUnresolvablePath indicates a path expression could not be evaluated
	ErrUnresolvablePath = errors.New("unresolvable path")
	// ErrMissingAttribute indicates a required attribute or child element is absent
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// NoTitleError reports a failed title lookup or a strict-mode construction
// of an entity with zero titles.
type NoTitleError struct {
	ID  string // Identifier of the work or text, if known
	Err error  // Underlying error, if any
}

func (e *NoTitleError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("no title found for %s", e.ID)
	}
	return "no title found"
}

func (e *NoTitleError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNoTitle
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "XML", "inventory")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// PathError reports a citation path expression that could not be evaluated
// against a parsed document, e.g. due to an unbound namespace prefix.
type PathError struct {
	Expr string // The path expression that failed
	Err  error  // Underlying error, if any
}

func (e *PathError) Error() string {
	return fmt.Sprintf("unable to evaluate path expression %s", e.Expr)
}

func (e *PathError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnresolvablePath
}

// MissingAttributeError reports a required attribute or child element absent
// from otherwise well-formed inventory XML.
type MissingAttributeError struct {
	Element   string // Element the attribute/child was expected on
	Attribute string // Name of the missing attribute or child
	Err       error  // Underlying error, if any
}

func (e *MissingAttributeError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("element %s is missing required %s", e.Element, e.Attribute)
	}
	return fmt.Sprintf("missing required %s", e.Attribute)
}

func (e *MissingAttributeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMissingAttribute
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewNoTitle creates a NoTitleError
func NewNoTitle(id string) *NoTitleError {
	return &NoTitleError{ID: id}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewPath creates a PathError
func NewPath(expr string, err error) *PathError {
	return &PathError{Expr: expr, Err: err}
}

// NewMissingAttribute creates a MissingAttributeError
func NewMissingAttribute(element, attribute string) *MissingAttributeError {
	return &MissingAttributeError{
		Element:   element,
		Attribute: attribute,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
