// Package errors provides the structured error type used across the packr
// build pipeline, classifying failures by kind so the CLI can report which
// stage broke without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the failure class of a PackrError.
type Kind string

const (
	// Configuration loading
	KindConfigRead      Kind = "config_read"
	KindConfigParse     Kind = "config_parse"
	KindConfigDirectory Kind = "config_directory"

	// Shared build-step failures
	KindInputNotFound   Kind = "input_not_found"
	KindOutputDir       Kind = "output_dir"
	KindDestinationCopy Kind = "destination_copy"

	// Style step
	KindScssCompile Kind = "scss_compile"
	KindCssParse    Kind = "css_parse"
	KindCssWrite    Kind = "css_write"

	// Script step
	KindInvalidLintConfigPath             Kind = "invalid_lint_config_path"
	KindLintConfigOutsideAllowedDirectory Kind = "lint_config_outside_allowed_directory"
	KindLintFailed                        Kind = "lint_failed"
	KindLintSpawn                         Kind = "lint_spawn"
	KindBundle                            Kind = "bundle"
	KindBundleSpawn                       Kind = "bundle_spawn"

	KindInternal Kind = "internal"
)

// PackrError is a structured error with a kind, a human message and an
// optional underlying cause.
type PackrError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PackrError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *PackrError) Unwrap() error {
	return e.Cause
}

// New creates a new PackrError.
func New(kind Kind, message string) *PackrError {
	return &PackrError{Kind: kind, Message: message}
}

// Newf creates a new PackrError with a formatted message.
func Newf(kind Kind, format string, args ...any) *PackrError {
	return &PackrError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new PackrError that wraps an existing error.
func Wrap(err error, kind Kind, message string) *PackrError {
	return &PackrError{Kind: kind, Message: message, Cause: err}
}

// Wrapf creates a new PackrError with a formatted message wrapping err.
func Wrapf(err error, kind Kind, format string, args ...any) *PackrError {
	return &PackrError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: err}
}

// IsKind checks whether err (or anything it wraps) is a PackrError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var pe *PackrError
	if stderrors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf extracts the kind from an error, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var pe *PackrError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}
