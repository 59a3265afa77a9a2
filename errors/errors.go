// Package errors defines the failure taxonomy shared by every analysis entry point.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Kind is the machine-readable tag carried by every engine failure
type Kind string

const (
	KindInsufficientNotes Kind = "INSUFFICIENT_NOTES"
	KindInvalidNotes      Kind = "INVALID_NOTES"
	KindInvalidChord      Kind = "INVALID_CHORD"
	KindInvalidRoot       Kind = "INVALID_ROOT"
	KindInvalidScaleType  Kind = "INVALID_SCALE_TYPE"
	KindChordNotFound     Kind = "CHORD_NOT_FOUND"
	KindKeyNotDetected    Kind = "KEY_NOT_DETECTED"
	KindPatternNotMatched Kind = "PATTERN_NOT_MATCHED"
	KindInvalidConfig     Kind = "INVALID_CONFIG"
	KindInternal          Kind = "INTERNAL_ERROR"
)

// Sentinel errors, one per kind, for use with errors.Is
var (
	ErrInsufficientNotes = &Error{Kind: KindInsufficientNotes}
	ErrInvalidNotes      = &Error{Kind: KindInvalidNotes}
	ErrInvalidChord      = &Error{Kind: KindInvalidChord}
	ErrInvalidRoot       = &Error{Kind: KindInvalidRoot}
	ErrInvalidScaleType  = &Error{Kind: KindInvalidScaleType}
	ErrChordNotFound     = &Error{Kind: KindChordNotFound}
	ErrKeyNotDetected    = &Error{Kind: KindKeyNotDetected}
	ErrPatternNotMatched = &Error{Kind: KindPatternNotMatched}
	ErrInvalidConfig     = &Error{Kind: KindInvalidConfig}
	ErrInternal          = &Error{Kind: KindInternal}
)

// Error is a tagged engine failure with structured context (offending token, counts, ...)
type Error struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
	Cause   error          `json:"-"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("]")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	var other *Error
	if stderrors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New creates an error of the given kind
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap tags an underlying error with a kind
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// With returns a copy of the error with extra context
func (e *Error) With(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	maps.Copy(ctx, e.Context)
	ctx[key] = value

	return &Error{
		Kind:    e.Kind,
		Message: e.Message,
		Context: ctx,
		Cause:   e.Cause,
	}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal
// for errors that did not originate in the engine
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
