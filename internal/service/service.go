// Package service holds the author and post operations: validated
// construction and mutation, serialized name claims and persistence.
package service

import (
	"errors"

	"inkwell/internal/observability"
	"inkwell/internal/validation"
)

// recordRejections counts every field rejection carried by err, including
// each member of a joined error.
func recordRejections(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			recordRejections(e)
		}
		return
	}
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		observability.RecordRejection(fe.Entity, fe.Field, validation.KindName(fe))
	}
}

// endSpan marks the span failed for non-validation errors and ends it.
// Rejected input is an expected outcome, not a span error.
func endSpan(span *observability.Span, err error) {
	if err != nil && !validation.IsValidationError(err) {
		span.SetError(err)
	}
	span.End()
}
