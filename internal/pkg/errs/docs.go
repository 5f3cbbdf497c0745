// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the codebase.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The dispatch router leans on this taxonomy to decide how a failure is
// surfaced: ObjectNotFoundError becomes a transient toast, ValueIsInvalidError
// a user-visible warning, and anything else an admin-reported internal error.
package errs
