// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per error kind the core reports:
//   - ObjectNotFoundError: an unknown courier, order or batch identifier
//   - ConflictError: an order that is no longer available, or not held by the caller
//   - InvalidTransitionError: a lifecycle step that is not allowed (e.g. completion before assignment)
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: malformed caller input
//     such as interval strings, unknown vehicle classes or out-of-range weights
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
package errs
