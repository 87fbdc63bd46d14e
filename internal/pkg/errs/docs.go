// Package errs provides standardized error types for the chipdrop application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure classes the delivery
// lifecycle distinguishes:
//   - ValueIsRequiredError: a required value is missing (validation failure)
//   - ValueIsInvalidError: a value is present but invalid (validation failure)
//   - ObjectNotFoundError: an object cannot be resolved by its identifier
//   - ObjectAlreadyExistsError: a uniqueness constraint was violated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for error-chain support
//
// Persistence failures are deliberately not wrapped into a package type: they
// roll back their transaction and propagate unmodified so the boundary can
// surface the original driver error. Notification failures never leave the
// dispatcher and therefore have no type here either.
package errs
