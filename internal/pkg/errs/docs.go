// Package errs provides the error vocabulary of the freight back office.
//
// Two layers live here:
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised by constructors and repositories.
//   - Operation kinds (NotFound, InvalidReference, InvalidState, ConflictingItem,
//     ConflictingDispatch, EmptySelection, ValidationError) that every command reports.
//
// Each error type has a sentinel, a struct with exported detail fields, constructors
// with and without cause, and Unwrap returning the sentinel, so errors.Is works
// through any amount of fmt.Errorf wrapping. KindOf classifies an error and
// FieldError pairs a kind with the field that produced it.
package errs
