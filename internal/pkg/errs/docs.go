// Package errs provides the error types shared by every layer of the
// dispatch service.
//
// Each type pairs a sentinel (ErrValueIsInvalid, ErrObjectNotFound,
// ErrConflict, ...) with a struct carrying the details. Unwrap returns the
// sentinel, so transport adapters map errors to responses with errors.Is
// and never inspect messages:
//
//	ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError -> validation
//	ObjectNotFoundError                                              -> not found
//	ConflictError                                                    -> conflict
//	StoreUnavailableError                                            -> transient store failure
package errs
