package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for callers that surface failures per operation or per field.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidReference
	KindInvalidState
	KindConflictingItem
	KindConflictingDispatch
	KindEmptySelection
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidReference:
		return "InvalidReference"
	case KindInvalidState:
		return "InvalidState"
	case KindConflictingItem:
		return "ConflictingItem"
	case KindConflictingDispatch:
		return "ConflictingDispatch"
	case KindEmptySelection:
		return "EmptySelection"
	case KindValidation:
		return "ValidationError"
	case KindUnknown:
		return "Unknown"
	}
	return "Unknown"
}

var (
	ErrNotFound            = ErrObjectNotFound
	ErrInvalidReference    = errors.New("invalid reference")
	ErrInvalidState        = errors.New("invalid state")
	ErrConflictingItem     = errors.New("conflicting item")
	ErrConflictingDispatch = errors.New("conflicting dispatch")
	ErrEmptySelection      = errors.New("empty selection")
	ErrValidation          = errors.New("validation failed")
)

// KindOf maps any error produced by this module to its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidReference):
		return KindInvalidReference
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConflictingItem):
		return KindConflictingItem
	case errors.Is(err, ErrConflictingDispatch):
		return KindConflictingDispatch
	case errors.Is(err, ErrEmptySelection):
		return KindEmptySelection
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}
	return KindUnknown
}

// InvalidReferenceError reports a supplied foreign id that does not resolve.
type InvalidReferenceError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewInvalidReferenceError(paramName string, id any) *InvalidReferenceError {
	return &InvalidReferenceError{ParamName: paramName, ID: id}
}

func NewInvalidReferenceErrorWithCause(paramName string, id any, cause error) *InvalidReferenceError {
	return &InvalidReferenceError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *InvalidReferenceError) Error() string {
	msg := fmt.Sprintf("%s: %s %v does not resolve", ErrInvalidReference, e.ParamName, e.ID)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// InvalidStateError reports an operation that is not legal in the entity's current state.
type InvalidStateError struct {
	ParamName string
	Reason    string
}

func NewInvalidStateError(paramName, reason string) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s, %s", ErrInvalidState, e.ParamName, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError is a uniqueness violation. Sentinel is either ErrConflictingItem or ErrConflictingDispatch.
type ConflictError struct {
	ParamName string
	ID        any
	Sentinel  error
	Cause     error
}

func NewConflictingItemError(itemID any) *ConflictError {
	return &ConflictError{ParamName: "item", ID: itemID, Sentinel: ErrConflictingItem}
}

func NewConflictingItemErrorWithCause(itemID any, cause error) *ConflictError {
	return &ConflictError{ParamName: "item", ID: itemID, Sentinel: ErrConflictingItem, Cause: cause}
}

func NewConflictingDispatchError(shipmentID any) *ConflictError {
	return &ConflictError{ParamName: "shipment", ID: shipmentID, Sentinel: ErrConflictingDispatch}
}

func NewConflictingDispatchErrorWithCause(shipmentID any, cause error) *ConflictError {
	return &ConflictError{ParamName: "shipment", ID: shipmentID, Sentinel: ErrConflictingDispatch, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v is already bound", e.Sentinel, e.ParamName, e.ID)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return e.Sentinel
}

type EmptySelectionError struct {
	ParamName string
}

func NewEmptySelectionError(paramName string) *EmptySelectionError {
	return &EmptySelectionError{ParamName: paramName}
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptySelection, e.ParamName)
}

func (e *EmptySelectionError) Unwrap() error {
	return ErrEmptySelection
}

// FieldError is the per-field failure record: kind, field name and a readable message.
type FieldError struct {
	Kind    Kind
	Field   string
	Message string
}

// NewFieldError classifies err and attaches it to field.
func NewFieldError(field string, err error) FieldError {
	return FieldError{
		Kind:    KindOf(err),
		Field:   field,
		Message: err.Error(),
	}
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError carries one FieldError per rejected field.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
