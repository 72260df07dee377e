package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"nil", nil, errs.KindUnknown},
		{"plain", errors.New("boom"), errs.KindUnknown},
		{"not found", errs.NewObjectNotFoundError("dispatch", "1"), errs.KindNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("bundle", "1")), errs.KindNotFound},
		{"invalid reference", errs.NewInvalidReferenceError("driver", "d1"), errs.KindInvalidReference},
		{"invalid state", errs.NewInvalidStateError("bundle", "not in matching"), errs.KindInvalidState},
		{"conflicting item", errs.NewConflictingItemError("i1"), errs.KindConflictingItem},
		{"conflicting dispatch", errs.NewConflictingDispatchError("s1"), errs.KindConflictingDispatch},
		{"empty selection", errs.NewEmptySelectionError("itemIds"), errs.KindEmptySelection},
		{"required", errs.NewValueIsRequiredError("memo"), errs.KindValidation},
		{"invalid value", errs.NewValueIsInvalidError("price"), errs.KindValidation},
		{"validation", errs.NewValidationError(errs.FieldError{Field: "a"}), errs.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}

func TestConflictError(t *testing.T) {
	cause := errors.New("duplicated key")
	err := errs.NewConflictingItemErrorWithCause("i1", cause)

	require.ErrorIs(t, err, errs.ErrConflictingItem)
	require.NotErrorIs(t, err, errs.ErrConflictingDispatch)
	assert.Equal(t, "conflicting item: item i1 is already bound (cause: duplicated key)", err.Error())

	dispatchErr := errs.NewConflictingDispatchError("s1")
	require.ErrorIs(t, dispatchErr, errs.ErrConflictingDispatch)
	assert.Equal(t, "conflicting dispatch: shipment s1 is already bound", dispatchErr.Error())
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("bundle", "completed bundles cannot change")

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, "invalid state: bundle, completed bundles cannot change", err.Error())
}

func TestNewFieldError(t *testing.T) {
	fe := errs.NewFieldError("driverId", errs.NewInvalidReferenceError("driver", "d1"))

	assert.Equal(t, errs.KindInvalidReference, fe.Kind)
	assert.Equal(t, "driverId", fe.Field)
	assert.Equal(t, "invalid reference: driver d1 does not resolve", fe.Message)
	assert.Equal(t, "InvalidReference", fe.Kind.String())
}

func TestValidationError(t *testing.T) {
	err := errs.NewValidationError(
		errs.FieldError{Kind: errs.KindValidation, Field: "dueDate", Message: "is required"},
		errs.FieldError{Kind: errs.KindValidation, Field: "memo", Message: "too long"},
	)

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "validation failed: dueDate: is required; memo: too long", err.Error())
}
