package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueErrors(t *testing.T) {
	cause := errors.New("duplicated key")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "dispatch not found",
			err:      errs.NewObjectNotFoundError("dispatch", "d-1"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: d-1",
		},
		{
			name:     "directory lookup failed",
			err:      errs.NewObjectNotFoundErrorWithCause("driver", "v-7", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: driver, ID is: v-7 (cause: duplicated key)",
		},
		{
			name:     "negative price",
			err:      errs.NewValueIsInvalidError("agreedPrice"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: agreedPrice",
		},
		{
			name:     "delivery before pickup",
			err:      errs.NewValueIsInvalidErrorWithCause("delivery", errors.New("delivery is scheduled before pickup")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: delivery (cause: delivery is scheduled before pickup)",
		},
		{
			name:     "missing actor",
			err:      errs.NewValueIsRequiredError("actor"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: actor",
		},
		{
			name:     "missing owner",
			err:      errs.NewValueIsRequiredErrorWithCause("owner", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: owner (cause: duplicated key)",
		},
		{
			name:     "relay batch too large",
			err:      errs.NewValueIsOutOfRangeError("batchSize", 5000, 1, 1000),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 5000 is batchSize, min value is 1, max value is 1000",
		},
		{
			name:     "tax rate with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("tax rate", "1.5", 0, "below 1", cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 1.5 is tax rate, min value is 0, max value is below 1 (cause: duplicated key)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
			assert.Equal(t, errs.KindOf(tt.err), errs.KindOf(fmt.Errorf("handler: %w", tt.err)))
		})
	}
}

func TestValueIsOutOfRangeError_SanitizesValue(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("memo", "first line\r\nsecond line", 0, 500)

	assert.Contains(t, err.Error(), "first line second line")
	assert.NotContains(t, err.Error(), "\n")
}

func TestNewFieldError_ValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		err   error
		kind  errs.Kind
	}{
		{"required", "agreedPrice", errs.NewValueIsRequiredError("agreedPrice"), errs.KindValidation},
		{"out of range", "tonnage", errs.NewValueIsOutOfRangeError("tonnage", -1, 0, 40), errs.KindValidation},
		{"not found", "dispatchId", errs.NewObjectNotFoundError("dispatch", "d-1"), errs.KindNotFound},
		{"joined", "places", errors.Join(errs.NewValueIsRequiredError("pickup"), errs.NewValueIsRequiredError("delivery")), errs.KindValidation},
		{"infrastructure", "managerId", errors.New("connection reset"), errs.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := errs.NewFieldError(tt.field, tt.err)

			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.err.Error(), fe.Message)
			assert.Equal(t, tt.field+": "+tt.err.Error(), fe.Error())
		})
	}
}
