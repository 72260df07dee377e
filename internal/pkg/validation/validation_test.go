package validation_test

import (
	"testing"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Method string    `json:"paymentMethod" validate:"required,oneof=transfer card cash"`
	Memo   string    `json:"memo" validate:"max=5"`
	Start  time.Time `json:"periodStart" validate:"required"`
	End    time.Time `json:"periodEnd" validate:"required,gtefield=Start"`
}

func TestStruct(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validation.Struct(form{Method: "transfer", Start: now, End: now}))
	})

	t.Run("reports every failing field by json name", func(t *testing.T) {
		err := validation.Struct(form{Method: "barter", Memo: "too long memo", Start: now, End: now.AddDate(0, 0, -1)})

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 3)
		assert.Equal(t, "paymentMethod", verr.Fields[0].Field)
		assert.Equal(t, "must be one of [transfer card cash]", verr.Fields[0].Message)
		assert.Equal(t, "memo", verr.Fields[1].Field)
		assert.Equal(t, "periodEnd", verr.Fields[2].Field)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}
