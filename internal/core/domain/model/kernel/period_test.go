package kernel_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPeriod(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		p, err := kernel.NewPeriod(day(3), day(3))

		require.NoError(t, err)
		assert.Equal(t, day(3), p.Start())
		assert.Equal(t, day(3), p.End())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := kernel.NewPeriod(day(5), day(4))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "end 2026-03-04 is before start 2026-03-05")
	})

	t.Run("missing bounds", func(t *testing.T) {
		_, err := kernel.NewPeriod(time.Time{}, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "period start")
		assert.Contains(t, err.Error(), "period end")
	})
}

func TestPeriodCovering(t *testing.T) {
	p, err := kernel.PeriodCovering(day(12), day(2), day(20), day(7))

	require.NoError(t, err)
	assert.Equal(t, day(2), p.Start())
	assert.Equal(t, day(20), p.End())

	_, err = kernel.PeriodCovering()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
