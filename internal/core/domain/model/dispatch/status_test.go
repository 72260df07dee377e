package dispatch_test

import (
	"testing"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ShipmentFlow(t *testing.T) {
	tests := []struct {
		status dispatch.Status
		flow   shipment.FlowStatus
		mapped bool
	}{
		{dispatch.Assigned, shipment.Dispatched, true},
		{dispatch.Loading, shipment.AwaitingLoad, true},
		{dispatch.Loaded, shipment.Loaded, true},
		{dispatch.InTransit, shipment.InTransit, true},
		{dispatch.Unloaded, shipment.Unloaded, true},
		{dispatch.Completed, shipment.Completed, true},
		{dispatch.Settled, shipment.FlowUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			flow, ok := tt.status.ShipmentFlow()
			assert.Equal(t, tt.mapped, ok)
			assert.Equal(t, tt.flow, flow)
		})
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	next, err := dispatch.Assigned.TransitionTo(dispatch.InTransit)
	require.NoError(t, err)
	assert.Equal(t, dispatch.InTransit, next)

	_, err = dispatch.Unloaded.TransitionTo(dispatch.Loading)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = dispatch.Assigned.TransitionTo(dispatch.Status(42))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo_SettledRequiresCompletion(t *testing.T) {
	tests := []struct {
		from dispatch.Status
		ok   bool
	}{
		{dispatch.Assigned, false},
		{dispatch.Loading, false},
		{dispatch.InTransit, false},
		{dispatch.Unloaded, false},
		{dispatch.Completed, true},
		{dispatch.Settled, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			next, err := tt.from.TransitionTo(dispatch.Settled)
			if !tt.ok {
				require.ErrorIs(t, err, errs.ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dispatch.Settled, next)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := dispatch.ParseStatus("settled")
	require.NoError(t, err)
	assert.Equal(t, dispatch.Settled, s)

	_, err = dispatch.ParseStatus("paid")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
