package cmd_test

import (
	"testing"

	"freight/cmd"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "freight")
	t.Setenv("DB_NAME", "freight")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.1").Equal(cfg.TaxRate))
	assert.Equal(t, 100, cfg.OutboxRelayBatchSize)
}

func TestLoadConfig_TaxRate(t *testing.T) {
	tests := []struct {
		rate string
		ok   bool
	}{
		{"0", true},
		{"0.99", true},
		{"1", false},
		{"-0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("TAX_RATE", tt.rate)

			_, err := cmd.LoadConfig()

			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}
