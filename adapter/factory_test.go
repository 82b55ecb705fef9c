package adapter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.Config
		wantErr        error
		wantIdempotent bool
	}{
		{name: "mock", cfg: config.Config{Mode: config.ModeMock}},
		{name: "empty mode is mock", cfg: config.Config{}},
		{name: "mock with idempotency", cfg: config.Config{Mode: config.ModeMock, IdempotentOrders: true}, wantIdempotent: true},
		{name: "xtquant is unavailable", cfg: config.Config{Mode: config.ModeXtQuant}, wantErr: ErrAdapterUnavailable},
		{name: "unknown mode", cfg: config.Config{Mode: "binance"}, wantErr: ErrUnknownMode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := New(tc.cfg, zap.NewNop())
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MockName, a.Name())

			_, isIdempotent := a.(*Idempotent)
			assert.Equal(t, tc.wantIdempotent, isIdempotent)
		})
	}
}

func TestNewAcceptsNilLogger(t *testing.T) {
	a, err := New(config.Config{Mode: config.ModeMock}, nil)
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestModes(t *testing.T) {
	assert.Equal(t, []string{config.ModeMock, config.ModeXtQuant}, Modes())
}
