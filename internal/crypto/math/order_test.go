package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		p     *Point
		order int64
	}{
		{toyG, 43},
		{pt(2, 2), 129},
		{pt(64, 0), 2},
		{Identity(), 1},
	}
	for _, tt := range tests {
		order, err := toyCurve.Order(tt.p)
		require.NoError(t, err)
		require.Equal(t, tt.order, order.Int64(), "order of %v", tt.p)
	}
}

func TestOrderRejectsInvalidPoint(t *testing.T) {
	_, err := toyCurve.Order(pt(1, 1))
	require.ErrorIs(t, err, ErrValidation)

	_, err = toyCurve.Order(nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestHasseBound(t *testing.T) {
	// 257 + 1 + 2·(16 + 1)
	require.Equal(t, int64(292), toyCurve.hasseBound().Int64())

	for _, p := range allPoints(toyCurve) {
		order, err := toyCurve.Order(p)
		require.NoError(t, err)
		require.Zero(t, int64(258)%order.Int64(), "order of %v divides the group size", p)
	}
}
