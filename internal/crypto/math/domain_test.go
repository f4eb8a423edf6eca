package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDomain(t *testing.T) {
	d, err := NewDomain(toyCurve, toyG, big.NewInt(43))
	require.NoError(t, err)
	require.Equal(t, int64(43), d.N().Int64())
	require.Equal(t, toyCurve.String(), d.Name())

	tests := []struct {
		name string
		g    *Point
		n    int64
	}{
		{"base point not on curve", pt(126, 108), 43},
		{"base point is identity", Identity(), 43},
		{"composite order", toyG, 86},
		{"order of a different point", toyG, 41},
		{"order one", toyG, 1},
		{"order zero", toyG, 0},
		{"negative order", toyG, -43},
		{"composite order of base point", pt(2, 2), 129},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomain(toyCurve, tt.g, big.NewInt(tt.n))
			require.ErrorIs(t, err, ErrConstruction)
		})
	}

	_, err = NewDomain(nil, toyG, big.NewInt(43))
	require.ErrorIs(t, err, ErrConstruction)
}

func TestPresetDomains(t *testing.T) {
	for _, name := range SupportedDomains() {
		t.Run(name, func(t *testing.T) {
			d, err := DomainByName(name)
			require.NoError(t, err)
			require.Equal(t, name, d.Name())
			require.True(t, d.Curve().IsOnCurve(d.G()))

			r, err := d.BaseMult(d.N())
			require.NoError(t, err)
			require.True(t, r.IsIdentity())

			// (n-1)·G = -G
			r, err = d.BaseMult(new(big.Int).Sub(d.N(), big.NewInt(1)))
			require.NoError(t, err)
			require.True(t, r.Equal(d.Curve().Negate(d.G())))
		})
	}

	_, err := DomainByName("curve25519")
	require.Error(t, err)
	require.Panics(t, func() { MustDomainByName("curve25519") })
}

func TestInRange(t *testing.T) {
	d := MustDomainByName("toy257")
	require.False(t, d.InRange(nil))
	require.False(t, d.InRange(big.NewInt(0)))
	require.True(t, d.InRange(big.NewInt(1)))
	require.True(t, d.InRange(big.NewInt(42)))
	require.False(t, d.InRange(big.NewInt(43)))
	require.False(t, d.InRange(big.NewInt(-1)))
}

func TestIsProbablePrime(t *testing.T) {
	for _, n := range []int64{2, 3, 43, 257, 7919} {
		require.True(t, IsProbablePrime(big.NewInt(n)), "%d", n)
	}
	for _, n := range []int64{-7, 0, 1, 4, 129, 561, 7917} {
		require.False(t, IsProbablePrime(big.NewInt(n)), "%d", n)
	}
}
