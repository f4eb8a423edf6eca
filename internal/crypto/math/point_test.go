package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointAccessors(t *testing.T) {
	p := pt(126, 107)
	x := p.X()
	x.SetInt64(1)
	require.Equal(t, int64(126), p.X().Int64(), "X returns a copy")

	require.Nil(t, Identity().X())
	require.Nil(t, Identity().Y())
	require.True(t, (&Point{}).IsIdentity())

	require.Equal(t, "O", Identity().String())
	require.Equal(t, "(126, 107)", p.String())
	require.True(t, p.Clone().Equal(p))
	require.False(t, p.Equal(Identity()))
	require.Panics(t, func() { NewPointFromStrings("1", "y") })
}

func TestPointMarshalRoundTrip(t *testing.T) {
	d := MustDomainByName("P-256")
	for _, p := range []*Point{Identity(), pt(0, 0), toyG, d.G()} {
		data, err := p.MarshalBinary()
		require.NoError(t, err)

		decoded := &Point{}
		require.NoError(t, decoded.UnmarshalBinary(data))
		require.True(t, p.Equal(decoded), "%v", p)
	}
}

func TestPointUnmarshalRejectsMalformed(t *testing.T) {
	data, err := toyG.MarshalBinary()
	require.NoError(t, err)

	require.Error(t, (&Point{}).UnmarshalBinary(data[:len(data)-1]))
	require.Error(t, (&Point{}).UnmarshalBinary(append(data, 0)))
	require.Error(t, (&Point{}).UnmarshalBinary([]byte{2}))

	// affine flag with nil coordinates
	require.Error(t, (&Point{}).UnmarshalBinary([]byte{1, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))

	_, err = NewPoint(big.NewInt(-1), big.NewInt(1)).MarshalBinary()
	require.Error(t, err)
}
