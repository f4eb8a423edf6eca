package testhelpers

import (
	"io"
	"math/big"
	"testing"

	"github.com/smartcontractkit/weierstrass/internal/crypto/math"
	"github.com/stretchr/testify/require"
)

// Domain returns the validated preset domain with the given name.
func Domain(t *testing.T, name string) *math.Domain {
	d, err := math.DomainByName(name)
	require.NoError(t, err)
	return d
}

// ToyCurve returns y² = x³ - 4 over F_257. The curve has 258 = 2·3·43 points, the preset "toy257" uses the base point
// (126, 107) of order 43.
func ToyCurve(t *testing.T) *math.Curve {
	c, err := math.NewCurve(big.NewInt(257), big.NewInt(0), big.NewInt(-4))
	require.NoError(t, err)
	return c
}

// Point returns the affine point (x, y) for small coordinates.
func Point(x, y int64) *math.Point {
	return math.NewPoint(big.NewInt(x), big.NewInt(y))
}

// RandomScalars draws n scalars uniformly from {1, ..., d.N()-1}.
func RandomScalars(t *testing.T, d *math.Domain, n int, rand io.Reader) []*big.Int {
	scalars := make([]*big.Int, n)
	for i := range scalars {
		s, err := d.Scalar().SetRandomNonZero(rand)
		require.NoError(t, err)
		scalars[i] = s.Big()
	}
	return scalars
}
