package ecctypes

import (
	"math/big"

	"github.com/smartcontractkit/weierstrass/internal/crypto/math"
)

// Point is either the identity (point at infinity) or an affine point (x, y). Its zero value is the identity.
type Point = math.Point

// Curve is a short Weierstrass curve y² = x³ + ax + b over a prime field.
type Curve = math.Curve

// Domain is a validated triple of a curve, a base point G and the prime order n of G.
type Domain = math.Domain

// Errors returned by the curve engine and the protocols. Use errors.Is(...) to test for them.
var (
	ErrConstruction = math.ErrConstruction // invalid curve, base point or order
	ErrValidation   = math.ErrValidation   // a point presented to an operation is not on the curve
	ErrArgument     = math.ErrArgument     // non-positive multiplier or out-of-range scalar
)

// Identity returns the point at infinity.
func Identity() *Point {
	return math.Identity()
}

// NewPoint returns the affine point (x, y). Curve membership is checked by the consuming operation.
func NewPoint(x, y *big.Int) *Point {
	return math.NewPoint(x, y)
}

// NewCurve returns the curve y² = x³ + ax + b over F_p, or an error wrapping ErrConstruction if the curve is singular.
func NewCurve(p, a, b *big.Int) (*Curve, error) {
	return math.NewCurve(p, a, b)
}

// NewDomain validates that g is on the curve, that n is (probabilistically) prime and that n·g is the identity.
func NewDomain(curve *Curve, g *Point, n *big.Int) (*Domain, error) {
	return math.NewDomain(curve, g, n)
}

// DomainByName returns one of the preset domains listed by SupportedDomains().
func DomainByName(name string) (*Domain, error) {
	return math.DomainByName(name)
}

func SupportedDomains() []string {
	return math.SupportedDomains()
}

// IsProbablePrime reports whether n passes the probabilistic primality test used for domain validation.
func IsProbablePrime(n *big.Int) bool {
	return math.IsProbablePrime(n)
}
