package math

import (
	"fmt"
	"math/big"
)

// Domain bundles a curve with a base point G and its prime order n. A Domain is validated once at construction and is
// immutable afterwards; it can safely be shared between goroutines.
type Domain struct {
	name  string
	curve *Curve
	g     *Point
	n     *Modulus
}

// NewDomain validates and returns the domain (curve, g, n). Fails with ErrConstruction if
//   - g is the identity or is not on the curve,
//   - n is not (probabilistically) prime, see IsProbablePrime(...),
//   - n·g is not the identity.
func NewDomain(curve *Curve, g *Point, n *big.Int) (*Domain, error) {
	return newDomain("", curve, g, n)
}

func newDomain(name string, curve *Curve, g *Point, n *big.Int) (*Domain, error) {
	if curve == nil || g == nil || n == nil {
		return nil, fmt.Errorf("%w: curve, base point and order are required", ErrConstruction)
	}
	if g.IsIdentity() {
		return nil, fmt.Errorf("%w: base point must not be the identity", ErrConstruction)
	}
	if !curve.IsOnCurve(g) {
		return nil, fmt.Errorf("%w: base point %s is not on the curve %s", ErrConstruction, g, curve)
	}
	if !IsProbablePrime(n) {
		return nil, fmt.Errorf("%w: order %s is not prime", ErrConstruction, n)
	}
	if !curve.mustScalarMult(n, g).IsIdentity() {
		return nil, fmt.Errorf("%w: %s is not the order of the base point %s", ErrConstruction, n, g)
	}

	m, err := NewModulusFromBig(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return &Domain{name, curve, g.Clone(), m}, nil
}

// IsProbablePrime runs a probabilistic primality test on n, with a number of Miller-Rabin rounds growing with the bit
// length of n (error probability at most 2^-(0.7·bitlen), in addition to the Baillie-PSW test).
func IsProbablePrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	certainty := n.BitLen() * 7 / 10
	return n.ProbablyPrime((certainty + 1) / 2)
}

// Name returns the preset name of the domain, or a description of the curve for custom domains.
func (d *Domain) Name() string {
	if d.name == "" {
		return d.curve.String()
	}
	return d.name
}

func (d *Domain) Curve() *Curve {
	return d.curve
}

// G returns the base point.
func (d *Domain) G() *Point {
	return d.g
}

// N returns a copy of the order of the base point.
func (d *Domain) N() *big.Int {
	return d.n.Big()
}

// Modulus returns the order of the base point as Modulus, for scalar arithmetic.
func (d *Domain) Modulus() *Modulus {
	return d.n
}

// Scalar returns a new zero-valued scalar modulo the order of the base point.
func (d *Domain) Scalar() Scalar {
	return NewScalar(d.n)
}

// BaseMult returns k·G, fails with ErrArgument for k <= 0.
func (d *Domain) BaseMult(k *big.Int) (*Point, error) {
	return d.curve.ScalarMult(k, d.g)
}

// InRange reports whether 0 < k < n.
func (d *Domain) InRange(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(d.n.n) < 0
}

func (d *Domain) String() string {
	return fmt.Sprintf("%s, G = %s, n = %s", d.Name(), d.g, d.n)
}
