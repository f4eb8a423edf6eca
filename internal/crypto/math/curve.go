package math

import (
	"fmt"
	"math/big"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigFour  = big.NewInt(4)
	big27    = big.NewInt(27)
)

// Curve is a short Weierstrass curve y² = x³ + ax + b over the prime field F_p. A Curve is immutable after
// construction and safe for concurrent use.
//
// The group law assumes valid inputs: points passed to Add, Double, Subtract and ScalarMult must be on the curve with
// canonical coordinates. Validation happens at the protocol boundary via IsOnCurve(...).
type Curve struct {
	f    field
	a, b *big.Int
}

// NewCurve returns the curve y² = x³ + ax + b over F_p. The coefficients are reduced into [0, p). Fails with
// ErrConstruction if p <= 1 or if the curve is singular, i.e., 4a³ + 27b² ≡ 0 (mod p).
func NewCurve(p, a, b *big.Int) (*Curve, error) {
	if p == nil || a == nil || b == nil {
		return nil, fmt.Errorf("%w: curve parameters must not be nil", ErrConstruction)
	}
	if p.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: field modulus must be greater than one, got %s", ErrConstruction, p)
	}

	f := field{new(big.Int).Set(p)}
	c := &Curve{f, f.reduce(a), f.reduce(b)}
	if err := c.validateNonSingular(); err != nil {
		return nil, err
	}
	return c, nil
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on malformed decimal input or on invalid curve parameters.
func NewCurveFromStrings(p, a, b string) *Curve {
	values := make([]*big.Int, 3)
	for i, s := range []string{p, a, b} {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("invalid curve parameter: " + s)
		}
		values[i] = v
	}
	c, err := NewCurve(values[0], values[1], values[2])
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Curve) validateNonSingular() error {
	// Δ' = 4a³ + 27b² (mod p)
	a3 := c.f.mul(c.f.square(c.a), c.a)
	disc := c.f.add(c.f.mul(bigFour, a3), c.f.mul(big27, c.f.square(c.b)))
	if disc.Sign() == 0 {
		return fmt.Errorf("%w: curve is singular, 4a³ + 27b² ≡ 0 (mod %s)", ErrConstruction, c.f.p)
	}
	return nil
}

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int {
	return new(big.Int).Set(c.f.p)
}

// A returns a copy of the coefficient a, in [0, p).
func (c *Curve) A() *big.Int {
	return new(big.Int).Set(c.a)
}

// B returns a copy of the coefficient b, in [0, p).
func (c *Curve) B() *big.Int {
	return new(big.Int).Set(c.b)
}

func (c *Curve) Equal(other *Curve) bool {
	return c == other || (c.f.p.Cmp(other.f.p) == 0 && c.a.Cmp(other.a) == 0 && c.b.Cmp(other.b) == 0)
}

func (c *Curve) String() string {
	return fmt.Sprintf("y² = x³ + %sx + %s (mod %s)", c.a, c.b, c.f.p)
}

// polynomial returns x³ + ax + b (mod p).
func (c *Curve) polynomial(x *big.Int) *big.Int {
	x3 := c.f.mul(c.f.square(x), x)
	return c.f.add(c.f.add(x3, c.f.mul(c.a, x)), c.b)
}

// IsOnCurve reports whether pt is the identity or an affine point with coordinates in [0, p) satisfying
// y² ≡ x³ + ax + b (mod p).
func (c *Curve) IsOnCurve(pt *Point) bool {
	if pt == nil {
		return false
	}
	if pt.IsIdentity() {
		return true
	}
	if !c.isCanonical(pt.x) || !c.isCanonical(pt.y) {
		return false
	}
	return c.f.square(pt.y).Cmp(c.polynomial(pt.x)) == 0
}

func (c *Curve) isCanonical(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.f.p) < 0
}

// Negate returns -pt. The identity is returned unchanged, (x, y) maps to (x, -y mod p).
func (c *Curve) Negate(pt *Point) *Point {
	if pt.IsIdentity() {
		return pt
	}
	return &Point{new(big.Int).Set(pt.x), c.f.neg(pt.y), true}
}

// Add returns p + q.
func (c *Curve) Add(p, q *Point) *Point {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}

	var λ *big.Int
	switch {
	case p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0:
		// A point with y = 0 has order two, p + p is the identity.
		if p.y.Sign() == 0 {
			return Identity()
		}
		// λ = (3x² + a) / 2y
		num := c.f.add(c.f.mul(bigThree, c.f.square(p.x)), c.a)
		λ = c.f.mul(num, c.f.inv(c.f.mul(bigTwo, p.y)))
	case p.x.Cmp(q.x) == 0:
		// q = -p
		return Identity()
	default:
		// λ = (y_q - y_p) / (x_q - x_p)
		λ = c.f.mul(c.f.sub(q.y, p.y), c.f.inv(c.f.sub(q.x, p.x)))
	}

	// x_r = λ² - x_p - x_q, y_r = λ(x_p - x_r) - y_p
	xr := c.f.sub(c.f.sub(c.f.square(λ), p.x), q.x)
	yr := c.f.sub(c.f.mul(λ, c.f.sub(p.x, xr)), p.y)
	return &Point{xr, yr, true}
}

// Double returns 2·p.
func (c *Curve) Double(p *Point) *Point {
	return c.Add(p, p)
}

// Subtract returns p - q.
func (c *Curve) Subtract(p, q *Point) *Point {
	return c.Add(p, c.Negate(q))
}
