package math

import (
	"fmt"
	"math/big"
)

// Order returns the order n of pt, the smallest n >= 1 with n·pt = O, by repeated addition of pt. The cost is linear
// in n. Only use this for small curves during parameter setup and testing, never for curves of cryptographic size.
//
// Fails with ErrValidation if pt is not on the curve, or if the identity is not reached within the Hasse bound
// p + 1 + 2√p on the number of points of the curve.
func (c *Curve) Order(pt *Point) (*big.Int, error) {
	if !c.IsOnCurve(pt) {
		return nil, fmt.Errorf("%w: cannot compute the order of %s, not on the curve", ErrValidation, pt)
	}
	if pt.IsIdentity() {
		return big.NewInt(1), nil
	}

	bound := c.hasseBound()
	n := big.NewInt(1)
	for t := pt; ; {
		t = c.Add(t, pt)
		n.Add(n, bigOne)
		if t.IsIdentity() {
			return n, nil
		}
		if n.Cmp(bound) > 0 {
			return nil, fmt.Errorf("%w: order of %s exceeds %s", ErrValidation, pt, bound)
		}
	}
}

// hasseBound returns p + 1 + 2⌈√p⌉, an upper bound on the number of points of the curve (and thus on the order of
// any point).
func (c *Curve) hasseBound() *big.Int {
	root := new(big.Int).Sqrt(c.f.p)
	root.Add(root, bigOne)
	bound := new(big.Int).Lsh(root, 1)
	bound.Add(bound, c.f.p)
	return bound.Add(bound, bigOne)
}
