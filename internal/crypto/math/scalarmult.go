package math

import (
	"fmt"
	"math/big"
)

// ScalarMult returns k·pt for k >= 1, fails with ErrArgument otherwise.
//
// The result is defined by the recursion
//
//	1·P = P
//	k·P = 2·((k/2)·P)     for even k
//	k·P = (k-1)·P + P     for odd k > 1
//
// which is evaluated iteratively: walking the bits of k from the most significant one, every further bit contributes
// a doubling of the accumulator, followed by an addition of P if the bit is set. This replays the exact sequence of
// group operations of the recursion without its call depth. The implementation is not constant-time.
func (c *Curve) ScalarMult(k *big.Int, pt *Point) (*Point, error) {
	if k == nil || k.Sign() <= 0 {
		return nil, fmt.Errorf("%w: scalar multiplication requires a positive multiplier, got %v", ErrArgument, k)
	}

	acc := pt
	for i := k.BitLen() - 2; i >= 0; i-- {
		acc = c.Add(acc, acc)
		if k.Bit(i) == 1 {
			acc = c.Add(acc, pt)
		}
	}
	return acc, nil
}

// mustScalarMult is ScalarMult for multipliers already known to be positive.
func (c *Curve) mustScalarMult(k *big.Int, pt *Point) *Point {
	r, err := c.ScalarMult(k, pt)
	if err != nil {
		panic(err)
	}
	return r
}
