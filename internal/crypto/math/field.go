package math

import "math/big"

// Arithmetic in the prime field F_p over which a curve is defined. All results are normalized into [0, p), whatever
// the sign of the intermediate values. No primality check is performed on p.
type field struct {
	p *big.Int
}

func (f field) normalize(z *big.Int) *big.Int {
	z.Mod(z, f.p)
	if z.Sign() < 0 {
		z.Add(z, f.p)
	}
	return z
}

func (f field) reduce(x *big.Int) *big.Int {
	return f.normalize(new(big.Int).Set(x))
}

func (f field) add(x, y *big.Int) *big.Int {
	return f.normalize(new(big.Int).Add(x, y))
}

func (f field) sub(x, y *big.Int) *big.Int {
	return f.normalize(new(big.Int).Sub(x, y))
}

func (f field) mul(x, y *big.Int) *big.Int {
	return f.normalize(new(big.Int).Mul(x, y))
}

func (f field) square(x *big.Int) *big.Int {
	return f.mul(x, x)
}

func (f field) neg(x *big.Int) *big.Int {
	return f.normalize(new(big.Int).Neg(x))
}

// inv returns x⁻¹ mod p. A non-invertible x cannot occur for a prime field and valid inputs to the group law, it
// indicates a broken internal invariant and panics.
func (f field) inv(x *big.Int) *big.Int {
	r := new(big.Int).ModInverse(f.normalize(new(big.Int).Set(x)), f.p)
	if r == nil {
		panic("field element " + x.String() + " is not invertible modulo " + f.p.String())
	}
	return r
}
