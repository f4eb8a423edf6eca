// Scalar arithmetic modulo the order of a base point, based on the bigmod package from Go's internal stdlib, exported
// via filippo.io/bigmod.

package math

import (
	"fmt"
	"io"
	"math/big"

	"filippo.io/bigmod"
	"github.com/smartcontractkit/weierstrass/internal/codec"
)

// Scalar represents an integer modulo the order n of a base point.
// Scalars of different moduli are not compatible, and cannot be used together in arithmetic operations.
// Executing any arithmetic operation on scalars with different moduli will result in a panic.

type Scalar = *scalar

type Nat = *bigmod.Nat

var _ codec.Codec[*scalar] = &scalar{}

type scalar struct {
	value   Nat
	modulus *Modulus
}

// NewScalar creates a new scalar with the given modulus.
// The value is initialized to zero.
func NewScalar(m *Modulus) Scalar {
	return &scalar{bigmod.NewNat().ExpandFor(&m.value), m}
}

// NewScalarFromBig creates a new scalar with the given modulus, holding v mod m. Negative values are reduced into the
// canonical range [0, m).
func NewScalarFromBig(v *big.Int, m *Modulus) Scalar {
	return NewScalar(m).SetBig(v)
}

func (s *scalar) IsNil() bool {
	return s == nil
}

// x.Set(y) sets x = y, and returns the scalar x.
// This creates a copy of the value of y, so that x and y can be modified independently.
// This functions panics if x and y have different moduli.
func (x *scalar) Set(y Scalar) Scalar {
	requireEqualModulus(x, y)
	copy(x.value.Bits(), y.value.Bits())
	return x
}

// x.SetBig(v) sets x = v mod modulus, and returns x.
func (x *scalar) SetBig(v *big.Int) Scalar {
	r := new(big.Int).Mod(v, x.modulus.n)
	if r.Sign() < 0 {
		r.Add(r, x.modulus.n)
	}
	if r.Sign() == 0 {
		x.value.SetUint(0).ExpandFor(&x.modulus.value)
		return x
	}
	if _, err := x.value.SetBytes(r.Bytes(), &x.modulus.value); err != nil {
		// A value reduced modulo n always fits.
		panic("reduced scalar does not fit its modulus: " + err.Error())
	}
	return x
}

// x.SetBytes(y) sets x to the scalar represented by the byte slice y, and returns x.
// If y does not represent a valid scalar (of the expected length, and smaller than x.modulus), SetBytes returns an
// error and the receiver is unchanged. Otherwise, SetBytes returns x.
func (x *scalar) SetBytes(y []byte) (Scalar, error) {
	_, err := x.value.SetBytes(y, &x.modulus.value)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// x.SetRandomNonZero(rand) sets x to a uniformly random scalar from {1, 2, ..., modulus - 1} and returns x.
// Candidates are drawn with the bit length of the modulus and rejected until they fall into the range, so the number
// of bytes read from rand is not constant. Errors of the provided io.Reader are returned as is.
func (s *scalar) SetRandomNonZero(rand io.Reader) (Scalar, error) {
	bitLen := s.modulus.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	excess := uint(len(buf)*8 - bitLen)

	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= byte(0xff >> excess)

		candidate := new(big.Int).SetBytes(buf)
		if candidate.Sign() == 0 || candidate.Cmp(s.modulus.n) >= 0 {
			continue
		}
		if _, err := s.value.SetBytes(buf, &s.modulus.value); err != nil {
			return nil, fmt.Errorf("failed to set random scalar: %w", err)
		}
		return s, nil
	}
}

// x.Add(y) computes x = x + y (mod modulus), and returns x.
// This functions panics if x and y have different moduli.
func (x *scalar) Add(y Scalar) Scalar {
	requireEqualModulus(x, y)
	x.value.Add(y.value, &x.modulus.value)
	return x
}

// x.Subtract(y) computes x = x - y (mod modulus), and returns x.
// This functions panics if x and y have different moduli.
func (x *scalar) Subtract(y Scalar) Scalar {
	requireEqualModulus(x, y)
	x.value.Sub(y.value, &x.modulus.value)
	return x
}

// x.Multiply(y) computes x = x * y (mod modulus), and returns x.
// This functions panics if x and y have different moduli.
func (x *scalar) Multiply(y Scalar) Scalar {
	requireEqualModulus(x, y)
	x.value.Mul(y.value, &x.modulus.value)
	return x
}

// x.InverseVarTime() computes the modular inverse of x = x^-1 and returns (x, true) if the inverse exists, or
// (nil, false) otherwise.
func (x *scalar) InverseVarTime() (Scalar, bool) {
	if _, ok := x.value.InverseVarTime(x.value, &x.modulus.value); !ok {
		return nil, false
	}
	return x, true
}

// x.IsZero() returns true if x is zero, and false otherwise.
func (x *scalar) IsZero() bool {
	return x.value.IsZero() == 1
}

// x.IsOne() returns true if x is one, and false otherwise.
func (x *scalar) IsOne() bool {
	return x.value.IsOne() == 1
}

// Returns an independent copy of the scalar.
func (x *scalar) Clone() Scalar {
	return NewScalar(x.modulus).Set(x)
}

// Returns the internal reference to the modulus underlying the scalar.
// Must not be modified by the caller. Useful for the initialization of new scalars.
func (x *scalar) Modulus() *Modulus {
	return x.modulus
}

// x.Bytes() returns the canonical encoding of x, big-endian and padded to the size of the modulus.
func (x *scalar) Bytes() []byte {
	return x.value.Bytes(&x.modulus.value)
}

// x.Big() returns the value of x as a new big.Int.
func (x *scalar) Big() *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

// MarshalTo writes the canonical encoding of x to the provided codec.Target.
func (x *scalar) MarshalTo(target codec.Target) {
	target.WriteBytes(x.value.Bytes(&x.modulus.value))
}

// UnmarshalFrom reads the canonical encoding of a scalar from the provided codec.Source, sets it to x, and returns x.
// The scalar x must have non-nil modulus, otherwise UnmarshalFrom panics.
func (x *scalar) UnmarshalFrom(source codec.Source) Scalar {
	b := source.ReadBytes(x.modulus.Size())
	_, err := x.value.SetBytes(b, &x.modulus.value)
	if err != nil {
		panic(err)
	}
	return x
}

// x.Equal(y) tests two scalars for equality. Equality is defined as having the same value and the same modulus.
func (x *scalar) Equal(y Scalar) bool {
	return x == y || (x.value.Equal(y.value) == 1 && x.modulus.Equal(y.modulus))
}

// x.String() returns a human readable representation of the scalar's value. It is a non-constant time function, to be
// used for testing and display purposes.
func (x *scalar) String() string {
	return x.Big().String()
}

// Checks that two scalars have the same modulus, and panics otherwise.
// The check is typically very cheap, as it only compares pointers to the modulus in the first step.
func requireEqualModulus(x Scalar, y Scalar) {
	if !x.modulus.Equal(y.modulus) {
		panic("scalars have different moduli")
	}
}
