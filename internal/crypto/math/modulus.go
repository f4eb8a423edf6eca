package math

import (
	"fmt"
	"math/big"

	"filippo.io/bigmod"
)

// Modulus represents the order n of a base point. Scalars (private keys, nonces, signature components) are reduced
// modulo n. The big.Int representation is kept alongside for range checks and conversions.
type Modulus struct {
	value bigmod.Modulus
	n     *big.Int
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on invalid input; value must represent a natural number greater than one.
func NewModulus(value string) *Modulus {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("invalid modulus value: " + value)
	}
	m, err := NewModulusFromBig(n)
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	return m
}

// NewModulusFromBig initializes a Modulus from n, which must be greater than one.
func NewModulusFromBig(n *big.Int) (*Modulus, error) {
	if n == nil || n.Cmp(big.NewInt(1)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than one, got %v", n)
	}
	m, err := bigmod.NewModulus(n.Bytes())
	if err != nil {
		return nil, err
	}
	return &Modulus{*m, new(big.Int).Set(n)}, nil
}

func (m *Modulus) Equal(other *Modulus) bool {
	return m == other || (&m.value).Nat().Equal((&other.value).Nat()) == 1
}

// Size returns the length in bytes of the modulus (and of every encoded scalar reduced by it).
func (m *Modulus) Size() int {
	return (&m.value).Size()
}

func (m *Modulus) BitLen() int {
	return m.n.BitLen()
}

func (m *Modulus) Bytes() []byte {
	return (&m.value).Nat().Bytes(&m.value)
}

// Big returns a copy of the modulus as big.Int.
func (m *Modulus) Big() *big.Int {
	return new(big.Int).Set(m.n)
}

func (m *Modulus) String() string {
	return m.n.String()
}
