package math

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/weierstrass/internal/codec"
)

var _ codec.Codec[*Point] = &Point{}

// Point is either the identity element (point at infinity) or an affine point (x, y). The identity is a distinct
// variant, never encoded by a sentinel coordinate pair: (0, 0) is an ordinary affine point and lies on every curve with
// b = 0. The zero value of Point is the identity.
//
// Points are immutable once created; all curve operations return new instances.
type Point struct {
	x, y   *big.Int
	affine bool
}

// Identity returns the point at infinity.
func Identity() *Point {
	return &Point{}
}

// NewPoint returns the affine point (x, y). The coordinates are copied. Membership is not checked here, use
// Curve.IsOnCurve(...) at the boundary.
func NewPoint(x, y *big.Int) *Point {
	return &Point{new(big.Int).Set(x), new(big.Int).Set(y), true}
}

// NewPointFromStrings parses decimal coordinates. Panics on malformed input, to be used for testing and static
// initialization only.
func NewPointFromStrings(x, y string) *Point {
	xv, ok := new(big.Int).SetString(x, 10)
	if !ok {
		panic("invalid x-coordinate: " + x)
	}
	yv, ok := new(big.Int).SetString(y, 10)
	if !ok {
		panic("invalid y-coordinate: " + y)
	}
	return &Point{xv, yv, true}
}

func (p *Point) IsIdentity() bool {
	return !p.affine
}

// X returns a copy of the x-coordinate, or nil for the identity.
func (p *Point) X() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate, or nil for the identity.
func (p *Point) Y() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point. Coordinates are compared as given, callers comparing points
// produced by a Curve always see canonical coordinates.
func (p *Point) Equal(q *Point) bool {
	if p.affine != q.affine {
		return false
	}
	if !p.affine {
		return true
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p *Point) Clone() *Point {
	if !p.affine {
		return Identity()
	}
	return NewPoint(p.x, p.y)
}

// String returns "O" for the identity and "(x, y)" in decimal otherwise.
func (p *Point) String() string {
	if !p.affine {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

func (p *Point) IsNil() bool {
	return p == nil
}

// MarshalTo writes a presence flag followed by the length-prefixed big-endian coordinates (affine points only).
func (p *Point) MarshalTo(target codec.Target) {
	target.WriteBool(p.affine)
	if !p.affine {
		return
	}
	if p.x.Sign() < 0 || p.y.Sign() < 0 {
		panic("cannot encode point with negative coordinates: " + p.String())
	}
	target.WriteLengthPrefixedBytes(p.x.Bytes())
	target.WriteLengthPrefixedBytes(p.y.Bytes())
}

// UnmarshalFrom reads a point written by MarshalTo, sets it to p, and returns p. Curve membership is not checked.
func (p *Point) UnmarshalFrom(source codec.Source) *Point {
	if !source.ReadBool() {
		*p = Point{}
		return p
	}
	x := source.ReadLengthPrefixedBytes()
	y := source.ReadLengthPrefixedBytes()
	if x == nil || y == nil {
		panic("affine point with missing coordinate")
	}
	*p = Point{new(big.Int).SetBytes(x), new(big.Int).SetBytes(y), true}
	return p
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Point) MarshalBinary() ([]byte, error) {
	return codec.Marshal(p)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Point) UnmarshalBinary(data []byte) error {
	q, err := codec.Unmarshal(data, &Point{})
	if err != nil {
		return err
	}
	*p = *q
	return nil
}
