package encryption

import (
	"encoding"
	"fmt"

	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/codec"
)

var _ encoding.BinaryMarshaler = &Ciphertext{}
var _ encoding.BinaryUnmarshaler = &Ciphertext{}
var _ codec.Codec[*Ciphertext] = &Ciphertext{}

// Ciphertext is the pair (C1, C2) = (k·G, M + k·P).
type Ciphertext struct {
	C1, C2 *ecctypes.Point
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("{C1: %v, C2: %v}", ct.C1, ct.C2)
}

func (ct *Ciphertext) IsNil() bool {
	return ct == nil
}

func (ct *Ciphertext) MarshalTo(target codec.Target) {
	ct.C1.MarshalTo(target)
	ct.C2.MarshalTo(target)
}

func (ct *Ciphertext) UnmarshalFrom(source codec.Source) *Ciphertext {
	ct.C1 = codec.ReadObject(source, &ecctypes.Point{})
	ct.C2 = codec.ReadObject(source, &ecctypes.Point{})
	return ct
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	if ct.C1 == nil || ct.C2 == nil {
		return nil, fmt.Errorf("cannot marshal incomplete ciphertext")
	}
	return codec.Marshal(ct)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Curve membership of the decoded points is checked by
// Scheme.Decrypt(...).
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	decoded, err := codec.Unmarshal(data, &Ciphertext{})
	if err != nil {
		return fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	*ct = *decoded
	return nil
}
