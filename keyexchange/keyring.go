package keyexchange

import (
	"encoding"
	"fmt"
	"io"

	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/codec"
	"github.com/smartcontractkit/weierstrass/internal/crypto/math"
)

var _ encoding.BinaryMarshaler = &Keyring{}
var _ encoding.BinaryUnmarshaler = &Keyring{}
var _ fmt.Stringer = &Keyring{}
var _ fmt.GoStringer = &Keyring{}

// Keyring holds a long-lived private scalar together with its public point. The private scalar never leaves the
// keyring except through MarshalBinary().
type Keyring struct {
	kx *KeyExchange
	sk math.Scalar
	pk *ecctypes.Point
}

// NewKeyring initializes a keyring with a freshly generated key pair.
func (kx *KeyExchange) NewKeyring(rand io.Reader) (*Keyring, error) {
	sk, err := kx.domain.Scalar().SetRandomNonZero(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private scalar: %w", err)
	}
	pk, err := kx.domain.BaseMult(sk.Big())
	if err != nil {
		panic(err)
	}
	return &Keyring{kx, sk, pk}, nil
}

// LoadKeyring restores a keyring exported via MarshalBinary().
func (kx *KeyExchange) LoadKeyring(data []byte) (*Keyring, error) {
	kr := &Keyring{kx: kx}
	if err := kr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return kr, nil
}

// Implement Stringer and GoStringer interfaces to ensure that the private scalar is never accidentally logged.
func (kr *Keyring) String() string {
	return kr.GoString()
}

// Implement Stringer and GoStringer interfaces to ensure that the private scalar is never accidentally logged.
func (kr *Keyring) GoString() string {
	if kr.pk == nil {
		return "Keyring{}"
	}
	return fmt.Sprintf("Keyring{pk: %q}", kr.pk.String())
}

func (kr *Keyring) PublicKey() *ecctypes.Point {
	return kr.pk
}

// SharedSecret computes the shared secret with the given peer public key, see KeyExchange.SecretKey(...).
func (kr *Keyring) SharedSecret(peer *ecctypes.Point) (*ecctypes.Point, error) {
	return kr.kx.SecretKey(kr.sk.Big(), peer)
}

func (kr *Keyring) IsNil() bool {
	return kr == nil
}

// MarshalTo writes the private scalar (padded to the size of n) followed by the public point.
func (kr *Keyring) MarshalTo(target codec.Target) {
	kr.sk.MarshalTo(target)
	kr.pk.MarshalTo(target)
}

func (kr *Keyring) UnmarshalFrom(source codec.Source) *Keyring {
	sk := codec.ReadObject(source, kr.kx.domain.Scalar())
	pk := codec.ReadObject(source, &ecctypes.Point{})
	kr.sk, kr.pk = sk, pk
	return kr
}

// MarshalBinary implements encoding.BinaryMarshaler by exporting the key pair.
func (kr *Keyring) MarshalBinary() ([]byte, error) {
	return codec.Marshal(kr)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler by importing a key pair. The keyring must be bound to a
// KeyExchange, see KeyExchange.LoadKeyring(...). The stored public point must match the private scalar.
func (kr *Keyring) UnmarshalBinary(data []byte) error {
	if kr.kx == nil {
		return fmt.Errorf("keyring is not bound to a key exchange instance")
	}
	decoded, err := codec.Unmarshal(data, &Keyring{kx: kr.kx})
	if err != nil {
		return fmt.Errorf("failed to decode keyring: %w", err)
	}
	if decoded.sk.IsZero() {
		return fmt.Errorf("%w: private scalar must not be zero", ecctypes.ErrArgument)
	}

	expected, err := kr.kx.domain.BaseMult(decoded.sk.Big())
	if err != nil {
		return err
	}
	if !expected.Equal(decoded.pk) {
		return fmt.Errorf("public key mismatch, expected %v, got %v", expected, decoded.pk)
	}

	kr.sk, kr.pk = decoded.sk, decoded.pk
	return nil
}
