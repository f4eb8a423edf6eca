package signature

import (
	"encoding"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var _ encoding.BinaryMarshaler = &Signature{}
var _ encoding.BinaryUnmarshaler = &Signature{}

// Signature is an ECDSA signature (r, s). Signatures produced by Sign(...) satisfy 1 <= r, s <= n-1.
type Signature struct {
	R, S *big.Int
}

func (sig *Signature) String() string {
	return fmt.Sprintf("(r = %s, s = %s)", sig.R, sig.S)
}

// MarshalBinary encodes the signature as ASN.1 DER SEQUENCE { r INTEGER, s INTEGER }, as used by X.509 and
// crypto/ecdsa.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	if sig.R == nil || sig.S == nil || sig.R.Sign() <= 0 || sig.S.Sign() <= 0 {
		return nil, fmt.Errorf("cannot encode signature with non-positive components")
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.R)
		b.AddASN1BigInt(sig.S)
	})
	return b.Bytes()
}

// UnmarshalBinary decodes an ASN.1 DER signature. Range checks against the group order are left to Verify(...).
func (sig *Signature) UnmarshalBinary(data []byte) error {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return fmt.Errorf("invalid ASN.1 signature encoding")
	}
	sig.R, sig.S = r, s
	return nil
}

// ParseSignature decodes a signature encoded by MarshalBinary().
func ParseSignature(data []byte) (*Signature, error) {
	sig := &Signature{}
	if err := sig.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return sig, nil
}
