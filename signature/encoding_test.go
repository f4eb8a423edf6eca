package signature

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignatureDER(t *testing.T) {
	sig := &Signature{big.NewInt(14), big.NewInt(200)}
	data, err := sig.MarshalBinary()
	require.NoError(t, err)
	// SEQUENCE { INTEGER 14, INTEGER 200 }, 200 needs a leading zero byte to stay positive.
	require.Equal(t, "300702010e020200c8", hex.EncodeToString(data))

	parsed, err := ParseSignature(data)
	require.NoError(t, err)
	require.Equal(t, sig.R, parsed.R)
	require.Equal(t, sig.S, parsed.S)
}

func TestSignatureDERRejectsMalformed(t *testing.T) {
	valid, err := (&Signature{big.NewInt(14), big.NewInt(200)}).MarshalBinary()
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"empty":         {},
		"truncated":     valid[:len(valid)-1],
		"trailing data": append(append([]byte{}, valid...), 0),
		"not sequence":  {0x02, 0x01, 0x0e},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSignature(data)
			require.Error(t, err)
		})
	}

	_, err = (&Signature{big.NewInt(0), big.NewInt(1)}).MarshalBinary()
	require.Error(t, err)
	_, err = (&Signature{nil, big.NewInt(1)}).MarshalBinary()
	require.Error(t, err)
}
