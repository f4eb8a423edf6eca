package encryption

import (
	"testing"

	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/stretchr/testify/require"
)

func TestCiphertextMarshalRoundTrip(t *testing.T) {
	for _, ct := range []*Ciphertext{
		{pt(136, 128), pt(246, 174)},
		{pt(136, 128), ecctypes.Identity()},
		{pt(0, 0), pt(1, 0)},
	} {
		data, err := ct.MarshalBinary()
		require.NoError(t, err)

		decoded := &Ciphertext{}
		require.NoError(t, decoded.UnmarshalBinary(data))
		require.True(t, ct.C1.Equal(decoded.C1))
		require.True(t, ct.C2.Equal(decoded.C2))
	}
}

func TestCiphertextUnmarshalRejectsMalformed(t *testing.T) {
	data, err := (&Ciphertext{pt(136, 128), pt(246, 174)}).MarshalBinary()
	require.NoError(t, err)

	require.Error(t, (&Ciphertext{}).UnmarshalBinary(data[:len(data)-1]))
	require.Error(t, (&Ciphertext{}).UnmarshalBinary(append(data, 1)))
	require.Error(t, (&Ciphertext{}).UnmarshalBinary(nil))

	_, err = (&Ciphertext{C1: pt(136, 128)}).MarshalBinary()
	require.Error(t, err)
}
