package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	flag    bool
	n       int
	payload []byte
}

func (p *pair) IsNil() bool {
	return p == nil
}

func (p *pair) MarshalTo(target Target) {
	target.WriteBool(p.flag)
	target.WriteInt(p.n)
	target.WriteLengthPrefixedBytes(p.payload)
}

func (p *pair) UnmarshalFrom(source Source) *pair {
	p.flag = source.ReadBool()
	p.n = source.ReadInt()
	p.payload = source.ReadLengthPrefixedBytes()
	return p
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []*pair{
		{true, 42, []byte{1, 2, 3}},
		{false, -7, nil},
		{false, 0, []byte{}},
	} {
		data, err := Marshal(p)
		require.NoError(t, err)

		decoded, err := Unmarshal(data, &pair{})
		require.NoError(t, err)
		require.Equal(t, p.flag, decoded.flag)
		require.Equal(t, p.n, decoded.n)
		require.Equal(t, p.payload == nil, decoded.payload == nil)
		require.Equal(t, len(p.payload), len(decoded.payload))
	}
}

func TestIntEncodingIsBigEndian(t *testing.T) {
	data, err := Marshal(&pair{true, 0x01020304, nil})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 1, 2, 3, 4, 0xff, 0xff, 0xff, 0xff}, data)
}

func TestMarshalNil(t *testing.T) {
	var p *pair
	_, err := Marshal(p)
	require.Error(t, err)

	_, err = Marshal(nil)
	require.Error(t, err)
}

func TestUnmarshalErrors(t *testing.T) {
	data, err := Marshal(&pair{true, 1, []byte{9}})
	require.NoError(t, err)

	_, err = Unmarshal(data[:len(data)-1], &pair{})
	require.Error(t, err, "truncated")

	_, err = Unmarshal(append(data, 0), &pair{})
	require.ErrorContains(t, err, "did not consume all bytes")

	_, err = Unmarshal([]byte{2, 0, 0, 0, 1, 0, 0, 0, 0}, &pair{})
	require.Error(t, err, "invalid bool")

	_, err = Unmarshal([]byte{1, 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xfe}, &pair{})
	require.Error(t, err, "negative length")
}

func TestUnmarshalFromSourceLeavesRemainder(t *testing.T) {
	first, err := Marshal(&pair{true, 1, nil})
	require.NoError(t, err)
	second, err := Marshal(&pair{false, 2, []byte{7}})
	require.NoError(t, err)

	src := &source{append(first, second...)}
	p1, err := UnmarshalFromSource(src, &pair{})
	require.NoError(t, err)
	require.Equal(t, 1, p1.n)
	require.Equal(t, len(second), src.Available())

	p2 := ReadObject(src, &pair{})
	require.Equal(t, 2, p2.n)
	require.Zero(t, src.Available())
}
