package signature

import (
	"bytes"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/testimplementations/testhelpers"
	"github.com/smartcontractkit/weierstrass/internal/testimplementations/unsaferand"
	"github.com/stretchr/testify/require"
)

func newScheme(t *testing.T, name string, cfg Config) *Scheme {
	s, err := NewWithDomain(testhelpers.Domain(t, name), cfg)
	require.NoError(t, err)
	return s
}

func TestNewRejectsInvalidDomain(t *testing.T) {
	curve := testhelpers.ToyCurve(t)

	_, err := New(curve, testhelpers.Point(1, 2), big.NewInt(43), Config{})
	require.ErrorIs(t, err, ecctypes.ErrConstruction)

	_, err = New(curve, testhelpers.Point(126, 107), big.NewInt(129), Config{})
	require.ErrorIs(t, err, ecctypes.ErrConstruction)

	s, err := New(curve, testhelpers.Point(126, 107), big.NewInt(43), Config{})
	require.NoError(t, err)
	require.Equal(t, SHA256.Name, s.Hash().Name)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, name := range ecctypes.SupportedDomains() {
		for _, h := range []HashFunc{SHA1, SHA256, Keccak256} {
			t.Run(name+"/"+h.Name, func(t *testing.T) {
				s := newScheme(t, name, Config{Hash: h})
				rand := unsaferand.New(name, h.Name)

				kp, err := s.GenerateKey(rand)
				require.NoError(t, err)
				require.True(t, s.Domain().InRange(kp.Private))

				m := big.NewInt(123456789)
				sig, err := s.Sign(rand, m, kp.Private)
				require.NoError(t, err)
				require.True(t, s.Domain().InRange(sig.R))
				require.True(t, s.Domain().InRange(sig.S))
				require.True(t, s.Verify(m, sig, kp.Public))
			})
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	s := newScheme(t, "secp256k1", Config{})
	rand := unsaferand.New(t.Name())

	kp, err := s.GenerateKey(rand)
	require.NoError(t, err)
	other, err := s.GenerateKey(rand)
	require.NoError(t, err)

	m := big.NewInt(42)
	sig, err := s.Sign(rand, m, kp.Private)
	require.NoError(t, err)

	require.False(t, s.Verify(big.NewInt(43), sig, kp.Public), "tampered message")
	require.False(t, s.Verify(m, sig, other.Public), "wrong public key")
	require.False(t, s.Verify(m, &Signature{sig.R, new(big.Int).Add(sig.S, big.NewInt(1))}, kp.Public), "tampered s")
	require.False(t, s.Verify(m, &Signature{new(big.Int).Add(sig.R, big.NewInt(1)), sig.S}, kp.Public), "tampered r")
}

func TestVerifyFailsClosed(t *testing.T) {
	s := newScheme(t, "toy257", Config{})
	q := ecctypes.NewPoint(big.NewInt(229), big.NewInt(114))
	m := big.NewInt(12345)
	n := s.Domain().N()

	tests := []struct {
		name string
		m    *big.Int
		sig  *Signature
		q    *ecctypes.Point
	}{
		{"nil signature", m, nil, q},
		{"r is zero", m, &Signature{big.NewInt(0), big.NewInt(18)}, q},
		{"s is zero", m, &Signature{big.NewInt(14), big.NewInt(0)}, q},
		{"r equals n", m, &Signature{n, big.NewInt(18)}, q},
		{"s equals n", m, &Signature{big.NewInt(14), n}, q},
		{"negative r", m, &Signature{big.NewInt(-14), big.NewInt(18)}, q},
		{"nil r", m, &Signature{nil, big.NewInt(18)}, q},
		{"public key is the identity", m, &Signature{big.NewInt(14), big.NewInt(18)}, ecctypes.Identity()},
		{"public key not on the curve", m, &Signature{big.NewInt(14), big.NewInt(18)}, ecctypes.NewPoint(big.NewInt(229), big.NewInt(115))},
		{"negative message", big.NewInt(-12345), &Signature{big.NewInt(14), big.NewInt(18)}, q},
		{"nil message", nil, &Signature{big.NewInt(14), big.NewInt(18)}, q},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, s.Verify(tt.m, tt.sig, tt.q))
		})
	}
}

func TestVerifyKnownSignature(t *testing.T) {
	// d = 7, Q = 7·G = (229, 114), k = 10, m = 12345 hashed with SHA-256: e ≡ 39 (mod 43), r = 14, s = 18.
	s := newScheme(t, "toy257", Config{})
	q := ecctypes.NewPoint(big.NewInt(229), big.NewInt(114))

	expected, err := s.Domain().BaseMult(big.NewInt(7))
	require.NoError(t, err)
	require.True(t, expected.Equal(q))

	require.True(t, s.Verify(big.NewInt(12345), &Signature{big.NewInt(14), big.NewInt(18)}, q))
	require.False(t, s.Verify(big.NewInt(12345), &Signature{big.NewInt(14), big.NewInt(19)}, q))
}

func TestSignRetriesOnZeroS(t *testing.T) {
	// With d = 31 and m = 12345 (e ≡ 39), the nonce k = 10 yields r = 14 and s = 10⁻¹(39 + 31·14) ≡ 0 (mod 43).
	// The nonce source yields 0 and 50 (both rejected), then 10 (s = 0, discarded), then 5.
	reg := prometheus.NewRegistry()
	s := newScheme(t, "toy257", Config{Registerer: reg})
	rand := bytes.NewReader([]byte{0, 50, 10, 5})

	sig, err := s.Sign(rand, big.NewInt(12345), big.NewInt(31))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(6), sig.R)
	require.Equal(t, big.NewInt(2), sig.S)

	q, err := s.Domain().BaseMult(big.NewInt(31))
	require.NoError(t, err)
	require.True(t, s.Verify(big.NewInt(12345), sig, q))

	expected := `
		# HELP ecc_sign_nonce_retries_total Number of signing nonces discarded because r or s was zero.
		# TYPE ecc_sign_nonce_retries_total counter
		ecc_sign_nonce_retries_total 1
	`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ecc_sign_nonce_retries_total"))
}

func TestSignArgumentErrors(t *testing.T) {
	s := newScheme(t, "toy257", Config{})
	rand := unsaferand.New(t.Name())

	for _, d := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1), big.NewInt(43), big.NewInt(100)} {
		_, err := s.Sign(rand, big.NewInt(1), d)
		require.ErrorIs(t, err, ecctypes.ErrArgument, "d = %v", d)
	}

	_, err := s.Sign(rand, big.NewInt(-1), big.NewInt(7))
	require.ErrorIs(t, err, ecctypes.ErrArgument)

	_, err = s.Sign(strings.NewReader(""), big.NewInt(1), big.NewInt(7))
	require.Error(t, err)
}

func TestSignBytes(t *testing.T) {
	s := newScheme(t, "P-256", Config{Hash: SHA3_256})
	rand := unsaferand.New(t.Name())

	kp, err := s.GenerateKey(rand)
	require.NoError(t, err)

	msg := []byte("hello, curve")
	sig, err := s.SignBytes(rand, msg, kp.Private)
	require.NoError(t, err)
	require.True(t, s.VerifyBytes(msg, sig, kp.Public))
	require.True(t, s.VerifyBytes(append([]byte{0, 0}, msg...), sig, kp.Public), "leading zeros are not significant")
	require.False(t, s.VerifyBytes([]byte("hello, curve!"), sig, kp.Public))

	// a different digest does not verify
	other := newScheme(t, "P-256", Config{Hash: SHA256})
	require.False(t, other.VerifyBytes(msg, sig, kp.Public))
}

func TestHashByName(t *testing.T) {
	h, err := HashByName("sha1")
	require.NoError(t, err)
	require.Equal(t, SHA1.Name, h.Name)

	h, err = HashByName("")
	require.NoError(t, err)
	require.Equal(t, SHA256.Name, h.Name)

	_, err = HashByName("crc32")
	require.Error(t, err)
	require.Contains(t, HashNames(), "blake2b-256")
}

func TestConcurrentSigning(t *testing.T) {
	s := newScheme(t, "P-256", Config{Registerer: prometheus.NewRegistry()})
	rand := unsaferand.New(t.Name())
	kp, err := s.GenerateKey(rand)
	require.NoError(t, err)

	const workers = 8
	sigs := make([]*Signature, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sigs[i], errs[i] = s.Sign(rand, big.NewInt(int64(i)), kp.Private)
		}()
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.True(t, s.Verify(big.NewInt(int64(i)), sigs[i], kp.Public))
	}
}
