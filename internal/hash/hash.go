package hash

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	stdhash "hash"
	"math/big"
	"slices"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Func is a named message digest. It is the pluggable hash capability used by signing and verification; the same Func
// must be used on both sides. The zero value is not usable, see Default.
type Func struct {
	Name string
	New  func() stdhash.Hash
}

var (
	// SHA1 reproduces legacy signatures, prefer SHA256 otherwise.
	SHA1       = Func{"sha1", sha1.New}
	SHA256     = Func{"sha256", sha256.New}
	SHA512     = Func{"sha512", sha512.New}
	SHA3_256   = Func{"sha3-256", sha3.New256}
	Keccak256  = Func{"keccak256", sha3.NewLegacyKeccak256}
	BLAKE2b256 = Func{"blake2b-256", newBLAKE2b256}
	SHAKE256   = Func{"shake256", newSHAKE256} // 64 bytes of output

	Default = SHA256
)

var registry = []Func{SHA1, SHA256, SHA512, SHA3_256, Keccak256, BLAKE2b256, SHAKE256}

func newBLAKE2b256() stdhash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only returned for oversized keys, no key is used here.
		panic("blake2b: " + err.Error())
	}
	return h
}

func newSHAKE256() stdhash.Hash {
	return sha3.NewShake256()
}

// Names returns the names of all registered digests.
func Names() []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.Name
	}
	return names
}

// ByName looks up a registered digest. The empty name selects Default.
func ByName(name string) (Func, error) {
	if name == "" {
		return Default, nil
	}
	i := slices.IndexFunc(registry, func(f Func) bool { return f.Name == name })
	if i < 0 {
		return Func{}, fmt.Errorf("unknown hash function %q, supported: %v", name, Names())
	}
	return registry[i], nil
}

func (f Func) IsZero() bool {
	return f.New == nil
}

func (f Func) String() string {
	return f.Name
}

// Sum returns the digest of data.
func (f Func) Sum(data []byte) []byte {
	h := f.New()
	_, _ = h.Write(data) // hash.Hash never returns an error
	return h.Sum(nil)
}

// DigestInt hashes the integer message m and returns the digest as non-negative integer (big-endian). The message is
// encoded as minimal unsigned big-endian bytes, zero is encoded as the empty string. Negative messages have no such
// encoding and are rejected.
func (f Func) DigestInt(m *big.Int) (*big.Int, error) {
	b, err := MessageBytes(m)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(f.Sum(b)), nil
}

// MessageBytes returns the canonical byte encoding of an integer message, see DigestInt(...).
func MessageBytes(m *big.Int) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("message must not be nil")
	}
	if m.Sign() < 0 {
		return nil, fmt.Errorf("message must be non-negative, got %s", m)
	}
	return m.Bytes(), nil
}
