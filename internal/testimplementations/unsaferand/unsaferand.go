package unsaferand

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	mrand "math/rand"
	"sync"
	"time"
)

// UnsafeRand is a test implementation of io.Reader based on math/rand.Rand, used in place of [crypto/rand.Reader] to
// make key generation, signing nonces and ephemeral scalars reproducible in tests.
// The generated sequence is not cryptographically secure and should only be used for testing purposes.
// Reads are serialized, so a single instance may be shared by concurrent signers.
type UnsafeRand struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

var _ io.Reader = &UnsafeRand{}

// Initializes a new UnsafeRand that produces a deterministic randomness based on the given seed argument(s).
// Deterministic behavior depends on the fmt.Sprintf("%#v", seedArgs...) representation of the passed arguments.
// Map iteration order is not guaranteed, so passing a map as a seed argument may lead to non-deterministic behavior.
func New(seedArgs ...any) *UnsafeRand {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%#v", seedArgs)
	return &UnsafeRand{rng: mrand.New(mrand.NewSource(int64(h.Sum64())))}
}

// Initializes a new UnsafeRand that produces non-deterministic randomness.
func NewNondeterministic() *UnsafeRand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return &UnsafeRand{rng: mrand.New(mrand.NewSource(time.Now().UnixNano()))}
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]))
	return &UnsafeRand{rng: mrand.New(mrand.NewSource(seed))}
}

// Read fills p with pseudo-random bytes. It never returns an error.
func (r *UnsafeRand) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Read(p)
}

// Limited returns a reader that yields the first n bytes of r and then io.EOF, to exercise failing randomness sources.
func (r *UnsafeRand) Limited(n int64) io.Reader {
	return io.LimitReader(r, n)
}
