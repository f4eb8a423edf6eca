// Package signature implements ECDSA over a validated short Weierstrass domain, with a pluggable message digest.
package signature

import (
	"fmt"
	"io"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/crypto/math"
	"github.com/smartcontractkit/weierstrass/internal/hash"
	"github.com/smartcontractkit/weierstrass/internal/logging"
	"github.com/smartcontractkit/weierstrass/internal/metrics"
)

// HashFunc is the message digest used for signing and verification. Signer and verifier must agree on it.
type HashFunc = hash.Func

var (
	SHA1       = hash.SHA1 // legacy, for interoperability only
	SHA256     = hash.SHA256
	SHA512     = hash.SHA512
	SHA3_256   = hash.SHA3_256
	Keccak256  = hash.Keccak256
	BLAKE2b256 = hash.BLAKE2b256
	SHAKE256   = hash.SHAKE256
)

// HashByName returns the digest with the given name, e.g. "sha256" or "keccak256". The empty name selects SHA256.
func HashByName(name string) (HashFunc, error) {
	return hash.ByName(name)
}

// HashNames lists the names accepted by HashByName(...).
func HashNames() []string {
	return hash.Names()
}

// Config holds the optional collaborators of a Scheme. The zero value is valid.
type Config struct {
	Logger     logrus.FieldLogger    // nil discards all log output
	Registerer prometheus.Registerer // nil leaves the metrics unregistered
	Hash       HashFunc              // zero value selects SHA256
}

// KeyPair is a private scalar d with 0 < d < n and the public point Q = d·G.
type KeyPair struct {
	Public  *ecctypes.Point
	Private *big.Int
}

// Scheme is safe for concurrent use, provided the randomness sources passed to its methods are.
type Scheme struct {
	domain  *ecctypes.Domain
	hash    HashFunc
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// New validates the domain parameters (curve, g, n) and returns an ECDSA scheme. Fails with an error wrapping
// ecctypes.ErrConstruction if g is not on the curve, n is not prime, or n·g is not the identity.
func New(curve *ecctypes.Curve, g *ecctypes.Point, n *big.Int, cfg Config) (*Scheme, error) {
	domain, err := math.NewDomain(curve, g, n)
	if err != nil {
		return nil, err
	}
	return NewWithDomain(domain, cfg)
}

// NewWithDomain returns an ECDSA scheme for an already validated domain.
func NewWithDomain(domain *ecctypes.Domain, cfg Config) (*Scheme, error) {
	if domain == nil {
		return nil, fmt.Errorf("%w: domain must not be nil", ecctypes.ErrConstruction)
	}
	h := cfg.Hash
	if h.IsZero() {
		h = hash.Default
	}
	m, err := metrics.New(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	logger := logging.OrDiscard(cfg.Logger).WithField("protocol", metrics.ProtocolSignature)
	logger.WithFields(logrus.Fields{
		"curve":      domain.Name(),
		"order_bits": domain.Modulus().BitLen(),
		"hash":       h.Name,
	}).Debug("signature scheme initialized")

	return &Scheme{domain, h, logger, m}, nil
}

func (s *Scheme) Domain() *ecctypes.Domain {
	return s.domain
}

func (s *Scheme) Hash() HashFunc {
	return s.hash
}

// GenerateKey draws a private scalar d uniformly from {1, ..., n-1} and returns (d·G, d).
func (s *Scheme) GenerateKey(rand io.Reader) (KeyPair, error) {
	d, err := s.domain.Scalar().SetRandomNonZero(rand)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to generate private scalar: %w", err)
	}
	q, err := s.domain.BaseMult(d.Big())
	if err != nil {
		panic(err)
	}
	s.metrics.Operation(metrics.ProtocolSignature, "generate")
	return KeyPair{q, d.Big()}, nil
}

// Sign signs the non-negative integer message m with the private scalar d (0 < d < n). The message is hashed over its
// minimal unsigned big-endian encoding. A fresh nonce k is drawn from rand until both r = (k·G).x mod n and
// s = k⁻¹(e + d·r) mod n are non-zero.
//
// Fails with ecctypes.ErrArgument if d is out of range or m is negative. Errors of rand are returned wrapped.
func (s *Scheme) Sign(rand io.Reader, m *big.Int, d *big.Int) (*Signature, error) {
	if !s.domain.InRange(d) {
		s.reject("sign", "private scalar out of range")
		return nil, fmt.Errorf("%w: private scalar must be in [1, n-1]", ecctypes.ErrArgument)
	}
	digest, err := s.hash.DigestInt(m)
	if err != nil {
		s.reject("sign", "invalid message")
		return nil, fmt.Errorf("%w: %w", ecctypes.ErrArgument, err)
	}

	e := s.domain.Scalar().SetBig(digest)
	priv := s.domain.Scalar().SetBig(d)
	for {
		k, err := s.domain.Scalar().SetRandomNonZero(rand)
		if err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}

		// k·G is never the identity, as 0 < k < n and n is the prime order of G.
		p, err := s.domain.BaseMult(k.Big())
		if err != nil {
			panic(err)
		}
		r := s.domain.Scalar().SetBig(p.X())
		if r.IsZero() {
			s.retry("r")
			continue
		}

		kInv, ok := k.InverseVarTime()
		if !ok {
			panic("nonce is not invertible modulo the group order")
		}
		sig := priv.Clone().Multiply(r).Add(e).Multiply(kInv)
		if sig.IsZero() {
			s.retry("s")
			continue
		}

		s.metrics.Operation(metrics.ProtocolSignature, "sign")
		return &Signature{r.Big(), sig.Big()}, nil
	}
}

// Verify reports whether sig is a valid signature of the integer message m under the public key q. Verification fails
// closed: malformed signatures (r or s outside [1, n-1]), negative messages and public keys that are not on the curve
// or the identity all yield false.
func (s *Scheme) Verify(m *big.Int, sig *Signature, q *ecctypes.Point) bool {
	if sig == nil || !s.domain.InRange(sig.R) || !s.domain.InRange(sig.S) {
		return s.verifyFailed("signature out of range")
	}
	if q == nil || q.IsIdentity() || !s.domain.Curve().IsOnCurve(q) {
		return s.verifyFailed("invalid public key")
	}
	digest, err := s.hash.DigestInt(m)
	if err != nil {
		return s.verifyFailed("invalid message")
	}

	e := s.domain.Scalar().SetBig(digest)
	r := s.domain.Scalar().SetBig(sig.R)
	w, ok := s.domain.Scalar().SetBig(sig.S).InverseVarTime()
	if !ok {
		return s.verifyFailed("s is not invertible")
	}
	u1 := e.Multiply(w)
	u2 := r.Clone().Multiply(w)

	x := s.domain.Curve().Add(s.multiplyOrIdentity(u1, s.domain.G()), s.multiplyOrIdentity(u2, q))
	if x.IsIdentity() {
		return s.verifyFailed("u1·G + u2·Q is the identity")
	}
	if !s.domain.Scalar().SetBig(x.X()).Equal(r) {
		return s.verifyFailed("r mismatch")
	}
	s.metrics.Operation(metrics.ProtocolSignature, "verify")
	return true
}

// SignBytes signs msg, interpreted as unsigned big-endian integer. Leading zero bytes are not significant.
func (s *Scheme) SignBytes(rand io.Reader, msg []byte, d *big.Int) (*Signature, error) {
	return s.Sign(rand, new(big.Int).SetBytes(msg), d)
}

// VerifyBytes verifies a signature created by SignBytes(...).
func (s *Scheme) VerifyBytes(msg []byte, sig *Signature, q *ecctypes.Point) bool {
	return s.Verify(new(big.Int).SetBytes(msg), sig, q)
}

// multiplyOrIdentity returns k·pt, with 0·pt defined as the identity.
func (s *Scheme) multiplyOrIdentity(k math.Scalar, pt *ecctypes.Point) *ecctypes.Point {
	if k.IsZero() {
		return ecctypes.Identity()
	}
	p, err := s.domain.Curve().ScalarMult(k.Big(), pt)
	if err != nil {
		panic(err)
	}
	return p
}

func (s *Scheme) retry(component string) {
	s.logger.WithField("component", component).Debug("discarding nonce, signature component is zero")
	s.metrics.NonceRetry()
}

func (s *Scheme) reject(operation, reason string) {
	s.logger.WithField("operation", operation).Debug("rejected input: " + reason)
	s.metrics.Rejection(metrics.ProtocolSignature, operation)
}

func (s *Scheme) verifyFailed(reason string) bool {
	s.reject("verify", reason)
	return false
}
