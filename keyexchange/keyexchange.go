// Package keyexchange implements Diffie-Hellman key agreement over a validated short Weierstrass domain.
package keyexchange

import (
	"fmt"
	"io"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/crypto/math"
	"github.com/smartcontractkit/weierstrass/internal/logging"
	"github.com/smartcontractkit/weierstrass/internal/metrics"
)

// Config holds the optional collaborators of a KeyExchange. The zero value is valid.
type Config struct {
	Logger     logrus.FieldLogger    // nil discards all log output
	Registerer prometheus.Registerer // nil leaves the metrics unregistered
}

// KeyPair is a private scalar d with 0 < d < n and the corresponding public point d·G.
type KeyPair struct {
	Private *big.Int
	Public  *ecctypes.Point
}

// KeyExchange is safe for concurrent use, provided the randomness source passed to Generate(...) is.
type KeyExchange struct {
	domain  *ecctypes.Domain
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// New validates the domain parameters (curve, g, n) and returns a KeyExchange instance. Fails with an error wrapping
// ecctypes.ErrConstruction if g is not on the curve, n is not prime, or n·g is not the identity.
func New(curve *ecctypes.Curve, g *ecctypes.Point, n *big.Int, cfg Config) (*KeyExchange, error) {
	domain, err := math.NewDomain(curve, g, n)
	if err != nil {
		return nil, err
	}
	return NewWithDomain(domain, cfg)
}

// NewWithDomain returns a KeyExchange instance for an already validated domain, e.g. from ecctypes.DomainByName(...).
func NewWithDomain(domain *ecctypes.Domain, cfg Config) (*KeyExchange, error) {
	if domain == nil {
		return nil, fmt.Errorf("%w: domain must not be nil", ecctypes.ErrConstruction)
	}
	m, err := metrics.New(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	logger := logging.OrDiscard(cfg.Logger).WithField("protocol", metrics.ProtocolKeyExchange)
	logger.WithFields(logrus.Fields{
		"curve":      domain.Name(),
		"order_bits": domain.Modulus().BitLen(),
	}).Debug("key exchange initialized")

	return &KeyExchange{domain, logger, m}, nil
}

func (kx *KeyExchange) Domain() *ecctypes.Domain {
	return kx.domain
}

// Generate draws a uniformly random private scalar d from {1, ..., n-1} and returns (d, d·G). Most applications
// should use [crypto/rand.Reader] as rand.
func (kx *KeyExchange) Generate(rand io.Reader) (KeyPair, error) {
	d, err := kx.domain.Scalar().SetRandomNonZero(rand)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to generate private scalar: %w", err)
	}
	private := d.Big()
	public, err := kx.domain.BaseMult(private)
	if err != nil {
		// d is non-zero by construction.
		panic(err)
	}
	kx.metrics.Operation(metrics.ProtocolKeyExchange, "generate")
	return KeyPair{private, public}, nil
}

// SecretKey returns the shared secret d·peer. For two key pairs (d_a, P_a) and (d_b, P_b) on the same domain,
// SecretKey(d_a, P_b) equals SecretKey(d_b, P_a).
//
// Fails with ecctypes.ErrArgument if d is not positive, and with ecctypes.ErrValidation if peer is not on the curve or
// is the identity.
func (kx *KeyExchange) SecretKey(d *big.Int, peer *ecctypes.Point) (*ecctypes.Point, error) {
	if d == nil || d.Sign() <= 0 {
		kx.reject("secret", "non-positive private scalar")
		return nil, fmt.Errorf("%w: private scalar must be positive", ecctypes.ErrArgument)
	}
	if err := kx.validatePeer(peer); err != nil {
		return nil, err
	}

	secret, err := kx.domain.Curve().ScalarMult(d, peer)
	if err != nil {
		return nil, err
	}
	kx.metrics.Operation(metrics.ProtocolKeyExchange, "secret")
	return secret, nil
}

func (kx *KeyExchange) validatePeer(peer *ecctypes.Point) error {
	if peer == nil || !kx.domain.Curve().IsOnCurve(peer) {
		kx.reject("secret", "peer point not on curve")
		return fmt.Errorf("%w: peer public key %v is not on the curve", ecctypes.ErrValidation, peer)
	}
	if peer.IsIdentity() {
		kx.reject("secret", "peer point is the identity")
		return fmt.Errorf("%w: peer public key must not be the identity", ecctypes.ErrValidation)
	}
	return nil
}

func (kx *KeyExchange) reject(operation, reason string) {
	kx.logger.WithField("operation", operation).Debug("rejected input: " + reason)
	kx.metrics.Rejection(metrics.ProtocolKeyExchange, operation)
}
