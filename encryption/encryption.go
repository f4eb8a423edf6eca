// Package encryption implements ElGamal-style encryption of curve points.
package encryption

import (
	"fmt"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/logging"
	"github.com/smartcontractkit/weierstrass/internal/metrics"
)

// Config holds the optional collaborators of a Scheme. The zero value is valid.
type Config struct {
	Logger     logrus.FieldLogger    // nil discards all log output
	Registerer prometheus.Registerer // nil leaves the metrics unregistered
}

// Scheme encrypts points M on a curve to a recipient key P = d·G as (k·G, M + k·P). The order of G is not used by the
// scheme and therefore not required. Safe for concurrent use.
type Scheme struct {
	curve   *ecctypes.Curve
	g       *ecctypes.Point
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// New returns a Scheme for the base point g. Fails with ecctypes.ErrConstruction if g is the identity or not on the
// curve.
func New(curve *ecctypes.Curve, g *ecctypes.Point, cfg Config) (*Scheme, error) {
	if curve == nil || g == nil {
		return nil, fmt.Errorf("%w: curve and base point are required", ecctypes.ErrConstruction)
	}
	if g.IsIdentity() || !curve.IsOnCurve(g) {
		return nil, fmt.Errorf("%w: base point %s is not on the curve %s", ecctypes.ErrConstruction, g, curve)
	}
	m, err := metrics.New(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	logger := logging.OrDiscard(cfg.Logger).WithField("protocol", metrics.ProtocolEncryption)
	logger.WithFields(logrus.Fields{"curve": curve.String(), "g": g.String()}).Debug("encryption scheme initialized")

	return &Scheme{curve, g.Clone(), logger, m}, nil
}

// NewWithDomain returns a Scheme for the curve and base point of a validated domain.
func NewWithDomain(domain *ecctypes.Domain, cfg Config) (*Scheme, error) {
	if domain == nil {
		return nil, fmt.Errorf("%w: domain must not be nil", ecctypes.ErrConstruction)
	}
	return New(domain.Curve(), domain.G(), cfg)
}

func (s *Scheme) Curve() *ecctypes.Curve {
	return s.curve
}

func (s *Scheme) G() *ecctypes.Point {
	return s.g
}

// PublicKey returns the recipient public key d·G for the private scalar d > 0.
func (s *Scheme) PublicKey(d *big.Int) (*ecctypes.Point, error) {
	return s.curve.ScalarMult(d, s.g)
}

// Encrypt returns (C1, C2) = (k·G, M + k·pub). The ephemeral scalar k must be positive and should be freshly drawn for
// every encryption.
//
// Fails with ecctypes.ErrValidation if m or pub is not on the curve, and with ecctypes.ErrArgument if k <= 0.
func (s *Scheme) Encrypt(m *ecctypes.Point, k *big.Int, pub *ecctypes.Point) (*Ciphertext, error) {
	if !s.onCurve(m) {
		s.reject("encrypt", "plaintext not on curve")
		return nil, fmt.Errorf("%w: plaintext %v is not on the curve", ecctypes.ErrValidation, m)
	}
	if !s.onCurve(pub) {
		s.reject("encrypt", "public key not on curve")
		return nil, fmt.Errorf("%w: public key %v is not on the curve", ecctypes.ErrValidation, pub)
	}

	c1, err := s.curve.ScalarMult(k, s.g)
	if err != nil {
		s.reject("encrypt", "invalid ephemeral scalar")
		return nil, err
	}
	kp, err := s.curve.ScalarMult(k, pub)
	if err != nil {
		return nil, err
	}

	s.metrics.Operation(metrics.ProtocolEncryption, "encrypt")
	return &Ciphertext{c1, s.curve.Add(m, kp)}, nil
}

// Decrypt returns C2 - d·C1, which is the plaintext M if ct was encrypted to d·G.
//
// Fails with ecctypes.ErrValidation if ct or one of its components is not on the curve, and with ecctypes.ErrArgument
// if d <= 0.
func (s *Scheme) Decrypt(ct *Ciphertext, d *big.Int) (*ecctypes.Point, error) {
	if ct == nil || !s.onCurve(ct.C1) || !s.onCurve(ct.C2) {
		s.reject("decrypt", "ciphertext not on curve")
		return nil, fmt.Errorf("%w: ciphertext %v is not on the curve", ecctypes.ErrValidation, ct)
	}

	dc1, err := s.curve.ScalarMult(d, ct.C1)
	if err != nil {
		s.reject("decrypt", "invalid private scalar")
		return nil, err
	}

	s.metrics.Operation(metrics.ProtocolEncryption, "decrypt")
	return s.curve.Subtract(ct.C2, dc1), nil
}

func (s *Scheme) onCurve(pt *ecctypes.Point) bool {
	return pt != nil && s.curve.IsOnCurve(pt)
}

func (s *Scheme) reject(operation, reason string) {
	s.logger.WithField("operation", operation).Debug("rejected input: " + reason)
	s.metrics.Rejection(metrics.ProtocolEncryption, operation)
}
