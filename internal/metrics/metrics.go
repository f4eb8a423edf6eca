package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ecc"

// Protocol names used as label values.
const (
	ProtocolKeyExchange = "keyexchange"
	ProtocolSignature   = "signature"
	ProtocolEncryption  = "encryption"
)

// Metrics counts protocol operations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations   *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	nonceRetries prometheus.Counter
}

// New creates the protocol metrics and registers them with reg. If reg is nil, the metrics are not registered but
// remain usable. If the collectors are already registered with reg (e.g. by a second protocol instance), the existing
// collectors are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of completed protocol operations.",
		}, []string{"protocol", "operation"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Number of rejected inputs and failed signature verifications.",
		}, []string{"protocol", "operation"}),
		nonceRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_nonce_retries_total",
			Help:      "Number of signing nonces discarded because r or s was zero.",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.rejections, err = register(reg, m.rejections); err != nil {
		return nil, err
	}
	if m.nonceRetries, err = register(reg, m.nonceRetries); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) Operation(protocol, operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(protocol, operation).Inc()
}

func (m *Metrics) Rejection(protocol, operation string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(protocol, operation).Inc()
}

func (m *Metrics) NonceRetry() {
	if m == nil {
		return
	}
	m.nonceRetries.Inc()
}
