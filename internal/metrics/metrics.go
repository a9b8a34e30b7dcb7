// Package metrics holds the Prometheus collectors for card registration.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the client. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	Registrations *prometheus.CounterVec
	InFlight      prometheus.Gauge
	Duration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Collectors that
// are already registered, for example by an earlier client on the same
// registry, are reused. A nil reg yields a nil *Metrics.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dwaplatform",
		Name:      "card_registrations_total",
		Help:      "Card registration attempts by terminal outcome",
	}, []string{"outcome"})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dwaplatform",
		Name:      "card_registrations_in_flight",
		Help:      "Card registrations submitted to the transport and not yet completed",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dwaplatform",
		Name:      "card_registration_duration_seconds",
		Help:      "Time from transport submission to classified outcome",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	m := &Metrics{}
	var err error
	if m.Registrations, err = register(reg, registrations); err != nil {
		return nil, err
	}
	if m.InFlight, err = register(reg, inFlight); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, duration); err != nil {
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

// Submitted records a request handed to the transport.
func (m *Metrics) Submitted() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

// Completed records a transport completion with its classified outcome.
func (m *Metrics) Completed(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.Registrations.WithLabelValues(outcome).Inc()
	m.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Rejected records a registration refused before any network access.
func (m *Metrics) Rejected(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}
