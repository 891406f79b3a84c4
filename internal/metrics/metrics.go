// Package metrics exports trapdoor search statistics to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
)

const namespace = "dualec"

// Collector records every completed search. It implements dualec.Observer.
type Collector struct {
	enumerated *prometheus.CounterVec
	residues   *prometheus.CounterVec
	candidates *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
}

var _ dualec.Observer = (*Collector)(nil)

// NewCollector creates the search metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	labels := []string{"strategy"}
	c := &Collector{
		enumerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "enumerated_total",
			Help:      "High-bit prefixes and degenerate low values visited by trapdoor searches.",
		}, labels),
		residues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "residues_total",
			Help:      "Reconstructed x coordinates that lifted to a curve point.",
		}, labels),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "candidates",
			Help:      "Seed candidates returned by the most recent search.",
		}, append(labels, "truncation_bits")),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time of trapdoor searches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, labels),
	}

	for _, m := range []prometheus.Collector{c.enumerated, c.residues, c.candidates, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveSearch implements dualec.Observer.
func (c *Collector) ObserveSearch(r *dualec.RecoveryResult) {
	c.enumerated.WithLabelValues(r.Strategy).Add(float64(r.Enumerated + r.DegenerateEnumerated))
	c.residues.WithLabelValues(r.Strategy).Add(float64(r.Residues))
	c.candidates.WithLabelValues(r.Strategy, strconv.FormatUint(uint64(r.TruncationBits), 10)).Set(float64(len(r.Seeds)))
	c.duration.WithLabelValues(r.Strategy).Observe(r.Elapsed.Seconds())
}
