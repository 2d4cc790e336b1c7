// Package metrics exports tree events as Prometheus collectors.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/e11jah/pavl"
)

type Metrics struct {
	inserts      *prometheus.CounterVec
	rotations    *prometheus.CounterVec
	toggles      prometheus.Counter
	measurements *prometheus.CounterVec
	pruned       prometheus.Counter
	deleted      prometheus.Counter
	entries      prometheus.Gauge
}

// New registers the collectors on reg. A nil reg registers nothing, which
// keeps the collectors usable in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		inserts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pavl_inserts_total",
			Help: "Number of insert calls, by whether the key was new or updated",
		}, []string{"kind"}),
		rotations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pavl_rotations_total",
			Help: "Number of single rotations performed while rebalancing",
		}, []string{"direction"}),
		toggles: f.NewCounter(prometheus.CounterOpts{
			Name: "pavl_tag_toggles_total",
			Help: "Number of structural tag toggles caused by measurements and updates",
		}),
		measurements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pavl_measurements_total",
			Help: "Number of measurements applied, by result",
		}, []string{"result"}),
		pruned: f.NewCounter(prometheus.CounterOpts{
			Name: "pavl_pruned_total",
			Help: "Number of entries deleted by the pruning rule",
		}),
		deleted: f.NewCounter(prometheus.CounterOpts{
			Name: "pavl_deleted_total",
			Help: "Number of entries deleted explicitly",
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Name: "pavl_entries",
			Help: "Number of entries currently held",
		}),
	}
}

// Hook returns a pavl.Hook feeding these collectors.
func (m *Metrics) Hook() pavl.Hook {
	return func(e pavl.Event) {
		switch e.Kind {
		case pavl.EventInsert:
			m.inserts.WithLabelValues("new").Inc()
			m.entries.Inc()
		case pavl.EventUpdate:
			m.inserts.WithLabelValues("update").Inc()
		case pavl.EventRotateLeft:
			m.rotations.WithLabelValues("left").Inc()
		case pavl.EventRotateRight:
			m.rotations.WithLabelValues("right").Inc()
		case pavl.EventToggle:
			m.toggles.Inc()
		case pavl.EventMeasure:
			if e.FailStreak == 0 {
				m.measurements.WithLabelValues("pass").Inc()
			} else {
				m.measurements.WithLabelValues("fail").Inc()
			}
		case pavl.EventPrune:
			m.pruned.Inc()
			m.entries.Dec()
		case pavl.EventDelete:
			m.deleted.Inc()
			m.entries.Dec()
		}
	}
}

// WriteText writes everything g gathers in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot sums every gathered series per metric name.
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = sum(mf)
	}
	return out, nil
}

func sum(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.GetCounter() != nil:
			total += m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			total += m.GetGauge().GetValue()
		case m.GetUntyped() != nil:
			total += m.GetUntyped().GetValue()
		}
	}
	return total
}
