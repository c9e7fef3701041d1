// Package metrics records decision-pass telemetry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per notable step of a tick.
type Recorder interface {
	ObserveDecision(behavior string, moved bool)
	ObserveEviction(reason string)
	// ObservePathQuery counts exact shortest-path calls by the behavior that
	// issued them, which is what the distance tiering exists to bound.
	ObservePathQuery(purpose string)
	ObserveDistanceTier(tier string)
	ObserveTick(duration time.Duration, pending int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveDecision(string, bool)   {}
func (Nop) ObserveEviction(string)         {}
func (Nop) ObservePathQuery(string)        {}
func (Nop) ObserveDistanceTier(string)     {}
func (Nop) ObserveTick(time.Duration, int) {}

// Prometheus implements Recorder with Prometheus collectors.
type Prometheus struct {
	decisions    *prometheus.CounterVec
	evictions    *prometheus.CounterVec
	pathQueries  *prometheus.CounterVec
	tiers        *prometheus.CounterVec
	tickDuration prometheus.Histogram
	pending      prometheus.Gauge
}

// NewPrometheus registers the hive collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hive_behavior_decisions_total",
				Help: "Behaviors chosen by drones, by behavior and whether a move was issued",
			},
			[]string{"behavior", "moved"},
		),
		evictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hive_nest_evictions_total",
				Help: "Pending nest sites evicted during reconciliation",
			},
			[]string{"reason"},
		),
		pathQueries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hive_path_queries_total",
				Help: "Exact shortest-path queries issued, by purpose",
			},
			[]string{"purpose"},
		),
		tiers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hive_distance_tier_total",
				Help: "Distance tier used for the drone's working enemy distance",
			},
			[]string{"tier"},
		),
		tickDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hive_tick_duration_seconds",
				Help:    "Wall time of a full decision pass",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
			},
		),
		pending: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "hive_pending_nests",
				Help: "Pending nest sites after the last decision pass",
			},
		),
	}
}

func (p *Prometheus) ObserveDecision(behavior string, moved bool) {
	p.decisions.WithLabelValues(behavior, strconv.FormatBool(moved)).Inc()
}

func (p *Prometheus) ObserveEviction(reason string) {
	p.evictions.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ObservePathQuery(purpose string) {
	p.pathQueries.WithLabelValues(purpose).Inc()
}

func (p *Prometheus) ObserveDistanceTier(tier string) {
	p.tiers.WithLabelValues(tier).Inc()
}

func (p *Prometheus) ObserveTick(duration time.Duration, pending int) {
	p.tickDuration.Observe(duration.Seconds())
	p.pending.Set(float64(pending))
}
