package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "develog"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	postLoads      *prom.CounterVec
	loadDuration   *prom.HistogramVec
	collectionSize prom.Gauge
	buildDuration  prom.Histogram
	buildOutcomes  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		postLoads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_loaded_total",
			Help:      "Post loads by result",
		}, []string{"result"}),
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "post_render_duration_seconds",
			Help:      "Time to read, parse and render one post",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		collectionSize: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Posts in the last loaded collection",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total static build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Static builds by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.postLoads, pr.loadDuration, pr.collectionSize, pr.buildDuration, pr.buildOutcomes)
	return pr
}

func (p *PrometheusRecorder) ObservePostLoad(result string, d time.Duration) {
	if p == nil {
		return
	}
	p.postLoads.WithLabelValues(result).Inc()
	p.loadDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetCollectionSize(n int) {
	if p == nil {
		return
	}
	p.collectionSize.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveBuild(d time.Duration, success bool) {
	if p == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "success"
	}
	p.buildDuration.Observe(d.Seconds())
	p.buildOutcomes.WithLabelValues(outcome).Inc()
}
