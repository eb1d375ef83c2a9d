package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCountsLoads(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObservePostLoad(ResultOK, 10*time.Millisecond)
	pr.ObservePostLoad(ResultOK, 20*time.Millisecond)
	pr.ObservePostLoad(ResultNotFound, time.Millisecond)
	pr.SetCollectionSize(2)
	pr.ObserveBuild(time.Second, true)

	assert.Equal(t, 2.0, gathered(t, reg, "develog_posts_loaded_total", ResultOK))
	assert.Equal(t, 1.0, gathered(t, reg, "develog_posts_loaded_total", ResultNotFound))
	assert.Equal(t, 2.0, gathered(t, reg, "develog_collection_size", ""))
	assert.Equal(t, 1.0, gathered(t, reg, "develog_build_outcomes_total", "success"))
}

// gathered returns the counter or gauge value of the series in family name
// whose only label value is label; an empty label matches unlabelled series.
func gathered(t *testing.T, reg *prom.Registry, name, label string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := m.GetLabel()
			if label != "" && (len(labels) != 1 || labels[0].GetValue() != label) {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s{%s} not gathered", name, label)
	return 0
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObservePostLoad(ResultIO, time.Millisecond)
		pr.SetCollectionSize(3)
		pr.ObserveBuild(time.Second, false)
	})
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetCollectionSize(5)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "develog_collection_size 5")
}

func TestNoopRecorderSatisfiesRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObservePostLoad(ResultOK, time.Millisecond)
	r.SetCollectionSize(1)
	r.ObserveBuild(time.Millisecond, true)
}
