package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Init()
	Init()

	ObserveReport("kpis", time.Now(), nil)
	ObserveReport("kpis", time.Now(), errors.New("boom"))
	assert.Equal(t, 2, testutil.CollectAndCount(reportLatency))

	CacheLookup("kpis", true)
	CacheLookup("kpis", true)
	CacheLookup("kpis", false)
	assert.Equal(t, float64(2), testutil.ToFloat64(cacheLookups.WithLabelValues("kpis", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(cacheLookups.WithLabelValues("kpis", "miss")))

	ExportDone("excel", nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(exportsTotal.WithLabelValues("excel", "success")))
}
