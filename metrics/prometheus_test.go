package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus_Fetch(t *testing.T) {
	p := NewPrometheusMetrics()

	p.Fetch("USGS Earthquakes", "ok", 120*time.Millisecond)
	p.Fetch("USGS Earthquakes", "ok", 80*time.Millisecond)
	p.Fetch("USGS Earthquakes", "network", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.Fetches.WithLabelValues("USGS Earthquakes", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Fetches.WithLabelValues("USGS Earthquakes", "network")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.FetchDuration))
}

func TestPrometheus_Fallback(t *testing.T) {
	p := NewPrometheusMetrics()

	p.Fallback("OpenAQ Air Quality", "CoinGecko Crypto Prices")

	assert.Equal(t, 1.0, testutil.ToFloat64(p.Fallbacks.WithLabelValues("OpenAQ Air Quality", "CoinGecko Crypto Prices")))
}
