package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestTick(t *testing.T) {
	m := newTestMetrics(t)

	m.Tick(3600)
	m.Tick(3601)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 3601.0, testutil.ToFloat64(m.secondOfDay))

	m.SetSecondOfDay(10)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.secondOfDay))
}

func TestButtonCounters(t *testing.T) {
	m := newTestMetrics(t)

	m.Push("set")
	m.Push("set")
	m.Push("hour")
	m.GPIOError("minute")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.buttonPushes.WithLabelValues("set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.buttonPushes.WithLabelValues("hour")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gpioErrors.WithLabelValues("minute")))
}

func TestAdjustmentOutcome(t *testing.T) {
	m := newTestMetrics(t)

	m.Adjustment("set", true)
	m.Adjustment("set", false)
	m.Adjustment("set", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.adjustments.WithLabelValues("set", "applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.adjustments.WithLabelValues("set", "rejected")))
}

func TestMQTTConnectedGauge(t *testing.T) {
	m := newTestMetrics(t)

	m.SetMQTTConnected(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mqttConnected))
	m.SetMQTTConnected(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.mqttConnected))

	m.PublishError("system")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishErrors.WithLabelValues("system")))
}

func TestPollHistogram(t *testing.T) {
	m := newTestMetrics(t)
	m.ObservePoll(50 * time.Microsecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.pollDuration))
}

func TestHandler(t *testing.T) {
	m := newTestMetrics(t)
	m.Tick(5)
	m.Push("set")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "bcdclock_ticks_total 1")
	assert.Contains(t, string(body), `bcdclock_button_pushes_total{button="set"} 1`)
	assert.Contains(t, string(body), "bcdclock_seconds_of_day 5")
}

func TestDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
