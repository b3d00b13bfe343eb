// Package metrics exposes Prometheus metrics for the bcd-clock daemon.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's collectors.
// All methods are safe for concurrent use.
type Metrics struct {
	ticks         prometheus.Counter
	buttonPushes  *prometheus.CounterVec
	gpioErrors    *prometheus.CounterVec
	adjustments   *prometheus.CounterVec
	publishErrors *prometheus.CounterVec

	secondOfDay   prometheus.Gauge
	mqttConnected prometheus.Gauge

	pollDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to avoid the global registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcdclock_ticks_total",
			Help: "Total number of one-second ticks applied to the clock",
		}),

		buttonPushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcdclock_button_pushes_total",
				Help: "Total number of debounced push starts per button",
			},
			[]string{"button"},
		),

		gpioErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcdclock_gpio_errors_total",
				Help: "Total number of failed pin reads per button",
			},
			[]string{"button"},
		),

		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcdclock_adjustments_total",
				Help: "Total number of clock adjustments by op and outcome",
			},
			[]string{"op", "outcome"}, // outcome: applied, rejected
		),

		publishErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcdclock_publish_errors_total",
				Help: "Total number of failed MQTT publishes by topic kind",
			},
			[]string{"kind"}, // button, system
		),

		secondOfDay: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bcdclock_seconds_of_day",
			Help: "Current clock value as seconds since midnight",
		}),

		mqttConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bcdclock_mqtt_connected",
			Help: "1 if the MQTT broker connection is open",
		}),

		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bcdclock_poll_duration_seconds",
			Help:    "Time taken to poll every button once",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
		}),

		gatherer: reg,
	}

	reg.MustRegister(
		m.ticks,
		m.buttonPushes,
		m.gpioErrors,
		m.adjustments,
		m.publishErrors,
		m.secondOfDay,
		m.mqttConnected,
		m.pollDuration,
	)

	return m
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Tick records one clock tick and the resulting time of day.
func (m *Metrics) Tick(secondOfDay int) {
	m.ticks.Inc()
	m.secondOfDay.Set(float64(secondOfDay))
}

// SetSecondOfDay updates the time-of-day gauge without counting a tick.
func (m *Metrics) SetSecondOfDay(secondOfDay int) {
	m.secondOfDay.Set(float64(secondOfDay))
}

// Push records a debounced push start.
func (m *Metrics) Push(button string) {
	m.buttonPushes.WithLabelValues(button).Inc()
}

// GPIOError records a failed pin read.
func (m *Metrics) GPIOError(button string) {
	m.gpioErrors.WithLabelValues(button).Inc()
}

// Adjustment records an adjustment command.
func (m *Metrics) Adjustment(op string, applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "rejected"
	}
	m.adjustments.WithLabelValues(op, outcome).Inc()
}

// PublishError records a failed MQTT publish.
func (m *Metrics) PublishError(kind string) {
	m.publishErrors.WithLabelValues(kind).Inc()
}

// SetMQTTConnected updates the connection gauge.
func (m *Metrics) SetMQTTConnected(connected bool) {
	if connected {
		m.mqttConnected.Set(1)
	} else {
		m.mqttConnected.Set(0)
	}
}

// ObservePoll records how long one poll cycle took.
func (m *Metrics) ObservePoll(d time.Duration) {
	m.pollDuration.Observe(d.Seconds())
}
