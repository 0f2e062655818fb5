package collector

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/sharkmon/internal/reading"
	"github.com/tamzrod/sharkmon/internal/status"
)

// ReadingSource is the read side of the shared gateway.
type ReadingSource interface {
	Snapshot() reading.Reading
}

// StatusSource is the read side of the link status tracker.
type StatusSource interface {
	Snapshot() status.Snapshot
}

// MeterCollector exports the smoothed reading and link health.
type MeterCollector struct {
	readings ReadingSource
	status   StatusSource
	logger   *slog.Logger

	watts          *prometheus.Desc
	volts          *prometheus.Desc
	frequencyHz    *prometheus.Desc
	up             *prometheus.Desc
	initialized    *prometheus.Desc
	secondsInError *prometheus.Desc
	lastSample     *prometheus.Desc
}

// NewMeterCollector creates a collector labelled with the meter endpoint.
func NewMeterCollector(readings ReadingSource, st StatusSource, endpoint string, logger *slog.Logger) *MeterCollector {
	labels := prometheus.Labels{"meter": endpoint}

	return &MeterCollector{
		readings: readings,
		status:   st,
		logger:   logger,

		watts: prometheus.NewDesc(
			"sharkmon_power_watts",
			"Smoothed real power in watts",
			nil, labels,
		),
		volts: prometheus.NewDesc(
			"sharkmon_voltage_volts",
			"Smoothed line voltage in volts",
			nil, labels,
		),
		frequencyHz: prometheus.NewDesc(
			"sharkmon_frequency_hertz",
			"Smoothed line frequency in hertz",
			nil, labels,
		),
		up: prometheus.NewDesc(
			"sharkmon_up",
			"Whether the last poll cycle succeeded (1 = success, 0 = failure or not yet polled)",
			nil, labels,
		),
		initialized: prometheus.NewDesc(
			"sharkmon_reading_initialized",
			"Whether at least one sample has been received since start",
			nil, labels,
		),
		secondsInError: prometheus.NewDesc(
			"sharkmon_seconds_in_error",
			"Seconds since the meter link entered the error state",
			nil, labels,
		),
		lastSample: prometheus.NewDesc(
			"sharkmon_last_sample_timestamp_seconds",
			"Unix time of the last successful poll cycle",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector
func (c *MeterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.watts
	ch <- c.volts
	ch <- c.frequencyHz
	ch <- c.up
	ch <- c.initialized
	ch <- c.secondsInError
	ch <- c.lastSample
}

// Collect implements prometheus.Collector
func (c *MeterCollector) Collect(ch chan<- prometheus.Metric) {
	r := c.readings.Snapshot()
	s := c.status.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.watts, prometheus.GaugeValue, float64(r.Watts))
	ch <- prometheus.MustNewConstMetric(c.volts, prometheus.GaugeValue, float64(r.Volts))
	ch <- prometheus.MustNewConstMetric(c.frequencyHz, prometheus.GaugeValue, float64(r.FrequencyHz))

	up := 0.0
	if s.Health == status.HealthOK {
		up = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, up)

	initialized := 0.0
	if r.Initialized {
		initialized = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.initialized, prometheus.GaugeValue, initialized)

	ch <- prometheus.MustNewConstMetric(c.secondsInError, prometheus.GaugeValue, float64(s.SecondsInError))

	lastSample := 0.0
	if !s.LastSampleAt.IsZero() {
		lastSample = float64(s.LastSampleAt.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(c.lastSample, prometheus.GaugeValue, lastSample)

	c.logger.Debug("Prometheus scrape completed", "watts", r.Watts, "health", s.HealthName)
}
