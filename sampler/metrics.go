// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registerer prometheus.Registerer

	temperature prometheus.Gauge
	raw         prometheus.Gauge
	lastSample  prometheus.Gauge
	samples     prometheus.Counter
	failures    prometheus.Counter
}

func newMetrics(namespace string) *metrics {
	return &metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "physical",
			Name:      "temperature_celsius",
			Help:      "Last temperature logged (C).",
		}),
		raw: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "physical",
			Name:      "adc_raw",
			Help:      "Last raw 16-bit sample read from the sensor.",
		}),
		lastSample: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "physical",
			Name:      "last_sample_timestamp_seconds",
			Help:      "Unix time of the last record logged.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "physical",
			Name:      "samples_total",
			Help:      "Total records logged.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "physical",
			Name:      "failures_total",
			Help:      "Total samples skipped because of a read or write failure.",
		}),
	}
}

func (m *metrics) register() error {
	if m.registerer == nil {
		return nil
	}

	for _, c := range []prometheus.Collector{m.temperature, m.raw, m.lastSample, m.samples, m.failures} {
		if err := m.registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) success(r Result) {
	m.temperature.Set(r.Reading.Temperature.Celsius())
	m.raw.Set(float64(r.Reading.Raw))
	m.lastSample.Set(float64(r.Time.Unix()))
	m.samples.Inc()
}

func (m *metrics) failure() {
	m.failures.Inc()
}

// textfile rewrites a node_exporter textfile collector file.
type textfile struct {
	path     string
	gatherer prometheus.Gatherer
}

func (t *textfile) write() error {
	if t == nil || t.path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(t.path, t.gatherer)
}

// WithMetrics registers the sampler metrics with r.
func WithMetrics(r prometheus.Registerer) Option {
	return optionFunc(func(s *Sampler) {
		s.metrics.registerer = r
	})
}

// WithTextfile writes the metrics gathered from g to path after every sample.
// An empty path disables the file.
func WithTextfile(path string, g prometheus.Gatherer) Option {
	return optionFunc(func(s *Sampler) {
		s.textfile = &textfile{
			path:     path,
			gatherer: g,
		}
	})
}
