// Package metrics exports the outcome of a run in the Prometheus text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/melanx/mrnotify/pkg/detector"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mrnotify"

type RunMetrics struct {
	registry            *prometheus.Registry
	trackedProjects     prometheus.Gauge
	newProjects         prometheus.Counter
	missingProjects     prometheus.Counter
	newVersions         prometheus.Counter
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter
	runDuration         prometheus.Gauge
	lastSuccess         prometheus.Gauge
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		trackedProjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tracked_projects",
			Help: "Number of projects tracked in the last run.",
		}),
		newProjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "new_projects_total",
			Help: "Projects seen for the first time.",
		}),
		missingProjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "missing_projects_total",
			Help: "Tracked projects that were not returned by the API.",
		}),
		newVersions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "new_versions_total",
			Help: "Versions detected as new.",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_sent_total",
			Help: "New versions announced to all notifiers.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_failed_total",
			Help: "New versions that could not be announced.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help: "Duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
	m.registry.MustRegister(
		m.trackedProjects,
		m.newProjects,
		m.missingProjects,
		m.newVersions,
		m.notificationsSent,
		m.notificationsFailed,
		m.runDuration,
		m.lastSuccess,
	)
	return m
}

// Records the result of a successful run.
func (m *RunMetrics) Record(result *detector.RunResult, duration time.Duration, finishedAt time.Time) {
	m.trackedProjects.Set(float64(result.TrackedProjects))
	m.newProjects.Add(float64(len(result.NewProjects)))
	m.missingProjects.Add(float64(len(result.MissingProjects)))
	m.newVersions.Add(float64(len(result.Notified) + len(result.Failed)))
	m.notificationsSent.Add(float64(len(result.Notified)))
	m.notificationsFailed.Add(float64(len(result.Failed)))
	m.runDuration.Set(duration.Seconds())
	m.lastSuccess.Set(float64(finishedAt.Unix()))
}

// Gets the registry holding all metrics.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Writes the metrics to a file that can be picked up by the node_exporter textfile collector.
func (m *RunMetrics) WriteToFile(filePath string) error {
	if err := prometheus.WriteToTextfile(filePath, m.registry); err != nil {
		return fmt.Errorf("failed writing metrics to '%s': %w", filePath, err)
	}
	return nil
}
