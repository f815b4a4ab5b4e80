package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики pipeline. Регистрируются в default registry и отдаются
// через promhttp.Handler() в serve-режиме.
var (
	// RunsTotal — количество завершённых runs по статусам.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "conveyor",
		Name:      "runs_total",
		Help:      "Completed pipeline runs by status.",
	}, []string{"status"})

	// TracksTotal — количество завершённых tracks по track и статусу.
	TracksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "conveyor",
		Name:      "tracks_total",
		Help:      "Completed tracks by name and status.",
	}, []string{"track", "status"})

	// StageDuration — длительность stages в секундах.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "conveyor",
		Name:      "stage_duration_seconds",
		Help:      "Stage wall time by track and stage.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s .. ~1h
	}, []string{"track", "stage", "status"})

	// NodeWait — время ожидания worker-ноды.
	NodeWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "conveyor",
		Name:      "node_wait_seconds",
		Help:      "Time spent waiting for a worker node.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"selector"})
)

// ObserveRun учитывает завершённый run.
func ObserveRun(status string) {
	RunsTotal.WithLabelValues(status).Inc()
}

// ObserveTrack учитывает завершённый track.
func ObserveTrack(track, status string) {
	TracksTotal.WithLabelValues(track, status).Inc()
}

// ObserveStage учитывает завершённый stage.
func ObserveStage(track, stage, status string, elapsed time.Duration) {
	StageDuration.WithLabelValues(track, stage, status).Observe(elapsed.Seconds())
}

// ObserveNodeWait учитывает время ожидания ноды.
func ObserveNodeWait(selector string, elapsed time.Duration) {
	NodeWait.WithLabelValues(selector).Observe(elapsed.Seconds())
}
