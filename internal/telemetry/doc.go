// Package telemetry обеспечивает наблюдаемость pipeline.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики
//
// Метрики экспортируются на /metrics endpoint в serve-режиме.
package telemetry
