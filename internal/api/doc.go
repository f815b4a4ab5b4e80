// Package api — HTTP API истории runs.
//
// API read-only: запуском pipeline управляет CLI и scheduler, API
// отдаёт историю из БД. Если БД недоступна, API не монтируется.
package api
