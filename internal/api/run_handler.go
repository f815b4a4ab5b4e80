package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/shaiso/Conveyor/internal/telemetry"
)

// ListRuns возвращает последние runs.
// GET /api/v1/runs?limit=...
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			BadRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.runRepo.List(r.Context(), limit)
	if HandleRepoError(w, telemetry.FromContext(r.Context()), err, "") {
		return
	}

	result := make([]RunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}

	List(w, result, len(result))
}

// GetRun возвращает run по ID вместе с результатами tracks.
// GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, telemetry.FromContext(r.Context()), err, "run not found") {
		return
	}

	tracks, err := h.trackRepo.ListByRun(r.Context(), id)
	if HandleRepoError(w, telemetry.FromContext(r.Context()), err, "") {
		return
	}

	resp := struct {
		RunResponse
		Tracks []TrackResponse `json:"tracks"`
	}{RunResponse: RunFromDomain(*run)}

	resp.Tracks = make([]TrackResponse, len(tracks))
	for i, t := range tracks {
		resp.Tracks[i] = TrackFromDomain(t)
	}

	Success(w, resp)
}

// ListRunTracks возвращает результаты tracks для run.
// GET /api/v1/runs/{id}/tracks
func (h *Handler) ListRunTracks(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	// Проверяем, что run существует
	if _, err := h.runRepo.GetByID(r.Context(), id); HandleRepoError(w, telemetry.FromContext(r.Context()), err, "run not found") {
		return
	}

	tracks, err := h.trackRepo.ListByRun(r.Context(), id)
	if HandleRepoError(w, telemetry.FromContext(r.Context()), err, "") {
		return
	}

	result := make([]TrackResponse, len(tracks))
	for i, t := range tracks {
		result[i] = TrackFromDomain(t)
	}

	List(w, result, len(result))
}
