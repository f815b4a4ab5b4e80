package api

import (
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
)

// RunResponse — run в ответе API.
type RunResponse struct {
	ID         string     `json:"id"`
	Pipeline   string     `json:"pipeline"`
	Revision   string     `json:"revision"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RunFromDomain конвертирует domain.Run в RunResponse.
func RunFromDomain(run domain.Run) RunResponse {
	return RunResponse{
		ID:         run.ID.String(),
		Pipeline:   run.Pipeline,
		Revision:   run.Revision,
		Status:     string(run.Status),
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		CreatedAt:  run.CreatedAt,
	}
}

// TrackResponse — результат track в ответе API.
type TrackResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	NodeSelector string          `json:"node_selector"`
	Node         string          `json:"node,omitempty"`
	Status       string          `json:"status"`
	Error        string          `json:"error,omitempty"`
	Stages       []StageResponse `json:"stages"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

// TrackFromDomain конвертирует domain.TrackResult в TrackResponse.
func TrackFromDomain(track domain.TrackResult) TrackResponse {
	stages := make([]StageResponse, len(track.Stages))
	for i, s := range track.Stages {
		stages[i] = StageResponse{
			Name:       s.Name,
			Status:     string(s.Status),
			Error:      s.Error,
			StartedAt:  s.StartedAt,
			FinishedAt: s.FinishedAt,
		}
	}

	return TrackResponse{
		ID:           track.ID.String(),
		Name:         track.Name,
		NodeSelector: track.NodeSelector,
		Node:         track.Node,
		Status:       string(track.Status),
		Error:        track.Error,
		Stages:       stages,
		StartedAt:    track.StartedAt,
		FinishedAt:   track.FinishedAt,
	}
}

// StageResponse — результат stage в ответе API.
type StageResponse struct {
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
