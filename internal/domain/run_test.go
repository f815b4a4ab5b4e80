package domain

import (
	"testing"
)

func twoTrackSpec() *PipelineSpec {
	return &PipelineSpec{
		Name:     "ci",
		Revision: "abc123",
		Tracks: []TrackDef{
			{
				Name:         "linux",
				NodeSelector: "linux",
				Stages: []StageDef{
					{Name: "checkout", Actions: []ActionDef{{Program: "git", Args: []string{"reset"}}}},
					{Name: "build", Actions: []ActionDef{{Program: "cargo", Args: []string{"build"}}}},
				},
			},
			{
				Name:         "win64",
				NodeSelector: "linux",
				Stages: []StageDef{
					{Name: "checkout", Actions: []ActionDef{{Program: "git", Args: []string{"reset"}}}},
					{Name: "build", Actions: []ActionDef{{Program: "cargo", Args: []string{"build"}}}},
				},
			},
		},
	}
}

func TestNewRun(t *testing.T) {
	run := NewRun(twoTrackSpec())

	if run.Status != RunStatusPending {
		t.Errorf("status = %s, want PENDING", run.Status)
	}
	if run.Pipeline != "ci" || run.Revision != "abc123" {
		t.Errorf("pipeline/revision = %s/%s", run.Pipeline, run.Revision)
	}
	if len(run.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(run.Tracks))
	}

	for i := range run.Tracks {
		track := &run.Tracks[i]
		if track.RunID != run.ID {
			t.Errorf("track %s run_id mismatch", track.Name)
		}
		if track.Status != TrackStatusPending {
			t.Errorf("track %s status = %s, want PENDING", track.Name, track.Status)
		}
		if len(track.Stages) != 2 {
			t.Errorf("track %s stages = %d, want 2", track.Name, len(track.Stages))
		}
		for j := range track.Stages {
			if track.Stages[j].Status != StageStatusPending {
				t.Errorf("stage %s status = %s", track.Stages[j].Name, track.Stages[j].Status)
			}
		}
	}
}

func TestMarkFinished(t *testing.T) {
	tests := []struct {
		name       string
		linux      func(t *TrackResult)
		win64      func(t *TrackResult)
		wantStatus RunStatus
	}{
		{
			name:       "all succeeded",
			linux:      func(t *TrackResult) { t.MarkSucceeded() },
			win64:      func(t *TrackResult) { t.MarkSucceeded() },
			wantStatus: RunStatusSucceeded,
		},
		{
			name:       "one failed",
			linux:      func(t *TrackResult) { t.MarkFailed("stage test: exit 1") },
			win64:      func(t *TrackResult) { t.MarkSucceeded() },
			wantStatus: RunStatusFailed,
		},
		{
			name:       "all failed",
			linux:      func(t *TrackResult) { t.MarkFailed("boom") },
			win64:      func(t *TrackResult) { t.MarkFailed("boom") },
			wantStatus: RunStatusFailed,
		},
		{
			name:       "cancelled wins over failed",
			linux:      func(t *TrackResult) { t.MarkFailed("boom") },
			win64:      func(t *TrackResult) { t.MarkCancelled() },
			wantStatus: RunStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := NewRun(twoTrackSpec())
			run.MarkRunning()
			tt.linux(&run.Tracks[0])
			tt.win64(&run.Tracks[1])

			run.MarkFinished()

			if run.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", run.Status, tt.wantStatus)
			}
			if !run.IsFinished() {
				t.Error("run is not finished")
			}
			if run.FinishedAt == nil {
				t.Error("FinishedAt is not set")
			}
		})
	}
}

func TestMarkFinished_ErrorNamesFailedTrack(t *testing.T) {
	run := NewRun(twoTrackSpec())
	run.MarkRunning()
	run.Tracks[0].MarkFailed("stage test: exit 1")
	run.Tracks[1].MarkSucceeded()

	run.MarkFinished()

	want := "track linux: stage test: exit 1"
	if run.Error != want {
		t.Errorf("error = %q, want %q", run.Error, want)
	}
}

func TestTrackResult_FailedStage(t *testing.T) {
	run := NewRun(twoTrackSpec())
	track := &run.Tracks[0]

	if got := track.FailedStage(); got != "" {
		t.Errorf("FailedStage = %q, want empty", got)
	}

	track.Stages[0].MarkRunning()
	track.Stages[0].MarkSucceeded()
	track.Stages[1].MarkRunning()
	track.Stages[1].MarkFailed("exit 1")

	if got := track.FailedStage(); got != "build" {
		t.Errorf("FailedStage = %q, want build", got)
	}
}

func TestActionDef_String(t *testing.T) {
	action := ActionDef{Program: "cargo", Args: []string{"build", "--release"}}
	if got := action.String(); got != "cargo build --release" {
		t.Errorf("String = %q", got)
	}

	bare := ActionDef{Program: "ls"}
	if got := bare.String(); got != "ls" {
		t.Errorf("String = %q", got)
	}
}
