package engine

import (
	"errors"
	"testing"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/env"
)

// validSpec возвращает минимальный корректный spec.
func validSpec() *domain.PipelineSpec {
	return &domain.PipelineSpec{
		Name:     "test",
		Revision: "HEAD",
		Tracks: []domain.TrackDef{
			{
				Name:         "linux",
				NodeSelector: "linux",
				Env:          []string{"PATH+CARGO=$HOME/.cargo/bin"},
				Stages: []domain.StageDef{
					{
						Name: "build",
						Actions: []domain.ActionDef{
							{Program: "cargo", Args: []string{"build", "--release"}},
						},
					},
				},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validSpec()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptySpec(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("nil spec: expected ErrEmptySpec, got %v", err)
	}
	if err := Validate(&domain.PipelineSpec{}); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("no tracks: expected ErrEmptySpec, got %v", err)
	}
}

func TestValidate_TrackErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PipelineSpec)
		wantErr error
	}{
		{
			name:    "empty track name",
			mutate:  func(s *domain.PipelineSpec) { s.Tracks[0].Name = "" },
			wantErr: ErrEmptyTrackName,
		},
		{
			name: "duplicate track name",
			mutate: func(s *domain.PipelineSpec) {
				s.Tracks = append(s.Tracks, s.Tracks[0])
			},
			wantErr: ErrDuplicateTrack,
		},
		{
			name:    "empty node selector",
			mutate:  func(s *domain.PipelineSpec) { s.Tracks[0].NodeSelector = "" },
			wantErr: ErrEmptyNodeSelector,
		},
		{
			name:    "no stages",
			mutate:  func(s *domain.PipelineSpec) { s.Tracks[0].Stages = nil },
			wantErr: ErrEmptyStages,
		},
		{
			name:    "empty stage name",
			mutate:  func(s *domain.PipelineSpec) { s.Tracks[0].Stages[0].Name = "" },
			wantErr: ErrEmptyStageName,
		},
		{
			name: "duplicate stage name",
			mutate: func(s *domain.PipelineSpec) {
				s.Tracks[0].Stages = append(s.Tracks[0].Stages, s.Tracks[0].Stages[0])
			},
			wantErr: ErrDuplicateStage,
		},
		{
			name:    "no actions",
			mutate:  func(s *domain.PipelineSpec) { s.Tracks[0].Stages[0].Actions = nil },
			wantErr: ErrEmptyActions,
		},
		{
			name: "empty program",
			mutate: func(s *domain.PipelineSpec) {
				s.Tracks[0].Stages[0].Actions[0].Program = ""
			},
			wantErr: ErrEmptyProgram,
		},
		{
			name: "malformed env binding",
			mutate: func(s *domain.PipelineSpec) {
				s.Tracks[0].Env = []string{"NOEQUALS"}
			},
			wantErr: env.ErrMalformedBinding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(spec)

			err := Validate(spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			// Все ошибки tracks оборачиваются в ValidationError
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}
