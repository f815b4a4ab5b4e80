package engine

import (
	"fmt"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/env"
)

// Validate выполняет полную валидацию PipelineSpec.
//
// Проверяет:
// - Наличие tracks и уникальность их имён
// - Обязательность селектора worker-ноды
// - Наличие stages и уникальность их имён в пределах track
// - Наличие actions и непустую программу каждого action
// - Корректность env-биндингов (формат NAME=value / NAME+TAG=value)
func Validate(spec *domain.PipelineSpec) error {
	if spec == nil || len(spec.Tracks) == 0 {
		return ErrEmptySpec
	}

	trackNames := make(map[string]bool, len(spec.Tracks))

	for i := range spec.Tracks {
		track := &spec.Tracks[i]

		if err := validateTrack(track, trackNames); err != nil {
			return err
		}
	}

	return nil
}

// validateTrack валидирует один track.
// trackNames — уже встреченные имена tracks (для проверки уникальности).
func validateTrack(track *domain.TrackDef, trackNames map[string]bool) error {
	if track.Name == "" {
		return NewValidationError("", "name", "track has empty name", ErrEmptyTrackName)
	}

	if trackNames[track.Name] {
		return NewValidationError(track.Name, "name",
			fmt.Sprintf("duplicate track name: %s", track.Name), ErrDuplicateTrack)
	}
	trackNames[track.Name] = true

	if track.NodeSelector == "" {
		return NewValidationError(track.Name, "node_selector",
			"track has empty node selector", ErrEmptyNodeSelector)
	}

	for _, binding := range track.Env {
		if _, err := env.ParseBinding(binding); err != nil {
			return NewValidationError(track.Name, "env",
				fmt.Sprintf("bad env binding %q", binding), err)
		}
	}

	if len(track.Stages) == 0 {
		return NewValidationError(track.Name, "stages",
			"track has no stages", ErrEmptyStages)
	}

	stageNames := make(map[string]bool, len(track.Stages))
	for i := range track.Stages {
		if err := validateStage(track.Name, &track.Stages[i], stageNames); err != nil {
			return err
		}
	}

	return nil
}

// validateStage валидирует один stage.
func validateStage(trackName string, stage *domain.StageDef, stageNames map[string]bool) error {
	if stage.Name == "" {
		return NewValidationError(trackName, "stages",
			"stage has empty name", ErrEmptyStageName)
	}

	if stageNames[stage.Name] {
		return NewValidationError(trackName, "stages",
			fmt.Sprintf("duplicate stage name: %s", stage.Name), ErrDuplicateStage)
	}
	stageNames[stage.Name] = true

	if len(stage.Actions) == 0 {
		return NewValidationError(trackName, "actions",
			fmt.Sprintf("stage %s has no actions", stage.Name), ErrEmptyActions)
	}

	for _, action := range stage.Actions {
		if action.Program == "" {
			return NewValidationError(trackName, "actions",
				fmt.Sprintf("stage %s: action has empty program", stage.Name), ErrEmptyProgram)
		}
	}

	return nil
}
