package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Parse разбирает PipelineSpec из JSON и валидирует его.
func Parse(data []byte) (*domain.PipelineSpec, error) {
	var spec domain.PipelineSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse pipeline spec: %w", err)
	}

	if err := Validate(&spec); err != nil {
		return nil, err
	}

	return &spec, nil
}

// LoadFile читает и разбирает PipelineSpec из файла.
func LoadFile(path string) (*domain.PipelineSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline spec %s: %w", path, err)
	}

	return Parse(data)
}
