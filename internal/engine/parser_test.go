package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const specJSON = `{
  "name": "conveyor",
  "revision": "abc123",
  "tracks": [
    {
      "name": "linux",
      "node_selector": "linux",
      "env": ["PATH+CARGO=$HOME/.cargo/bin"],
      "stages": [
        {
          "name": "test",
          "actions": [{"program": "cargo", "args": ["test"]}]
        },
        {
          "name": "build",
          "actions": [{"program": "cargo", "args": ["build", "--release"]}]
        }
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(specJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Name != "conveyor" || spec.Revision != "abc123" {
		t.Errorf("bad spec header: %+v", spec)
	}
	if len(spec.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(spec.Tracks))
	}

	track := spec.Track("linux")
	if track == nil {
		t.Fatal("track linux not found")
	}
	if len(track.Stages) != 2 || track.Stages[0].Name != "test" || track.Stages[1].Name != "build" {
		t.Errorf("stage order not preserved: %+v", track.Stages)
	}
	if track.Stages[1].Actions[0].String() != "cargo build --release" {
		t.Errorf("bad action: %q", track.Stages[1].Actions[0].String())
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParse_InvalidSpec(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "x", "tracks": []}`)); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(specJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Tracks[0].Name != "linux" {
		t.Errorf("bad spec: %+v", spec)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
