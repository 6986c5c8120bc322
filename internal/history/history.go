package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/pipeline"
)

const filePrefix = "signals_"

// Run is one persisted signal-generation run.
type Run struct {
	RunID       string         `json:"run_id"`
	Instance    string         `json:"instance,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       pipeline.Stats `json:"stats"`
	Signals     []model.Signal `json:"signals"`
}

// NewRun stamps a signal sequence with a fresh run id.
func NewRun(instance string, generatedAt time.Time, stats pipeline.Stats, signals []model.Signal) Run {
	return Run{
		RunID:       uuid.NewString(),
		Instance:    instance,
		GeneratedAt: generatedAt.UTC(),
		Stats:       stats,
		Signals:     signals,
	}
}

// Write persists the run as signals_YYYY-MM-DD.json in dir, creating the
// directory if needed. A second run on the same date overwrites the file;
// the snapshot store, not the artifact, is the source of truth for history.
func Write(dir string, run Run) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create history directory: %w", err)
	}

	path := filepath.Join(dir, fileName(run.GeneratedAt))

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write history file: %w", err)
	}

	return path, nil
}

// Load reads one run artifact.
func Load(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("read history file: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("parse history file %s: %w", filepath.Base(path), err)
	}

	return run, nil
}

// List returns the run artifact paths in dir, oldest first. The date-stamped
// names sort chronologically.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadLast loads up to n of the most recent runs, oldest first. Files that
// fail to parse are skipped rather than failing the whole read.
func LoadLast(dir string, n int) ([]Run, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}

	if n > 0 && len(paths) > n {
		paths = paths[len(paths)-n:]
	}

	runs := make([]Run, 0, len(paths))
	for _, path := range paths {
		run, err := Load(path)
		if err != nil {
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func fileName(at time.Time) string {
	return filePrefix + at.UTC().Format("2006-01-02") + ".json"
}
