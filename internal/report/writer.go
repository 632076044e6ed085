package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/juparave/baseline/internal/domain"
	"github.com/juparave/baseline/internal/util"
)

// Writer persists analysis results as JSON files
type Writer struct {
	outputDir string
}

// NewWriter creates a Writer rooted at outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// FileName returns the result file name for a project
func FileName(project string) string {
	return fmt.Sprintf("baseline_%s.json", project)
}

// Write serializes the result to <outputDir>/baseline_<project>.json,
// creating the directory if needed and replacing any previous file.
func (w *Writer) Write(result *domain.AnalysisResult) (string, error) {
	if err := util.EnsureDir(w.outputDir); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, FileName(result.Project))

	out := *result
	if out.Findings == nil {
		out.Findings = []domain.Finding{}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating result file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding result: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing result file: %w", err)
	}

	return path, nil
}
