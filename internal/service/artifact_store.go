package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResultRow is one original/summary pair in a batch result artifact.
type ResultRow struct {
	Original string `json:"original"`
	Summary  string `json:"summary"`
}

// TemplateFilename is the name of the downloadable CSV template.
const TemplateFilename = "abstracts_template.csv"

// TemplateContent is the CSV template served to users preparing a batch upload.
const TemplateContent = "abstract\n\"Example abstract goes here...\"\n"

// ArtifactStore keeps batch result files on disk. Artifacts are written once
// at batch completion and read repeatedly afterward; they are never mutated
// and never deleted by the application.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a store rooted at dir, creating it if necessary.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// ArtifactFilename derives the artifact name for a batch identifier.
func ArtifactFilename(batchID string) string {
	return fmt.Sprintf("batch_summary_%s.csv", batchID)
}

// Path resolves filename inside the store. Names that escape the store
// directory are rejected.
func (s *ArtifactStore) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid artifact filename %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}

// Write creates the artifact with a header row and one data row per result.
// A batch with zero successful rows still produces a header-only file.
func (s *ArtifactStore) Write(filename string, rows []ResultRow) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"original", "summary"}); err != nil {
		return fmt.Errorf("write artifact header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Original, row.Summary}); err != nil {
			return fmt.Errorf("write artifact row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush artifact: %w", err)
	}
	return nil
}

// Read returns all data rows of an artifact.
func (s *ArtifactStore) Read(filename string) ([]ResultRow, error) {
	path, err := s.Path(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var rows []ResultRow
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) < 2 {
			continue
		}
		rows = append(rows, ResultRow{Original: record[0], Summary: record[1]})
	}
	return rows, nil
}

// WriteTemplate materializes the upload template and returns its path.
func (s *ArtifactStore) WriteTemplate() (string, error) {
	path, err := s.Path(TemplateFilename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(TemplateContent), 0o644); err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}
	return path, nil
}
