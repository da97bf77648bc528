package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/docstract/docstract/internal/entity"
)

// Document is the serialized shape of one exported extraction.
// Emails and Phones are present only when the service is configured to
// include derived fields.
type Document struct {
	Filename string   `json:"filename"`
	Text     string   `json:"text"`
	Emails   []string `json:"emails,omitempty"`
	Phones   []string `json:"phones,omitempty"`
}

// Service serializes extraction results into downloadable artifacts:
// a single JSON document, or a ZIP with one JSON per result.
type Service struct {
	includeFields bool
	schema        map[string]any
	logger        *slog.Logger
}

func NewService(includeFields bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		includeFields: includeFields,
		schema:        BuildDocumentJSONSchema(includeFields),
		logger:        logger,
	}
}

// Single serializes one result to a JSON document, validated against the
// export schema.
func (s *Service) Single(res *entity.ExtractionResult) ([]byte, error) {
	doc := Document{
		Filename: res.SourceName,
		Text:     res.Text(),
	}
	if s.includeFields && res.Fields != nil {
		doc.Emails = res.Fields["emails"]
		doc.Phones = res.Fields["phones"]
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := ValidateJSONAgainstSchema(s.schema, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Archive zips the given results, one "<stem>.json" entry each. An empty
// input produces an empty, valid ZIP, not an error. Colliding stems are
// disambiguated with a numeric suffix.
func (s *Service) Archive(results []*entity.ExtractionResult) ([]byte, error) {
	start := time.Now()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	used := make(map[string]int)

	for _, res := range results {
		b, err := s.Single(res)
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", res.SourceName, err)
		}

		name := res.Stem()
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}

		f, err := w.Create(name + ".json")
		if err != nil {
			return nil, fmt.Errorf("zip entry: %w", err)
		}
		if _, err := f.Write(b); err != nil {
			return nil, fmt.Errorf("zip write: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}

	s.logger.Info("export.archive.ok",
		"documents", len(results),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
