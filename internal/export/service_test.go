package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/entity"
)

func sampleResult(name string) *entity.ExtractionResult {
	return &entity.ExtractionResult{
		SourceName: name,
		Format:     constants.PlainText,
		Pages:      []entity.PageText{{PageNumber: 1, Text: "reach a@b.com"}},
		Fields:     map[string][]string{"emails": {"a@b.com"}, "phones": {}},
	}
}

func TestSingleRoundTrip(t *testing.T) {
	data, err := NewService(true, nil).Single(sampleResult("letter.txt"))
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Filename != "letter.txt" {
		t.Errorf("filename = %q", doc.Filename)
	}
	if doc.Text != "reach a@b.com" {
		t.Errorf("text = %q", doc.Text)
	}
	if len(doc.Emails) != 1 || doc.Emails[0] != "a@b.com" {
		t.Errorf("emails = %v", doc.Emails)
	}
}

func TestSingleWithoutFields(t *testing.T) {
	data, err := NewService(false, nil).Single(sampleResult("letter.txt"))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["emails"]; ok {
		t.Error("emails must be omitted when fields are disabled")
	}
	if _, ok := raw["phones"]; ok {
		t.Error("phones must be omitted when fields are disabled")
	}
}

func TestArchiveStemCollision(t *testing.T) {
	results := []*entity.ExtractionResult{
		sampleResult("scan.pdf"),
		sampleResult("scan.png"),
	}

	data, err := NewService(true, nil).Archive(results)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "scan.json" || zr.File[1].Name != "scan_2.json" {
		t.Errorf("entries = %s, %s", zr.File[0].Name, zr.File[1].Name)
	}
}

func TestSchemaValidationRejectsBadDocument(t *testing.T) {
	schema := BuildDocumentJSONSchema(true)
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"text":"missing filename"}`)); err == nil {
		t.Error("document without filename must fail validation")
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"filename":"a.txt","text":"ok"}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}
