package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

// StructuredDocStrategy extracts paragraph-level text from a .docx file,
// preserving paragraph order and discarding styling. The whole document maps
// to a single page.
type StructuredDocStrategy struct{}

func (s *StructuredDocStrategy) Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error) {
	rdr := bytes.NewReader(item.Data)
	d, err := docx.ReadDocxFromMemory(rdr, rdr.Size())
	if err != nil {
		return nil, common.NewAppError("DOCX_PARSE", "unreadable docx "+item.Name, common.ErrCorruptInput)
	}
	defer d.Close()

	paragraphs := docxParagraphs(d.Editable().GetContent())

	return &entity.ExtractionResult{
		SourceName: item.Name,
		Format:     item.Format,
		Pages:      []entity.PageText{{PageNumber: 1, Text: strings.Join(paragraphs, "\n")}},
	}, nil
}

// docxParagraphs walks the WordprocessingML body and collects one string per
// non-empty <w:p> paragraph.
func docxParagraphs(content string) []string {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var paragraphs []string
	var current strings.Builder
	var inParagraph bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				current.Reset()
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}
	return paragraphs
}
