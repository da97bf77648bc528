package entity

import (
	"strconv"
	"strings"

	"github.com/docstract/docstract/constants"
)

// FileItem is a single uploaded or archive-expanded file, immutable once built.
type FileItem struct {
	Name   string
	Data   []byte
	Format constants.Format
}

// NewFileItem classifies name by extension and wraps the raw bytes.
func NewFileItem(name string, data []byte) FileItem {
	return FileItem{
		Name:   name,
		Data:   data,
		Format: constants.ClassifyFilename(name),
	}
}

// PageText is the recognized or embedded text of one page.
// Page numbering is 1-based and contiguous within a source file.
type PageText struct {
	PageNumber int    `json:"page"`
	Text       string `json:"text"`
}

// PageTable is a rectangular table associated with a page. Cells are plain
// strings; no type coercion happens here.
type PageTable struct {
	PageNumber int        `json:"page"`
	Rows       [][]string `json:"rows"`
}

// ImageBlob is an embedded raster image copied out of a source document.
type ImageBlob struct {
	PageNumber int    `json:"page"`
	Name       string `json:"name"`
	Data       []byte `json:"-"`
}

// ExtractionResult is the normalized outcome of extracting one file.
// Err is non-nil when extraction failed; the text is then empty and the
// result still takes its place in the batch.
type ExtractionResult struct {
	SourceName string
	Format     constants.Format
	Pages      []PageText
	Tables     []PageTable
	Images     []ImageBlob
	Fields     map[string][]string
	Approved   bool
	Err        error
}

// Text returns the concatenated page text with the page banner used for
// display and persistence ("--- Page N ---"). Single-page results are
// returned without a banner.
func (r *ExtractionResult) Text() string {
	if len(r.Pages) == 0 {
		return ""
	}
	if len(r.Pages) == 1 {
		return r.Pages[0].Text
	}
	var sb strings.Builder
	for i, p := range r.Pages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("--- Page ")
		sb.WriteString(strconv.Itoa(p.PageNumber))
		sb.WriteString(" ---\n")
		sb.WriteString(strings.TrimSpace(p.Text))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stem returns the source filename without its extension, used to name
// exported JSON documents.
func (r *ExtractionResult) Stem() string {
	name := r.SourceName
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
