// Package archive expands uploaded ZIP containers into individual files.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

// Warning reports an archive entry that was skipped rather than expanded.
type Warning struct {
	Name   string
	Reason string
}

// Expander flattens a ZIP archive exactly one level deep.
type Expander struct {
	Logger *slog.Logger
}

func NewExpander(logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{Logger: logger}
}

// Expand yields one FileItem per supported archive entry, in archive
// iteration order. Nested archives are not expanded and unsupported
// extensions are dropped; both are reported as warnings, never errors.
func (e *Expander) Expand(data []byte) ([]entity.FileItem, []Warning, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, common.NewAppError("ZIP_OPEN", "unreadable archive", common.ErrCorruptInput)
	}

	var items []entity.FileItem
	var warnings []Warning
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		if strings.HasPrefix(name, ".") {
			continue
		}

		switch constants.ClassifyFilename(name) {
		case constants.Archive:
			// One level only: nested archives would unbound processing time.
			e.Logger.Warn("skipping nested archive", "entry", f.Name)
			warnings = append(warnings, Warning{Name: name, Reason: "nested archives are not expanded"})
			continue
		case constants.Unsupported:
			e.Logger.Warn("skipping unsupported archive entry", "entry", f.Name)
			warnings = append(warnings, Warning{Name: name, Reason: "unsupported file type"})
			continue
		}

		rc, err := f.Open()
		if err != nil {
			warnings = append(warnings, Warning{Name: name, Reason: fmt.Sprintf("unreadable entry: %v", err)})
			continue
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			warnings = append(warnings, Warning{Name: name, Reason: fmt.Sprintf("unreadable entry: %v", err)})
			continue
		}
		items = append(items, entity.NewFileItem(name, b))
	}
	return items, warnings, nil
}
