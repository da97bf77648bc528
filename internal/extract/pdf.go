package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
	"github.com/docstract/docstract/internal/ocr"
)

// RasterOCRStrategy handles PDFs. Pages that carry machine-encoded text are
// read directly; pages without it are rasterized at the configured DPI and
// OCRed. ForceOCR switches to rasterizing every page.
type RasterOCRStrategy struct {
	Engine   *ocr.Engine
	ForceOCR bool
	Logger   *slog.Logger
}

func (s *RasterOCRStrategy) Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error) {
	embedded, total, err := embeddedPageText(item.Data)
	if err != nil {
		return nil, common.NewAppError("PDF_PARSE", "unreadable pdf "+item.Name, common.ErrCorruptInput)
	}

	res := &entity.ExtractionResult{SourceName: item.Name, Format: item.Format}
	if total == 0 {
		return res, nil
	}

	var ocrPages []int
	for n := 1; n <= total; n++ {
		if s.ForceOCR || strings.TrimSpace(embedded[n]) == "" {
			ocrPages = append(ocrPages, n)
		}
	}

	if len(ocrPages) > 0 {
		if err := s.ocrInto(ctx, item, scratch, embedded, ocrPages); err != nil {
			return nil, err
		}
	}

	for n := 1; n <= total; n++ {
		res.Pages = append(res.Pages, entity.PageText{PageNumber: n, Text: embedded[n]})
	}
	res.Tables = detectTables(res.Pages)

	images, err := extractPDFImages(item.Data)
	if err != nil {
		// Image extraction is an augmentation; a failure here must not void
		// the text result.
		s.Logger.Warn("pdf image extraction failed", "file", item.Name, "error", err)
	} else {
		res.Images = images
	}

	return res, nil
}

// ocrInto rasterizes the document once and fills the given pages from OCR.
func (s *RasterOCRStrategy) ocrInto(ctx context.Context, item entity.FileItem, scratch string, texts map[int]string, pages []int) error {
	src := filepath.Join(scratch, "source.pdf")
	if err := os.WriteFile(src, item.Data, 0o600); err != nil {
		return fmt.Errorf("write scratch pdf: %w", err)
	}

	rendered, err := s.Engine.Rasterize(ctx, src, scratch)
	if err != nil {
		return common.NewAppError("PDF_RASTER", "rasterization failed for "+item.Name, common.ErrCorruptInput)
	}

	byPage := make(map[int]string, len(rendered))
	for i, img := range rendered {
		byPage[i+1] = img
	}

	for _, n := range pages {
		img, ok := byPage[n]
		if !ok {
			continue
		}
		txt, err := s.Engine.ReadImage(ctx, img)
		if err != nil {
			return fmt.Errorf("ocr page %d of %s: %w", n, item.Name, err)
		}
		texts[n] = txt
	}
	return nil
}

// embeddedPageText reads the machine-encoded text of every page.
// The underlying reader panics on some malformed files, so the whole pass
// runs behind a recover that surfaces as a plain error.
func embeddedPageText(data []byte) (texts map[int]string, total int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	rdr := bytes.NewReader(data)
	f, err := pdf.NewReader(rdr, rdr.Size())
	if err != nil {
		return nil, 0, err
	}

	total = f.NumPage()
	texts = make(map[int]string, total)
	for n := 1; n <= total; n++ {
		p := f.Page(n)
		if p.V.IsNull() {
			texts[n] = ""
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			texts[n] = ""
			continue
		}
		texts[n] = s
	}
	return texts, total, nil
}
