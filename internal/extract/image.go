package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docstract/docstract/internal/entity"
	"github.com/docstract/docstract/internal/ocr"
)

// ImageOCRStrategy runs OCR directly over a raster image. The result is a
// single page; a blank image yields empty text, not an error.
type ImageOCRStrategy struct {
	Engine *ocr.Engine
	Logger *slog.Logger
}

func (s *ImageOCRStrategy) Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error) {
	src := filepath.Join(scratch, "source"+filepath.Ext(item.Name))
	if err := os.WriteFile(src, item.Data, 0o600); err != nil {
		return nil, fmt.Errorf("write scratch image: %w", err)
	}

	txt, err := s.Engine.ReadImage(ctx, src)
	if err != nil {
		return nil, err
	}

	return &entity.ExtractionResult{
		SourceName: item.Name,
		Format:     item.Format,
		Pages:      []entity.PageText{{PageNumber: 1, Text: txt}},
	}, nil
}
