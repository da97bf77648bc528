package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

// PlainTextStrategy passes file bytes through as a single page of text.
type PlainTextStrategy struct{}

func (s *PlainTextStrategy) Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error) {
	if !utf8.Valid(item.Data) {
		return nil, common.NewAppError("TEXT_DECODE", "not valid utf-8: "+item.Name, common.ErrCorruptInput)
	}
	return &entity.ExtractionResult{
		SourceName: item.Name,
		Format:     item.Format,
		Pages:      []entity.PageText{{PageNumber: 1, Text: strings.TrimRight(string(item.Data), "\n")}},
	}, nil
}
