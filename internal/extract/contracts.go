package extract

import (
	"context"

	"github.com/docstract/docstract/internal/entity"
)

// Strategy extracts one file into a normalized result.
//
// scratch is a per-invocation directory owned by the caller; strategies may
// write temporary artifacts there (rasterized pages, the source file itself
// for external tools) and must not remove it. The returned result carries
// pages, tables and images; derived fields and approval are filled in later
// by the pipeline and the aggregator.
type Strategy interface {
	Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error)
}
