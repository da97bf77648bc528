// Package pipeline runs the per-file extraction flow: classify, select a
// strategy, invoke it, and normalize failures into the result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
	"github.com/docstract/docstract/internal/extract"
	"github.com/docstract/docstract/internal/fields"
)

type Pipeline struct {
	registry *extract.Registry
	logger   *slog.Logger
}

func New(registry *extract.Registry, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{registry: registry, logger: logger}
}

// Run extracts a single file. Strategy failures are recorded on the result
// instead of propagating, so a batch always completes; the text of a failed
// item stays empty. Each invocation owns one scratch directory, removed on
// every exit path.
func (p *Pipeline) Run(ctx context.Context, item entity.FileItem) *entity.ExtractionResult {
	start := time.Now()

	if item.Format == constants.Unsupported || item.Format == constants.Archive {
		p.logger.Warn("unsupported file", "file", item.Name, "format", item.Format)
		return failed(item, common.NewAppError("CLASSIFY", "unrecognized file type: "+item.Name, common.ErrUnsupportedFormat))
	}

	strategy, err := p.registry.ForFormat(item.Format)
	if err != nil {
		return failed(item, err)
	}

	scratch, err := os.MkdirTemp("", "docstract-*")
	if err != nil {
		return failed(item, fmt.Errorf("scratch dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			p.logger.Warn("failed to remove scratch dir", "dir", scratch, "error", err)
		}
	}()

	res, err := strategy.Extract(ctx, item, scratch)
	if err != nil {
		p.logger.Error("extraction failed", "file", item.Name, "format", item.Format, "error", err)
		return failed(item, err)
	}

	res.Fields = fields.Derive(res.Text())

	p.logger.Info("extraction ok",
		"file", item.Name,
		"format", item.Format,
		"pages", len(res.Pages),
		"tables", len(res.Tables),
		"images", len(res.Images),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// RunBatch processes items sequentially in the given order. Per-item errors
// never abort the batch.
func (p *Pipeline) RunBatch(ctx context.Context, items []entity.FileItem) []*entity.ExtractionResult {
	results := make([]*entity.ExtractionResult, 0, len(items))
	for _, item := range items {
		results = append(results, p.Run(ctx, item))
	}
	return results
}

func failed(item entity.FileItem, err error) *entity.ExtractionResult {
	return &entity.ExtractionResult{
		SourceName: item.Name,
		Format:     item.Format,
		Fields:     map[string][]string{"emails": {}, "phones": {}},
		Err:        err,
	}
}
