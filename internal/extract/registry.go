package extract

import (
	"log/slog"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/ocr"
)

// Config tunes strategy behavior.
type Config struct {
	// ForceOCR rasterizes and OCRs every PDF page even when the page carries
	// machine-encoded text. Default is embedded-text-first with per-page OCR
	// fallback.
	ForceOCR bool
}

// Registry maps each Format to its extraction strategy. The mapping is total:
// every recognized format has exactly one strategy, and Unsupported is a
// terminal selection error.
type Registry struct {
	strategies map[constants.Format]Strategy
}

func NewRegistry(engine *ocr.Engine, cfg Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		strategies: map[constants.Format]Strategy{
			constants.PDF:       &RasterOCRStrategy{Engine: engine, ForceOCR: cfg.ForceOCR, Logger: logger},
			constants.Image:     &ImageOCRStrategy{Engine: engine, Logger: logger},
			constants.Word:      &StructuredDocStrategy{},
			constants.Excel:     &TabularStrategy{},
			constants.CSV:       &TabularStrategy{},
			constants.PlainText: &PlainTextStrategy{},
		},
	}
}

// ForFormat selects the strategy for a format. Archives are expanded before
// strategy selection, so Archive is unsupported here too.
func (r *Registry) ForFormat(f constants.Format) (Strategy, error) {
	s, ok := r.strategies[f]
	if !ok {
		return nil, common.NewAppError("SELECT_STRATEGY", "no strategy for format "+string(f), common.ErrUnsupportedFormat)
	}
	return s, nil
}
