package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docstract/docstract/internal/entity"
)

// extractPDFImages copies embedded raster images out of the document,
// keyed back to their page number. Bytes are copied; the result holds no
// reference to the source document.
func extractPDFImages(data []byte) ([]entity.ImageBlob, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	var blobs []entity.ImageBlob
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) == 0 {
			continue
		}
		imgs, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
		if err != nil {
			continue
		}
		for _, img := range imgs {
			b, err := io.ReadAll(img)
			if err != nil || len(b) == 0 {
				continue
			}
			ft := img.FileType
			if ft == "" {
				ft = "png"
			}
			blobs = append(blobs, entity.ImageBlob{
				PageNumber: pageNr,
				Name:       fmt.Sprintf("page%d_%s.%s", pageNr, img.Name, ft),
				Data:       b,
			})
		}
	}
	return blobs, nil
}

// reColumnGap splits layout-preserved text into cells on runs of two or more
// spaces, or tabs.
var reColumnGap = regexp.MustCompile(`\t+| {2,}`)

// detectTables captures naive line-grid tables from embedded page text:
// two or more consecutive lines that each split into the same two-plus
// column cells are treated as one table.
func detectTables(pages []entity.PageText) []entity.PageTable {
	var tables []entity.PageTable
	for _, p := range pages {
		var rows [][]string
		flush := func() {
			if len(rows) >= 2 {
				tables = append(tables, entity.PageTable{PageNumber: p.PageNumber, Rows: rows})
			}
			rows = nil
		}
		for _, line := range strings.Split(p.Text, "\n") {
			cells := splitCells(line)
			if len(cells) >= 2 {
				rows = append(rows, cells)
				continue
			}
			flush()
		}
		flush()
	}
	return tables
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := reColumnGap.Split(line, -1)
	var cells []string
	for _, c := range parts {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}
