package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

// TabularStrategy parses spreadsheets and CSV files into rows of string
// cells. The first row is data like any other; nothing is promoted to column
// names, so no row is silently lost.
type TabularStrategy struct{}

func (s *TabularStrategy) Extract(ctx context.Context, item entity.FileItem, scratch string) (*entity.ExtractionResult, error) {
	var rows [][]string
	var err error
	if item.Format == constants.CSV {
		rows, err = csvRows(item.Data)
	} else {
		rows, err = workbookRows(item.Data)
	}
	if err != nil {
		return nil, common.NewAppError("TABULAR_PARSE", "unreadable spreadsheet "+item.Name, common.ErrCorruptInput)
	}

	res := &entity.ExtractionResult{
		SourceName: item.Name,
		Format:     item.Format,
		Pages:      []entity.PageText{{PageNumber: 1, Text: renderRows(rows)}},
	}
	if len(rows) > 0 {
		res.Tables = []entity.PageTable{{PageNumber: 1, Rows: rows}}
	}
	return res, nil
}

func workbookRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var all [][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		all = append(all, rows...)
	}
	return all, nil
}

func csvRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func renderRows(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}
