package extract

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

func TestTabularCSVKeepsFirstRow(t *testing.T) {
	item := entity.NewFileItem("orders.csv", []byte("id,amount\n1,9.99\n2,12.50\n"))

	res, err := (&TabularStrategy{}).Extract(context.Background(), item, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("expected one table, got %d", len(res.Tables))
	}
	want := [][]string{{"id", "amount"}, {"1", "9.99"}, {"2", "12.50"}}
	if !reflect.DeepEqual(res.Tables[0].Rows, want) {
		t.Errorf("rows = %v, want %v", res.Tables[0].Rows, want)
	}
	if got := res.Text(); got != "id\tamount\n1\t9.99\n2\t12.50" {
		t.Errorf("text = %q", got)
	}
}

func TestTabularCSVRaggedRows(t *testing.T) {
	item := entity.NewFileItem("ragged.csv", []byte("a,b,c\nd,e\n"))

	res, err := (&TabularStrategy{}).Extract(context.Background(), item, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tables[0].Rows) != 2 {
		t.Errorf("ragged rows should both survive, got %v", res.Tables[0].Rows)
	}
}

func TestTabularWorkbookAllSheets(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "name")
	f.SetCellValue("Sheet1", "B1", "total")
	f.SetCellValue("Sheet1", "A2", "acme")
	f.SetCellValue("Sheet1", "B2", 42)
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Extra", "A1", "second")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	item := entity.NewFileItem("book.xlsx", buf.Bytes())
	res, err := (&TabularStrategy{}).Extract(context.Background(), item, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	rows := res.Tables[0].Rows
	if len(rows) != 3 {
		t.Fatalf("expected rows from every sheet, got %v", rows)
	}
	if rows[2][0] != "second" {
		t.Errorf("second sheet row missing, got %v", rows[2])
	}
}

func TestTabularCorruptWorkbook(t *testing.T) {
	item := entity.NewFileItem("broken.xlsx", []byte("definitely not a workbook"))

	_, err := (&TabularStrategy{}).Extract(context.Background(), item, t.TempDir())
	if !errors.Is(err, common.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
}

func TestTabularEmptyCSV(t *testing.T) {
	item := entity.NewFileItem("empty.csv", nil)

	res, err := (&TabularStrategy{}).Extract(context.Background(), item, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tables) != 0 {
		t.Errorf("empty input should yield no table, got %v", res.Tables)
	}
}
