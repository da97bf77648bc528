package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

func TestPlainTextPassthrough(t *testing.T) {
	item := entity.NewFileItem("notes.txt", []byte("line one\nline two\n"))

	res, err := (&PlainTextStrategy{}).Extract(context.Background(), item, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Text(); got != "line one\nline two" {
		t.Errorf("text = %q", got)
	}
	if len(res.Pages) != 1 {
		t.Errorf("expected a single page, got %d", len(res.Pages))
	}
}

func TestPlainTextRejectsBinary(t *testing.T) {
	item := entity.NewFileItem("garbage.txt", []byte{0xff, 0xfe, 0x00, 0x80})

	_, err := (&PlainTextStrategy{}).Extract(context.Background(), item, t.TempDir())
	if !errors.Is(err, common.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
}
