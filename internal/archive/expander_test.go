package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/common"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExpandSkipsNestedArchive(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"report.pdf": []byte("%PDF-1.4 stub"),
		"inner.zip":  buildZip(t, map[string][]byte{"deep.txt": []byte("hi")}),
	})

	items, warnings, err := NewExpander(nil).Expand(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(items))
	}
	if items[0].Name != "report.pdf" || items[0].Format != constants.PDF {
		t.Errorf("unexpected item %q (%s)", items[0].Name, items[0].Format)
	}

	var nested bool
	for _, w := range warnings {
		if w.Name == "inner.zip" && strings.Contains(w.Reason, "nested") {
			nested = true
		}
	}
	if !nested {
		t.Errorf("expected nested-archive warning, got %v", warnings)
	}
}

func TestExpandDropsUnsupportedEntries(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"notes.txt":  []byte("hello"),
		"binary.exe": {0x4d, 0x5a},
	})

	items, warnings, err := NewExpander(nil).Expand(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "notes.txt" {
		t.Fatalf("expected only notes.txt, got %v", items)
	}
	if len(warnings) != 1 || warnings[0].Name != "binary.exe" {
		t.Fatalf("expected warning for binary.exe, got %v", warnings)
	}
}

func TestExpandFlattensDirectories(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"sub/dir/data.csv": []byte("a,b\n1,2"),
	})

	items, _, err := NewExpander(nil).Expand(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "data.csv" {
		t.Fatalf("expected flattened data.csv, got %v", items)
	}
}

func TestExpandCorruptArchive(t *testing.T) {
	_, _, err := NewExpander(nil).Expand([]byte("this is not a zip"))
	if !errors.Is(err, common.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
}
