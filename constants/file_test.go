package constants

import "testing"

func TestClassifyFilename(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"report.pdf", PDF},
		{"A.PDF", PDF},
		{"scan.png", Image},
		{"photo.JPG", Image},
		{"photo.jpeg", Image},
		{"letter.docx", Word},
		{"data.xlsx", Excel},
		{"legacy.XLS", Excel},
		{"table.csv", CSV},
		{"notes.txt", PlainText},
		{"bundle.zip", Archive},
		{"binary.exe", Unsupported},
		{"noextension", Unsupported},
		{".hidden", Unsupported},
	}

	for _, tt := range tests {
		if got := ClassifyFilename(tt.name); got != tt.format {
			t.Errorf("ClassifyFilename(%q) = %q, want %q", tt.name, got, tt.format)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	if got := NormalizeExt(".PDF"); got != "pdf" {
		t.Errorf("NormalizeExt(.PDF) = %q, want pdf", got)
	}
	if got := NormalizeExt("csv"); got != "csv" {
		t.Errorf("NormalizeExt(csv) = %q, want csv", got)
	}
}

func TestMapExtToFormatIsTotal(t *testing.T) {
	for ext := range AllowedExtensions {
		if MapExtToFormat(ext) == Unsupported {
			t.Errorf("allowed extension %q maps to Unsupported", ext)
		}
	}
}
