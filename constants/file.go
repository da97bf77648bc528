package constants

import "strings"

// Format is the canonical file type handled by the extraction pipeline.
type Format string

// Stable values (stored as-is in exports and the document store).
const (
	PDF         Format = "PDF"
	Image       Format = "IMAGE"
	Word        Format = "WORD"
	Excel       Format = "EXCEL"
	CSV         Format = "CSV"
	PlainText   Format = "TEXT"
	Archive     Format = "ARCHIVE"
	Unsupported Format = "UNSUPPORTED"
)

// AllowedExtensions holds the file extensions accepted at the upload boundary.
var AllowedExtensions = map[string]struct{}{
	"zip":  {},
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"docx": {},
	"xlsx": {},
	"xls":  {},
	"csv":  {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its Format.
// Classification is total: unknown extensions map to Unsupported.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "png", "jpg", "jpeg":
		return Image
	case "docx":
		return Word
	case "xlsx", "xls":
		return Excel
	case "csv":
		return CSV
	case "txt":
		return PlainText
	case "zip":
		return Archive
	default:
		return Unsupported
	}
}

// ClassifyFilename maps a filename to its Format by extension, case-insensitive.
func ClassifyFilename(name string) Format {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return Unsupported
	}
	return MapExtToFormat(name[idx+1:])
}
