package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorUnwraps(t *testing.T) {
	err := NewAppError("PDF_PARSE", "unreadable pdf", ErrCorruptInput)
	if !errors.Is(err, ErrCorruptInput) {
		t.Error("AppError should unwrap to its cause")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrCorruptInput) {
		t.Error("cause should survive further wrapping")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrUnsupportedFormat, "UNSUPPORTED_FORMAT"},
		{NewAppError("X", "y", ErrCorruptInput), "CORRUPT_INPUT"},
		{ErrExtractorUnavailable, "EXTRACTOR_UNAVAILABLE"},
		{ErrPersistenceFailure, "PERSISTENCE_FAILURE"},
		{errors.New("anything else"), "INTERNAL"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
