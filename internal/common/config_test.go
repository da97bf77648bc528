package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Store.DSN != "docstract.db" {
		t.Errorf("Store.DSN = %q", cfg.Store.DSN)
	}
	if cfg.Store.Database != "documentDB" || cfg.Store.Collection != "extracted_texts" {
		t.Errorf("store defaults = %q/%q", cfg.Store.Database, cfg.Store.Collection)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.OCR.DPI != 300 {
		t.Errorf("OCR.DPI = %d", cfg.OCR.DPI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DSN", "mongodb://localhost:27017")
	t.Setenv("OCR_DPI", "72")
	t.Setenv("DOCSTRACT_FORCE_OCR", "true")
	t.Setenv("STORE_DIAL_TIMEOUT", "5s")

	cfg := LoadConfig()
	if cfg.Store.DSN != "mongodb://localhost:27017" {
		t.Errorf("Store.DSN = %q", cfg.Store.DSN)
	}
	if cfg.OCR.DPI != 72 {
		t.Errorf("OCR.DPI = %d", cfg.OCR.DPI)
	}
	if !cfg.OCR.ForceOCR {
		t.Error("ForceOCR should be set")
	}
	if cfg.Store.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v", cfg.Store.DialTimeout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.OCR.DPI = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero DPI should fail validation")
	}

	cfg = LoadConfig()
	cfg.Store.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty DSN should fail validation")
	}
}
