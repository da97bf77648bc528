package fields

import (
	"reflect"
	"testing"
)

func TestDeriveContacts(t *testing.T) {
	got := Derive("Contact: a@b.com or (123) 456-7890")

	if want := []string{"a@b.com"}; !reflect.DeepEqual(got["emails"], want) {
		t.Errorf("emails = %v, want %v", got["emails"], want)
	}
	if want := []string{"(123) 456-7890"}; !reflect.DeepEqual(got["phones"], want) {
		t.Errorf("phones = %v, want %v", got["phones"], want)
	}
}

func TestDeriveEmptyText(t *testing.T) {
	got := Derive("")
	if got["emails"] == nil || len(got["emails"]) != 0 {
		t.Errorf("emails should be an empty slice, got %v", got["emails"])
	}
	if got["phones"] == nil || len(got["phones"]) != 0 {
		t.Errorf("phones should be an empty slice, got %v", got["phones"])
	}
}

func TestDeriveShortNumberIgnored(t *testing.T) {
	got := Derive("call 12345 now")
	if len(got["phones"]) != 0 {
		t.Errorf("short digit runs should not match, got %v", got["phones"])
	}
}

func TestDeriveInternationalPhone(t *testing.T) {
	got := Derive("reach us at +49 30 1234 5678")
	if len(got["phones"]) != 1 {
		t.Fatalf("expected one phone, got %v", got["phones"])
	}
}

func TestDeriveDeduplicates(t *testing.T) {
	got := Derive("a@b.com and again a@b.com")
	if len(got["emails"]) != 1 {
		t.Errorf("expected deduplicated email, got %v", got["emails"])
	}
}
