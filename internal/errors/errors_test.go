package errors

import (
	"fmt"
	"testing"
)

func TestIsTypeThroughWrapping(t *testing.T) {
	base := DuplicateName("vendor", "acme")
	wrapped := fmt.Errorf("add vendor: %w", base)

	if !IsType(wrapped, TypeDuplicateName) {
		t.Fatalf("Expected wrapped error to be %s", TypeDuplicateName)
	}
	if IsType(wrapped, TypeDuplicateCode) {
		t.Errorf("Did not expect %s", TypeDuplicateCode)
	}
	if got := TypeOf(wrapped); got != TypeDuplicateName {
		t.Errorf("Expected type %s, got %s", TypeDuplicateName, got)
	}
}

func TestTypeOfForeignError(t *testing.T) {
	if got := TypeOf(fmt.Errorf("boom")); got != TypeInternal {
		t.Errorf("Expected %s for foreign error, got %s", TypeInternal, got)
	}
	if IsType(nil, TypeValidation) {
		t.Error("nil error must not match any type")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Storage("save snapshot", fmt.Errorf("disk full"))
	want := "[STORAGE_ERROR] save snapshot: disk full"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestDuplicateCodeContext(t *testing.T) {
	err := DuplicateCode("sector", "01", "ti")
	if err.Context["owner"] != "ti" {
		t.Errorf("Expected owner context 'ti', got %v", err.Context["owner"])
	}
	if err.Context["code"] != "01" {
		t.Errorf("Expected code context '01', got %v", err.Context["code"])
	}
}
