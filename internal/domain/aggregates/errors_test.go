package aggregates

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewValidationEmptyIsNil(t *testing.T) {
	if err := NewValidation("op", FieldErrors{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidationCarriesFields(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("tags", "must have tags")
	fields.Add("ingredients", "must have ingredients")
	err := NewValidation("recipe.create", fields)

	wrapped := fmt.Errorf("service: %w", err)
	if !IsCode(wrapped, CodeValidation) {
		t.Fatalf("expected validation code, got %q", CodeOf(wrapped))
	}
	e, ok := As(wrapped)
	if !ok || len(e.Fields["tags"]) != 1 {
		t.Fatalf("fields lost: %+v", e)
	}
	if !strings.Contains(err.Error(), "ingredients: must have ingredients") {
		t.Fatalf("error text should summarize fields: %s", err.Error())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeInternal, "op", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable")
	}
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("wrap(nil) should be nil")
	}
}
