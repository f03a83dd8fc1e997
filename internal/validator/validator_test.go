package validator

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fields map[string]string

func (f fields) Validate() map[string]string { return f }

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(fields(nil)); err != nil {
		t.Fatalf("Validate(valid) = %v, want nil", err)
	}

	want := map[string]string{"mood": "must be between 0 and 10"}
	err := Validate(fields(want))
	if err == nil {
		t.Fatal("Validate(invalid) = nil, want error")
	}
	if err.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, http.StatusUnprocessableEntity)
	}
	if err.Validation == nil {
		t.Fatal("Validation info missing")
	}
	if diff := cmp.Diff(want, err.Validation.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}
