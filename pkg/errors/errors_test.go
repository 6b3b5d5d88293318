package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"processing", NewProcessingError("cannot read", errors.New("eof")), http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"internal", NewInternalError("oops", nil), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("split: %w", NewValidationError("bad")), http.StatusBadRequest},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatusCode(tt.err); got != tt.want {
				t.Errorf("GetStatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppError_JSON(t *testing.T) {
	err := NewValidationError("Validation errors", "Page 4 is out of bounds (1-3)")
	b, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("marshal failed: %v", jsonErr)
	}
	want := `{"error":"Validation errors","details":["Page 4 is out of bounds (1-3)"]}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	b, _ = json.Marshal(NewProcessingError("Failed to merge PDFs", errors.New("hidden")))
	if string(b) != `{"error":"Failed to merge PDFs"}` {
		t.Errorf("cause must not be serialized, got %s", b)
	}
}

func TestAppError_WithDetailsCopies(t *testing.T) {
	base := NewProcessingError("Failed to split PDF", errors.New("eof"))
	detailed := base.WithDetails("eof")

	if len(base.Details) != 0 {
		t.Errorf("original error was modified: %v", base.Details)
	}
	if len(detailed.Details) != 1 || detailed.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unexpected copy %+v", detailed)
	}
}

func TestAppError_UnwrapAndType(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("wrapped: %w", NewInternalError("oops", cause))

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to reach the cause")
	}
	if !IsType(err, ErrorTypeInternal) || IsType(err, ErrorTypeValidation) {
		t.Errorf("IsType returned the wrong answer")
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Errorf("As should fail on plain errors")
	}
}
