package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_ToHTTPError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Entity not found", http.StatusNotFound)
		out := e.ToHTTPError()
		if out.Code != "NOT_FOUND" || out.Message != "Entity not found" || out.Details != "" {
			t.Fatalf("unexpected http error: %+v", out)
		}
	})

	t.Run("client error keeps details", func(t *testing.T) {
		e := NewDomainError("INVALID_INPUT", "Invalid request", errors.New("quantity must be positive"), http.StatusBadRequest)
		if got := e.ToHTTPError().Details; got != "quantity must be positive" {
			t.Fatalf("expected details, got %q", got)
		}
	})

	t.Run("server error hides details", func(t *testing.T) {
		cause := errors.New("dial tcp: refused")
		e := NewDomainError("STORAGE_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if got := e.ToHTTPError().Details; got != "" {
			t.Fatalf("expected hidden details, got %q", got)
		}
		if !errors.Is(e, cause) {
			t.Fatalf("expected wrapped cause")
		}
	})
}
