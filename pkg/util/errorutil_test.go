package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestValidationErrorSurfacesAsServerError(t *testing.T) {
	err := NewValidationError("Invalid task data", map[string]any{"field": "progress"})
	de := ToDomainError(err)
	if de.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected code %s", de.Code)
	}
	if de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 for validation failures, got %d", de.HTTPStatus)
	}
}

func TestNoRowsMapsToNotFound(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	if de.Code != "NOT_FOUND" || de.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping: %+v", de)
	}

	wrapped := ToDomainError(errors.Join(errors.New("query tasks"), pgx.ErrNoRows))
	if wrapped.Code != "NOT_FOUND" {
		t.Fatalf("wrapped ErrNoRows must still map to NOT_FOUND, got %s", wrapped.Code)
	}
}

func TestUnknownErrorMapsToInternal(t *testing.T) {
	cause := errors.New("connection refused")
	de := ToDomainError(cause)
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", de)
	}
	if de.Message != "Server error" {
		t.Fatalf("unexpected message %q", de.Message)
	}
	if de.Details["error"] != "connection refused" {
		t.Fatalf("expected cause in details, got %v", de.Details)
	}
	if !errors.Is(de, cause) {
		t.Fatal("expected the cause to stay unwrappable")
	}
}

func TestDomainErrorPassesThrough(t *testing.T) {
	original := NewUnauthorized("token expired")
	de := ToDomainError(original)
	if de.Code != "UNAUTHORIZED" || de.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("unexpected mapping: %+v", de)
	}
	if de.Message != "token expired" {
		t.Fatalf("unexpected message %q", de.Message)
	}
}
