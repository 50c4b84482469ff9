package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeConflict, "invoice already exists")
	if err.Code() != CodeConflict {
		t.Fatalf("expected %s got %s", CodeConflict, err.Code())
	}
	if err.Message() != "invoice already exists" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Error() != "CONFLICT: invoice already exists" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, cause, "update stock")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause to survive wrapping")
	}
	if As(fmt.Errorf("outer: %w", err)).Code() != CodeDependency {
		t.Fatal("expected As to find the typed error through wrapping")
	}
}

func TestAsOnUntypedError(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestMetadataFor(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeNoRecipe, http.StatusUnprocessableEntity},
		{CodeDependency, http.StatusServiceUnavailable},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d got %d", tc.code, tc.status, got)
		}
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"status": "Received"}
	err := New(CodeStateConflict, "purchase order already received").WithDetails(details)
	if err.Details() == nil {
		t.Fatal("expected details to be set")
	}
}
