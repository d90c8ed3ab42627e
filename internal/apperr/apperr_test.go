package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindAuthentication, http.StatusUnauthorized},
		{KindPermission, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusUnprocessableEntity},
		{KindDuplicate, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.HTTPStatus(); got != tt.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("update: %w", NotFound("Task does not exist"))

	if !errors.Is(err, NotFound("")) {
		t.Fatal("expected not found to match by kind")
	}
	if errors.Is(err, Permission("")) {
		t.Fatal("did not expect permission to match")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("KindOf() = %v", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatal("plain errors should be internal")
	}
}

func TestWrapKeepsOriginal(t *testing.T) {
	base := Authentication("Login failed", "An error occurred during login")
	cause := errors.New("connection reset")

	wrapped := Wrap(base, cause)
	if !errors.Is(wrapped, cause) {
		t.Fatal("expected cause in chain")
	}
	if base.Cause != nil {
		t.Fatal("Wrap must not mutate its argument")
	}
	if wrapped.Error() != "Login failed: An error occurred during login" {
		t.Fatalf("Error() = %q", wrapped.Error())
	}
}
