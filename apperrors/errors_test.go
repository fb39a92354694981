package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfClassifiesWrappedErrors(t *testing.T) {
	base := NotFound("device not found")
	wrapped := fmt.Errorf("loading device: %w", base)
	if got := KindOf(wrapped); got != KindNotFound {
		t.Fatalf("KindOf(wrapped) = %v, want KindNotFound", got)
	}
	if got := MessageOf(wrapped); got != "device not found" {
		t.Fatalf("MessageOf(wrapped) = %q, want %q", got, "device not found")
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	err := errors.New("pq: connection refused")
	if got := KindOf(err); got != KindInternal {
		t.Fatalf("KindOf(plain error) = %v, want KindInternal", got)
	}
	if got := MessageOf(err); got != "internal server error" {
		t.Fatalf("MessageOf(plain error) = %q, internals must not leak", got)
	}
}

func TestInternalKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Internal(cause)
	if err.Message != "internal server error" {
		t.Fatalf("message = %q, want generic", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause must stay reachable through Unwrap")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.kind); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.kind, got, c.want)
		}
	}
}
