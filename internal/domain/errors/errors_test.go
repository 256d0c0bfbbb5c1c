package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", ErrValidation},
		{"unauthorized", ErrUnauthorized},
		{"conflict", ErrConflict},
		{"not found", ErrNotFound},
		{"already exists", ErrAlreadyExists},
		{"invalid credentials", ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestWrappedSentinelsKeepIdentity(t *testing.T) {
	wrapped := fmt.Errorf("%w: telefon invalid", ErrValidation)
	if !stdErrors.Is(wrapped, ErrValidation) {
		t.Fatalf("expected wrapped error to match ErrValidation")
	}
	if stdErrors.Is(wrapped, ErrConflict) {
		t.Fatalf("wrapped validation error must not match ErrConflict")
	}
}
