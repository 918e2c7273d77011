// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/typereg/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "handler not found",
			wantStr: "[NOT_FOUND] handler not found",
		},
		{
			name:    "resolution_error",
			code:    errors.ErrResolution,
			message: "no such handler name",
			wantStr: "[RESOLUTION] no such handler name",
		},
		{
			name:    "construction_error",
			code:    errors.ErrConstruction,
			message: "default construction failed",
			wantStr: "[CONSTRUCTION] default construction failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "invalid subject: %s", "billing.")

	want := "[INVALID_INPUT] invalid subject: billing."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	t.Run("wrap error", func(t *testing.T) {
		cause := stderrors.New("missing symbol")
		err := errors.Wrap(cause, errors.ErrResolution, "lookup failed")

		want := "[RESOLUTION] lookup failed: missing symbol"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}

		if !stderrors.Is(err, cause) {
			t.Error("wrapped error should match the cause with errors.Is")
		}

		if stderrors.Unwrap(err) != cause {
			t.Error("Unwrap() should return the cause")
		}
	})

	t.Run("wrap nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrResolution, "lookup failed"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}

		if err := errors.Wrapf(nil, errors.ErrResolution, "lookup %s failed", "x"); err != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", err)
		}
	})
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "no handler")

	if !stderrors.Is(err, errors.New(errors.ErrNotFound, "different message")) {
		t.Error("errors with the same code should match")
	}

	if stderrors.Is(err, errors.New(errors.ErrConstruction, "no handler")) {
		t.Error("errors with different codes should not match")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"matching code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different code", errors.New(errors.ErrNotFound, "x"), errors.ErrResolution, false},
		{"wrapped reg error", errors.Wrap(errors.New(errors.ErrConstruction, "inner"), errors.ErrNotFound, "outer"), errors.ErrNotFound, true},
		{"plain error", stderrors.New("plain"), errors.ErrNotFound, false},
		{"nil error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrResolution, "x")); got != errors.ErrResolution {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrResolution)
	}

	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() plain error = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "no handler").
		WithDetail("subject", "billing.Invoice").
		WithDetails(map[string]interface{}{"attempts": 2})

	details := errors.GetErrorDetails(err)
	if details == nil {
		t.Fatal("GetErrorDetails() returned nil")
	}

	if details["subject"] != "billing.Invoice" {
		t.Errorf("details[subject] = %v, want billing.Invoice", details["subject"])
	}

	if details["attempts"] != 2 {
		t.Errorf("details[attempts] = %v, want 2", details["attempts"])
	}

	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() on plain error should return nil")
	}
}
