package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "user not found",
			},
			want: "user not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "get current user",
				Cause:   errors.New("connection refused"),
			},
			want: "get current user: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestWrap_NilError(t *testing.T) {
	if got := Wrap(nil, ErrCodeInternal, "noop"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
}

func TestFromTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"dial failure", errors.New("dial tcp: connection refused"), ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(FromTransport(tt.err, "request")); got != tt.want {
				t.Errorf("FromTransport() code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := map[int]ErrorCode{
		http.StatusUnauthorized:        ErrCodeUnauthorized,
		http.StatusForbidden:           ErrCodeForbidden,
		http.StatusNotFound:            ErrCodeNotFound,
		http.StatusBadRequest:          ErrCodeValidation,
		http.StatusUnprocessableEntity: ErrCodeValidation,
		http.StatusGatewayTimeout:      ErrCodeTimeout,
		http.StatusBadGateway:          ErrCodeUnavailable,
		http.StatusTeapot:              ErrCodeInternal,
	}

	for status, want := range tests {
		if got := CodeForStatus(status); got != want {
			t.Errorf("CodeForStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestStatusForCode(t *testing.T) {
	if got := StatusForCode(ErrCodeUnauthorized); got != http.StatusUnauthorized {
		t.Errorf("StatusForCode(unauthorized) = %d", got)
	}
	if got := StatusForCode(ErrorCode("bogus")); got != http.StatusInternalServerError {
		t.Errorf("StatusForCode(bogus) = %d", got)
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("missing"))

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation should be false for not_found")
	}
	if !IsUnauthorized(Unauthorized("no token")) {
		t.Error("IsUnauthorized should be true")
	}
	if got := GetField(ValidationField("last_page", "required")); got != "last_page" {
		t.Errorf("GetField() = %q", got)
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode of plain error should be empty")
	}
}
