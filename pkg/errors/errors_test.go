package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		detail   string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "409 maps to conflict with server detail",
			status:   http.StatusConflict,
			detail:   "classroom already booked between 10:00 and 11:00",
			wantCode: CodeConflict,
			wantMsg:  "classroom already booked between 10:00 and 11:00",
		},
		{
			name:     "401 maps to unauthorized",
			status:   http.StatusUnauthorized,
			detail:   "token expired",
			wantCode: CodeUnauthorized,
			wantMsg:  "token expired",
		},
		{
			name:     "404 maps to not found",
			status:   http.StatusNotFound,
			detail:   "classroom not found",
			wantCode: CodeNotFound,
			wantMsg:  "classroom not found",
		},
		{
			name:     "422 maps to validation",
			status:   http.StatusUnprocessableEntity,
			detail:   "end_time must be greater than start_time",
			wantCode: CodeValidation,
			wantMsg:  "end_time must be greater than start_time",
		},
		{
			name:     "503 maps to server error",
			status:   http.StatusServiceUnavailable,
			detail:   "timetable service unavailable",
			wantCode: CodeServer,
			wantMsg:  "timetable service unavailable",
		},
		{
			name:     "missing detail falls back to generic message",
			status:   http.StatusInternalServerError,
			detail:   "",
			wantCode: CodeServer,
			wantMsg:  FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, tt.detail)
			if err.Code != tt.wantCode {
				t.Errorf("FromStatus(%d) code = %s, want %s", tt.status, err.Code, tt.wantCode)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("FromStatus(%d) message = %q, want %q", tt.status, err.Message, tt.wantMsg)
			}
			if err.HTTPStatus != tt.status {
				t.Errorf("FromStatus(%d) status = %d", tt.status, err.HTTPStatus)
			}
		})
	}
}

func TestTransportWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Transport(cause)

	if err.Code != CodeTransport {
		t.Errorf("code = %s, want %s", err.Code, CodeTransport)
	}
	if !errors.Is(err, cause) {
		t.Error("Transport should wrap the underlying error")
	}
	if err.Message != FallbackMessage {
		t.Errorf("message = %q, want fallback", err.Message)
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit failed: %w", Conflict("room taken"))
	if !IsConflict(wrapped) {
		t.Error("IsConflict should see through fmt.Errorf wrapping")
	}
	if IsUnauthorized(wrapped) {
		t.Error("IsUnauthorized should be false for a conflict")
	}

	notFound := fmt.Errorf("lookup failed: %w", FromStatus(http.StatusNotFound, "booking not found"))
	if !IsNotFound(notFound) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
}

func TestAsAPIErrorOnPlainError(t *testing.T) {
	plain := errors.New("boom")
	apiErr := AsAPIError(plain)
	if apiErr.Code != CodeTransport {
		t.Errorf("plain errors should become transport errors, got %s", apiErr.Code)
	}
}
