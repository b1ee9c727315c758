package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gostitut/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "room already booked for the requested dates",
	}

	if f.Error() != "room already booked for the requested dates" {
		t.Errorf("unexpected error message: %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			result:  failure.BadRequestFromString("date_from must be before date_to"),
			code:    http.StatusBadRequest,
			message: "date_from must be before date_to",
		},
		{
			name:    "NotFound",
			result:  failure.NotFound("booking"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Conflict",
			result:  failure.Conflict("room already booked"),
			code:    http.StatusConflict,
			message: "room already booked",
		},
		{
			name:    "InvalidState",
			result:  failure.InvalidState("booking is not active"),
			code:    http.StatusUnprocessableEntity,
			message: "booking is not active",
		},
		{
			name:    "Unauthorized",
			result:  failure.Unauthorized("invalid credentials"),
			code:    http.StatusUnauthorized,
			message: "invalid credentials",
		},
		{
			name:    "InternalError",
			result:  failure.InternalError(errors.New("connection refused")),
			code:    http.StatusInternalServerError,
			message: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.result)
			}
			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}
			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilErrorConstructors(t *testing.T) {
	if result := failure.BadRequest(nil); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
	if result := failure.InternalError(nil); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.Conflict("overlap"),
			expected: http.StatusConflict,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("create booking: %w", failure.InvalidState("not active")),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	conflict := fmt.Errorf("modify booking: %w", failure.Conflict("overlap"))

	if !failure.IsConflict(conflict) {
		t.Error("expected IsConflict to match a wrapped conflict failure")
	}
	if failure.IsNotFound(conflict) {
		t.Error("expected IsNotFound not to match a conflict failure")
	}
	if !failure.IsInvalidState(failure.InvalidState("not active")) {
		t.Error("expected IsInvalidState to match")
	}
	if !failure.IsBadRequest(failure.BadRequestFromString("bad dates")) {
		t.Error("expected IsBadRequest to match")
	}
	if failure.IsConflict(errors.New("plain")) {
		t.Error("expected IsConflict not to match a plain error")
	}
}
