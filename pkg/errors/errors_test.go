package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestCodeNamingConvention(t *testing.T) {
	// Code strings group by prefix so log filters can match a whole
	// category: INVALID_* for validation, NOT_FOUND_* for lookups.
	tests := []struct {
		code Code
		want string
	}{
		{ErrCodeObjectNotFound, "NOT_FOUND_OBJECT"},
		{ErrCodeFileNotFound, "NOT_FOUND_FILE"},
		{ErrCodeRunNotFound, "NOT_FOUND_RUN"},
		{ErrCodeInvalidInput, "INVALID_INPUT"},
		{ErrCodeInvalidPlan, "INVALID_PLAN"},
		{ErrCodeInvalidFormat, "INVALID_FORMAT"},
		{ErrCodeInvalidName, "INVALID_NAME"},
	}
	for _, tt := range tests {
		if string(tt.code) != tt.want {
			t.Errorf("code = %q, want %q", tt.code, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeHostQuery, cause, "failed to query host")

	if err.Code != ErrCodeHostQuery {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeHostQuery)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeHostQuery,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeHostQuery, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeHostQuery,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidPlan, "test"),
			expected: ErrCodeInvalidPlan,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "box1", wantErr: false},
		{name: "underscore prefix", input: "_stage", wantErr: false},
		{name: "generated member", input: "stack001_mid2", wantErr: false},
		{name: "namespaced", input: "props:crate_a", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "leading digit", input: "1box", wantErr: true},
		{name: "space", input: "my box", wantErr: true},
		{name: "hyphen", input: "box-1", wantErr: true},
		{name: "path separator", input: "a/b", wantErr: true},
		{name: "traversal", input: "..", wantErr: true},
		{name: "control character", input: "box\n1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NodeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NodeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "placements.xml", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "with path", input: "out/placements.xml", wantErr: true},
		{name: "hidden", input: ".placements", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
