package errors

import (
	"strings"
	"testing"
)

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"heading", "h2", false},
		{"paragraph", "p", false},
		{"div", "div", false},
		{"custom element", "deck-title", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"leading digit", "2h", true},
		{"with space", "h 2", true},
		{"angle bracket", "<h2>", true},
		{"quote", `p"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName("title", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTagName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateTagName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateCacheURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"redis tls", "rediss://cache.internal:6380", false},

		{"empty", "", true},
		{"http", "http://localhost:6379", true},
		{"no scheme", "localhost:6379", true},
		{"control char", "redis://local\x01host", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCacheURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
