package duration

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "Minutes and seconds",
			input:    "PT3M25S",
			expected: 3*time.Minute + 25*time.Second,
		},
		{
			name:     "Hours minutes seconds",
			input:    "PT1H2M3S",
			expected: time.Hour + 2*time.Minute + 3*time.Second,
		},
		{
			name:     "Seconds only",
			input:    "PT45S",
			expected: 45 * time.Second,
		},
		{
			name:     "Minutes only",
			input:    "PT4M",
			expected: 4 * time.Minute,
		},
		{
			name:     "Hours only",
			input:    "PT2H",
			expected: 2 * time.Hour,
		},
		{
			name:     "Days and time",
			input:    "P1DT2H",
			expected: 26 * time.Hour,
		},
		{
			name:     "Exact track length",
			input:    "PT3M20S",
			expected: 200 * time.Second,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Bare P",
			input:   "P",
			wantErr: true,
		},
		{
			name:    "Bare PT",
			input:   "PT",
			wantErr: true,
		},
		{
			name:    "Not a duration",
			input:   "3:25",
			wantErr: true,
		},
		{
			name:    "Garbage",
			input:   "PTxyz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidDuration) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidDuration", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
