package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"three days", "2024-01-01", "2024-01-04", 3},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"reversed order", "2024-01-04", "2024-01-01", 3},
		{"across months", "2024-01-30", "2024-02-02", 3},
		{"empty start", "", "2024-01-04", 0},
		{"empty end", "2024-01-01", "", 0},
		{"malformed start", "01-2024-01", "2024-01-04", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestToISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"standard", "15-01-2024", "2024-01-15"},
		{"unpadded", "5-1-2024", "2024-01-05"},
		{"trailing space", " 15-01-2024 ", "2024-01-15"},
		{"too short", "1-1-24", ""},
		{"two segments", "15-2024", ""},
		{"non-numeric", "ab-cd-efgh", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToISO(tt.input))
		})
	}
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, "15-01-2024", ToDisplay("2024-01-15"))
	assert.Equal(t, "05-01-2024", ToDisplay("2024-1-5"))
	assert.Equal(t, "", ToDisplay("15-01-2024"))
	assert.Equal(t, "", ToDisplay(""))
}

func TestDisplayRoundTrip(t *testing.T) {
	assert.Equal(t, "15-01-2024", ToDisplay(ToISO("15-01-2024")))
}
