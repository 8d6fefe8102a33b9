package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"plain number", "1500", 1500},
		{"decimal", "1500.50", 1500.50},
		{"thousands separator", "1,500.00", 1500},
		{"currency prefix", "₹2500", 2500},
		{"weight with unit", "27 MT G", 27},
		{"negative", "-300", -300},
		{"letters only", "FIX+RTO", 0},
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"bare minus", "-", 0},
		{"multiple dots", "1.2.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.00", FormatAmount(1500))
	assert.Equal(t, "8300.50", FormatAmount(8300.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "-250.00", FormatAmount(-250))
}
