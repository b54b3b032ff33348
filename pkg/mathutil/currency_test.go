package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round down",
			input:    123.454,
			expected: 123.45,
		},
		{
			name:     "Round up",
			input:    123.456,
			expected: 123.46,
		},
		{
			name:     "Exact cents",
			input:    47321.51,
			expected: 47321.51,
		},
		{
			name:     "Negative value",
			input:    -0.005,
			expected: -0.01,
		},
		{
			name:     "Zero",
			input:    0.0,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.009) {
		t.Errorf("IsZero(0.009) = false, expected true")
	}
	if !IsZero(-0.009) {
		t.Errorf("IsZero(-0.009) = false, expected true")
	}
	if IsZero(0.02) {
		t.Errorf("IsZero(0.02) = true, expected false")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.00, 100.005, 0.01) {
		t.Errorf("WithinTolerance(100.00, 100.005, 0.01) = false, expected true")
	}
	if WithinTolerance(100.00, 100.02, 0.01) {
		t.Errorf("WithinTolerance(100.00, 100.02, 0.01) = true, expected false")
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{
			name:     "Quarter",
			value:    25,
			total:    100,
			expected: 25.0,
		},
		{
			name:     "Profit over price",
			value:    39286.04,
			total:    200000,
			expected: 19.64302,
		},
		{
			name:     "Zero total",
			value:    50,
			total:    0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestCompoundGrowth(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		rate     float64
		years    int
		expected float64
	}{
		{
			name:     "Year zero is identity",
			base:     1000000,
			rate:     0.281,
			years:    0,
			expected: 1000000,
		},
		{
			name:     "One year",
			base:     1000000,
			rate:     0.281,
			years:    1,
			expected: 1281000,
		},
		{
			name:     "Condo appreciation over four years",
			base:     200000,
			rate:     0.04,
			years:    4,
			expected: 233971.71,
		},
		{
			name:     "Zero rate",
			base:     500,
			rate:     0,
			years:    10,
			expected: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompoundGrowth(tt.base, tt.rate, tt.years)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CompoundGrowth(%v, %v, %d) = %v, expected %v", tt.base, tt.rate, tt.years, result, tt.expected)
			}
		})
	}
}
