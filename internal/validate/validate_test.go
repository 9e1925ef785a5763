package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/platetrack/internal/validate"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "shop@example.com", true},
		{"trimmed", "  shop@example.com  ", true},
		{"subdomain", "billing@mail.example.co", true},
		{"missing_at", "shop.example.com", false},
		{"missing_tld", "shop@example", false},
		{"embedded_space", "sh op@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Email(tt.input))
		})
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr string
	}{
		{"valid_small", 0.01, 0.01, ""},
		{"valid_typical", 18, 24, ""},
		{"valid_upper_bound", 500, 500, ""},
		{"zero_width", 0, 24, "greater than zero"},
		{"negative_height", 18, -1, "greater than zero"},
		{"too_large", 501, 24, "exceeds 500 cm"},
		{"height_too_large", 18, 500.01, "exceeds 500 cm"},
		{"nan_width", math.NaN(), 24, "not a number"},
		{"inf_height", 18, math.Inf(1), "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Dimensions(tt.w, tt.h)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// Games must be total: any input at all comes back as an integer >= 1.
func TestGames(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"int", 4, 4},
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"float_truncates", 3.7, 3},
		{"string_number", "2", 2},
		{"string_float", "3.7", 3},
		{"string_garbage", "abc", 1},
		{"nil", nil, 1},
		{"bool", true, 1},
		{"nan", math.NaN(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.Games(tt.input)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1)
		})
	}
}

func TestEstimatePayloadBudget(t *testing.T) {
	b := validate.EstimatePayloadBudget(10, 4000, 120)
	assert.True(t, b.Fits)
	assert.Equal(t, 33, b.MaxItems)

	b = validate.EstimatePayloadBudget(40, 4000, 120)
	assert.False(t, b.Fits)
	assert.Equal(t, 33, b.MaxItems)

	// zero per-item estimate falls back to the default constant
	b = validate.EstimatePayloadBudget(33, 4000, 0)
	assert.True(t, b.Fits)

	b = validate.EstimatePayloadBudget(1, 0, 120)
	assert.False(t, b.Fits)
	assert.Equal(t, 0, b.MaxItems)
}
