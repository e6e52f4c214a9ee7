package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func TestRequestValidator_TVARequest(t *testing.T) {
	rv := NewRequestValidator()

	tests := []struct {
		name        string
		req         models.TVARequest
		expectError bool
		contains    string
	}{
		{
			name: "valid request",
			req:  models.TVARequest{Amount: float(100), TVARate: float(20)},
		},
		{
			name: "zero rate is allowed",
			req:  models.TVARequest{Amount: float(10.5), TVARate: float(0)},
		},
		{
			name: "full rate is allowed",
			req:  models.TVARequest{Amount: float(10.5), TVARate: float(100), Description: "ok"},
		},
		{
			name:        "missing amount",
			req:         models.TVARequest{TVARate: float(20)},
			expectError: true,
			contains:    "amount is required",
		},
		{
			name:        "missing rate",
			req:         models.TVARequest{Amount: float(100)},
			expectError: true,
			contains:    "tva_rate is required",
		},
		{
			name:        "zero amount",
			req:         models.TVARequest{Amount: float(0), TVARate: float(20)},
			expectError: true,
			contains:    "amount must be greater than 0",
		},
		{
			name:        "negative amount",
			req:         models.TVARequest{Amount: float(-100), TVARate: float(20)},
			expectError: true,
			contains:    "amount must be greater than 0",
		},
		{
			name:        "rate above 100",
			req:         models.TVARequest{Amount: float(100), TVARate: float(101)},
			expectError: true,
			contains:    "tva_rate must be less than or equal to 100",
		},
		{
			name:        "negative rate",
			req:         models.TVARequest{Amount: float(100), TVARate: float(-10)},
			expectError: true,
			contains:    "tva_rate must be greater than or equal to 0",
		},
		{
			name:        "amount with three decimals",
			req:         models.TVARequest{Amount: float(10.123), TVARate: float(20)},
			expectError: true,
			contains:    "amount must have at most 2 decimals",
		},
		{
			name:        "description too long",
			req:         models.TVARequest{Amount: float(10), TVARate: float(20), Description: strings.Repeat("a", 513)},
			expectError: true,
			contains:    "description must be at most 512 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rv.Validate(tt.req)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
