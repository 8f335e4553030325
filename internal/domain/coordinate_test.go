package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCoordinate(t *testing.T) {
	tests := []struct {
		name      string
		angle     string
		intDigits int
		expected  float64
	}{
		{"latitude with 2 integer digits", "4620100", 2, 46.201},
		{"longitude with 1 integer digit", "519800", 1, 5.198},
		{"noise after decimal point discarded", "4584829.0858556", 1, 4.584829},
		{"exactly intDigits characters", "46", 2, 46},
		{"trailing zeros", "4600000", 2, 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeCoordinate(tt.angle, tt.intDigits)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDecodeCoordinate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		angle     string
		intDigits int
	}{
		{"empty string", "", 2},
		{"fewer leading digits than required", "4", 2},
		{"non-numeric", "46a2100", 2},
		{"only a decimal point", ".5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCoordinate(tt.angle, tt.intDigits)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCoordinateFormat)
		})
	}
}
