package numinput

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{5, 2, "5.00"},
		{3, 0, "3"},
		{2.5, 0, "3"},
		{-2.5, 0, "-3"},
		{0.125, 2, "0.13"},
		{1.005, 2, "1.00"}, // 1.00499999999999989...
		{1.45, 1, "1.4"},   // 1.44999999999999995...
		{9.995, 2, "9.99"},
		{9.996, 2, "10.00"},
		{99.5, 0, "100"},
		{-0.0, 2, "0.00"},
		{123456789, 0, "123456789"},
		{0.1, 20, "0.10000000000000000555"},
		{7, -1, "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToFixed(tt.v, tt.precision), "ToFixed(%v, %d)", tt.v, tt.precision)
	}
}

func TestToFixed_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN", ToFixed(math.NaN(), 2))
	assert.Equal(t, "Infinity", ToFixed(math.Inf(1), 0))
	assert.Equal(t, "-Infinity", ToFixed(math.Inf(-1), 0))
}

func TestToFixed_LargeMagnitudeIsExponential(t *testing.T) {
	assert.Equal(t, "1e+21", ToFixed(1e21, 2))
	assert.Equal(t, "-1.5e+22", ToFixed(-1.5e22, 0))
	assert.Equal(t, "1.7976931348623157e+308", ToFixed(math.MaxFloat64, 3))
	assert.Equal(t, "999999999999999868928.00", ToFixed(999999999999999900000, 2))
	assert.Equal(t, "$ 1e+21", FormatDisplay(1e21, 2, "$ ", "", nil))
}

func TestFormatDisplay_Composition(t *testing.T) {
	assert.Equal(t, "$ 3", FormatDisplay(3, 0, "$ ", "", nil))
	assert.Equal(t, "3 $", FormatDisplay(3, 0, "", " $", nil))

	// prefix and suffix wrap the custom formatter's output
	stars := func(n string) string { return "** " + n + " **" }
	assert.Equal(t, "** 3 **", FormatDisplay(3, 0, "", "", stars))
	assert.Equal(t, "< ** 3.5 ** >", FormatDisplay(3.5, 1, "< ", " >", stars))
}

func TestFormatDisplay_FormatReceivesRoundedString(t *testing.T) {
	var got string
	FormatDisplay(1.23456, 3, "", "", func(n string) string {
		got = n
		return n
	})
	assert.Equal(t, "1.235", got)
}
