package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateDiscount(t *testing.T) {
	got := CalculateDiscount(decimal.RequireFromString("200"), decimal.NewFromInt(15))
	assert.True(t, got.Equal(decimal.NewFromInt(30)), got.String())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.01", Round2(decimal.RequireFromString("10.005")).String())
	assert.Equal(t, "3.33", Round2(decimal.NewFromInt(10).Div(decimal.NewFromInt(3))).String())
}

func TestRoundRating(t *testing.T) {
	cases := map[float64]float64{
		4.25:       4.3,
		3.333333:   3.3,
		5:          5,
		4.96:       5,
		1.04999999: 1,
	}
	for in, want := range cases {
		assert.Equal(t, want, RoundRating(in), "input %v", in)
	}
}
