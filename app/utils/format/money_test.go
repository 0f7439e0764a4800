package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	got := Money(decimal.RequireFromString("1234567.5"))
	assert.Contains(t, got, "Rp")
	assert.Contains(t, got, "1.234.567,50")
}

func TestWholeUnits(t *testing.T) {
	assert.Equal(t, int64(123), WholeUnits(decimal.RequireFromString("123.45")))
	assert.Equal(t, int64(124), WholeUnits(decimal.RequireFromString("123.5")))
	assert.Equal(t, int64(0), WholeUnits(decimal.Zero))
}
