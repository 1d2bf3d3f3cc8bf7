package helper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGHS(t *testing.T) {
	assert.Equal(t, "GH₵600.00", FormatGHS(decimal.NewFromInt(600)))
	assert.Equal(t, "GH₵0.50", FormatGHS(decimal.NewFromFloat(0.5)))
	assert.Equal(t, "GH₵-25.00", FormatGHS(decimal.NewFromInt(-25)))
}

func TestRatePercent(t *testing.T) {
	rate := RatePercent(decimal.NewFromInt(400), decimal.NewFromInt(1000))
	assert.True(t, rate.Equal(decimal.NewFromInt(40)))
}

func TestRatePercent_ZeroDue(t *testing.T) {
	assert.True(t, RatePercent(decimal.NewFromInt(100), decimal.Zero).IsZero())
}

func TestRatePercent_RoundsToOneDecimal(t *testing.T) {
	// 1/3 -> 33.3%
	rate := RatePercent(decimal.NewFromInt(1), decimal.NewFromInt(3))
	assert.Equal(t, "33.3", rate.String())
}

func TestRound2(t *testing.T) {
	v, _ := decimal.NewFromString("10.005")
	assert.Equal(t, "10.01", Round2(v).StringFixed(2))
}
