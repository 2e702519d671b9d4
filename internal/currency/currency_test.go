package currency

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "BRL 3940.10", Format("BRL", decimal.MustParse("3940.1")))
	assert.Equal(t, "BRL 0.00", Format("BRL", decimal.MustParse("0")))
	assert.Equal(t, "JPY 100", Format("JPY", decimal.MustParse("100")))
	assert.Equal(t, "12.345", Format("NOPE", decimal.MustParse("12.345")))
}

func TestCheckMinorUnits(t *testing.T) {
	assert.NoError(t, CheckMinorUnits("BRL", decimal.MustParse("1.00")))
	assert.NoError(t, CheckMinorUnits("BRL", decimal.MustParse("10")))
	assert.Error(t, CheckMinorUnits("BRL", decimal.MustParse("1.005")))
	assert.Error(t, CheckMinorUnits("JPY", decimal.MustParse("1.5")))
	assert.Error(t, CheckMinorUnits("NOPE", decimal.MustParse("1")))
}
