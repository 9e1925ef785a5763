package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/printworks/platetrack/internal/calc"
	"github.com/printworks/platetrack/internal/entity"
)

func item() entity.OrderItem {
	return entity.OrderItem{
		ID:          "a",
		WidthCm:     18,
		HeightCm:    24,
		Games:       4,
		PricePerCm2: 0.0798,
	}
}

func TestCalculate(t *testing.T) {
	got := calc.Calculate(item())

	assert.Equal(t, 18.0*24.0*4.0, got.TotalArea)
	assert.Equal(t, 18.0*24.0*4.0*0.0798, got.TotalValue)
	// source fields carried over untouched
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 18.0, got.WidthCm)
}

func TestCalculate_Idempotent(t *testing.T) {
	a := calc.Calculate(item())
	b := calc.Calculate(item())
	assert.Equal(t, a.TotalArea, b.TotalArea)
	assert.Equal(t, a.TotalValue, b.TotalValue)

	// recomputing from a previously calculated item's order fields
	// changes nothing
	c := calc.Calculate(a.OrderItem)
	assert.Equal(t, a, c)
}

func TestCalculateAll_PreservesOrder(t *testing.T) {
	items := []entity.OrderItem{
		{ID: "first", WidthCm: 1, HeightCm: 1, Games: 1, PricePerCm2: 1},
		{ID: "second", WidthCm: 2, HeightCm: 2, Games: 2, PricePerCm2: 1},
	}
	out := calc.CalculateAll(items)

	assert.Len(t, out, 2)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
	assert.Equal(t, 1.0, out[0].TotalArea)
	assert.Equal(t, 8.0, out[1].TotalArea)
}

func TestTotals(t *testing.T) {
	out := calc.CalculateAll([]entity.OrderItem{
		{WidthCm: 10, HeightCm: 10, Games: 1, PricePerCm2: 0.5},
		{WidthCm: 10, HeightCm: 20, Games: 2, PricePerCm2: 0.1},
	})
	area, value := calc.Totals(out)
	assert.Equal(t, 100.0+400.0, area)
	assert.Equal(t, 50.0+40.0, value)
}
