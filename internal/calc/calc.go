package calc

import "github.com/printworks/platetrack/internal/entity"

// Calculate derives the billable fields for one order item. Pure and
// deterministic: recomputing from an unchanged item yields bit-identical
// results. No rounding is applied; presentation layers round for display.
func Calculate(item entity.OrderItem) entity.CalculatedItem {
	area := item.WidthCm * item.HeightCm * float64(item.Games)
	return entity.CalculatedItem{
		OrderItem:  item,
		TotalArea:  area,
		TotalValue: area * item.PricePerCm2,
	}
}

// CalculateAll maps Calculate over a working set, preserving order.
func CalculateAll(items []entity.OrderItem) []entity.CalculatedItem {
	out := make([]entity.CalculatedItem, len(items))
	for i, item := range items {
		out[i] = Calculate(item)
	}
	return out
}

// Totals sums the derived fields of a calculated set.
func Totals(items []entity.CalculatedItem) (area, value float64) {
	for _, item := range items {
		area += item.TotalArea
		value += item.TotalValue
	}
	return area, value
}
