package entity

import "time"

// HistoryBatch is an archive snapshot of a working set. The month/year label
// and the stock level are fixed at creation and never recomputed.
type HistoryBatch struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
	StockLevel float64     `json:"stock_level"`
	Month      time.Month  `json:"month"`
	Year       int         `json:"year"`
}
