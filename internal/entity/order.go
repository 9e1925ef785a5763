package entity

import (
	"time"

	"github.com/printworks/platetrack/constants"
)

// OrderItem represents one print job for data transfer between layers.
type OrderItem struct {
	ID          string            `json:"id"`
	JobNumber   string            `json:"job_number"`
	Client      string            `json:"client"`
	ColorPlan   string            `json:"color_plan"`
	Kind        constants.JobKind `json:"kind"`
	IssueDate   time.Time         `json:"issue_date"`
	WidthCm     float64           `json:"width_cm"`
	HeightCm    float64           `json:"height_cm"`
	Games       int               `json:"games"`
	PricePerCm2 float64           `json:"price_per_cm2"`
	Notes       string            `json:"notes"`
}

// CalculatedItem is an OrderItem extended with derived billing fields.
// It is produced on demand and never persisted.
type CalculatedItem struct {
	OrderItem
	TotalArea  float64 `json:"total_area"`
	TotalValue float64 `json:"total_value"`
}

// ColorDetection is the outcome of scanning a filename for color-plan tags.
type ColorDetection struct {
	Tags []string `json:"tags"`
	// MinGames is the plate count implied by the matched tags, never below 1.
	MinGames int `json:"min_games"`
}

// EmailBatch is one outbound transmission unit. TotalBatches is back-filled
// only after the full partition is known.
type EmailBatch struct {
	Items        []OrderItem `json:"items"`
	BatchNumber  int         `json:"batch_number"`
	TotalBatches int         `json:"total_batches"`
}
