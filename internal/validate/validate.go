package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/printworks/platetrack/constants"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// local@domain.tld, domain must contain a dot, no embedded whitespace
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s, trimmed, has the shape local@domain.tld.
// No DNS or MX checking.
func Email(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// Dimensions gates plate width/height in centimeters. Both bounds are
// checked independently; any failure is fatal to the candidate record.
func Dimensions(widthCm, heightCm float64) error {
	if err := dimension("width", widthCm); err != nil {
		return err
	}
	if err := dimension("height", heightCm); err != nil {
		return err
	}
	return nil
}

func dimension(field string, v float64) *ValidationError {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ValidationError{Field: field, Value: v, Message: "is not a number"}
	case v <= 0:
		return &ValidationError{Field: field, Value: v, Message: "must be greater than zero"}
	case v > constants.MaxDimensionCm:
		return &ValidationError{Field: field, Value: v, Message: fmt.Sprintf("exceeds %.0f cm", constants.MaxDimensionCm)}
	}
	return nil
}

// Games coerces raw input to a plate count. This is a normalizer, not a
// gate: any unusable input becomes 1.
func Games(raw interface{}) int {
	n := 1
	switch v := raw.(type) {
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			n = int(v)
		}
	case float32:
		n = int(v)
	case string:
		s := strings.TrimSpace(v)
		if parsed, err := strconv.Atoi(s); err == nil {
			n = parsed
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = int(f)
		}
	}
	if n < 1 {
		return 1
	}
	return n
}

// PayloadBudget is the advisory capacity check for an outbound batch.
type PayloadBudget struct {
	Fits     bool
	MaxItems int
}

// EstimatePayloadBudget reports whether itemCount items fit under maxBytes
// at a fixed per-item estimate. The partitioner does the byte-accurate
// split; this only sizes up front how many items one batch could carry.
func EstimatePayloadBudget(itemCount, maxBytes, bytesPerItem int) PayloadBudget {
	if bytesPerItem <= 0 {
		bytesPerItem = constants.BytesPerItemEstimate
	}
	if maxBytes <= 0 {
		return PayloadBudget{Fits: itemCount == 0, MaxItems: 0}
	}
	maxItems := maxBytes / bytesPerItem
	return PayloadBudget{
		Fits:     itemCount <= maxItems,
		MaxItems: maxItems,
	}
}
