package migrate

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/validate"
)

// Migrate converts an arbitrary loosely-typed record into a canonical
// OrderItem. Every field is defaulted independently, so a record with one
// bad field keeps the rest. Width/height are deliberately not run through
// the dimension gate here: migration of already-stored records must not
// destroy them. The only hard failure is input that is not an object.
func Migrate(raw any) (entity.OrderItem, error) {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return entity.OrderItem{}, fmt.Errorf("migrate: not an object: %T", raw)
	}

	item := entity.OrderItem{
		ID:          asString(m, "id"),
		JobNumber:   asString(m, "job_number", "jobNumber", "number"),
		Client:      asString(m, "client", "client_description", "customer"),
		ColorPlan:   asString(m, "color_plan", "colorPlan", "colors"),
		Notes:       asString(m, "notes", "observations", "obs"),
		WidthCm:     asFloat(m, 0, "width_cm", "width"),
		HeightCm:    asFloat(m, 0, "height_cm", "height"),
		Games:       validate.Games(firstPresent(m, "games", "quantity", "qty")),
		PricePerCm2: asFloat(m, constants.DefaultPricePerCm2, "price_per_cm2", "price", "rate"),
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Kind, _ = constants.CanonicalizeKind(asString(m, "kind", "job_kind", "type"))
	item.IssueDate = asDate(firstPresent(m, "issue_date", "issueDate", "date"))

	return item, nil
}

// MigrateAll applies Migrate to each element independently. Items that
// fail the object check are logged and discarded; they never poison the
// rest of the collection.
func MigrateAll(raw []any, logger *slog.Logger) []entity.OrderItem {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]entity.OrderItem, 0, len(raw))
	for i, r := range raw {
		item, err := Migrate(r)
		if err != nil {
			logger.Warn("migrate.item.discarded", "index", i, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func asString(m map[string]any, keys ...string) string {
	v := firstPresent(m, keys...)
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asFloat(m map[string]any, fallback float64, keys ...string) float64 {
	switch v := firstPresent(m, keys...).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

// asDate accepts time.Time or common date string layouts; anything else
// becomes today (midnight UTC, DATE semantics).
func asDate(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		if !t.IsZero() {
			return dateOnly(t)
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return dateOnly(parsed)
			}
		}
	}
	return dateOnly(time.Now().UTC())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
