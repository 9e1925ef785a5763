package constants

import (
	"strings"
)

// JobKind is the canonical kind for an order item.
type JobKind string

// Stable values (store these exact strings).
const (
	KindNew        JobKind = "New"
	KindReprint    JobKind = "Reprint"
	KindAdjustment JobKind = "Adjustment"
)

var allKinds = []JobKind{
	KindNew,
	KindReprint,
	KindAdjustment,
}

func KindsAsStringSlice() []string {
	result := make([]string, len(allKinds))
	for i, k := range allKinds {
		result[i] = string(k)
	}
	return result
}

// CanonicalizeKind maps free-form input onto a JobKind. Unknown or empty
// input falls back to KindNew, reported via the second return.
func CanonicalizeKind(input string) (JobKind, bool) {
	if input == "" {
		return KindNew, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]JobKind{
		"novo":       KindNew,
		"nuevo":      KindNew,
		"repeat":     KindReprint,
		"rerun":      KindReprint,
		"reimpress":  KindReprint,
		"alter":      KindAdjustment,
		"alteration": KindAdjustment,
		"fix":        KindAdjustment,
	}

	if k, ok := synonyms[normalized]; ok {
		return k, true
	}

	for _, k := range allKinds {
		if normalized == strings.ToLower(string(k)) {
			return k, true
		}
	}

	return KindNew, false
}
