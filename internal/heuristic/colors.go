package heuristic

import (
	"regexp"
	"strings"

	"github.com/printworks/platetrack/internal/entity"
)

// colorRule recognizes one color-plan marker in a filename. Rules are
// evaluated in declaration order and every match contributes its tag and
// implied plate count to the accumulated result.
type colorRule struct {
	name    string
	pattern *regexp.Regexp
	games   int
	// tagFromMatch substitutes the matched token (uppercased) for name,
	// used for spot-color codes like "2745C".
	tagFromMatch bool
}

// token wraps body with explicit non-alphanumeric boundaries; see the
// note on word separators in filename.go.
func token(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(` + body + `)(?:[^a-z0-9]|$)`)
}

var colorRules = []colorRule{
	{name: "CMYK", pattern: token(`cmyk`), games: 4},
	{name: "Spot", pattern: token(`\d{3,5}c`), games: 1, tagFromMatch: true},
	{name: "Grayscale", pattern: token(`grayscale|greyscale|gray|grey`), games: 1},
	{name: "Black", pattern: token(`black|preto`), games: 1},
	{name: "White", pattern: token(`white|branco`), games: 1},
	{name: "Red", pattern: token(`red|vermelho`), games: 1},
	{name: "Blue", pattern: token(`blue|azul`), games: 1},
}

// DetectColors scans name against the fixed recognizer list. The implied
// games count is the running total of all matches, floored at 1 so a
// filename with no markers still yields a usable count.
func DetectColors(name string) entity.ColorDetection {
	var tags []string
	total := 0

	for _, rule := range colorRules {
		m := rule.pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		tag := rule.name
		if rule.tagFromMatch {
			tag = strings.ToUpper(m[1])
		}
		tags = append(tags, tag)
		total += rule.games
	}

	if total < 1 {
		total = 1
	}
	return entity.ColorDetection{Tags: tags, MinGames: total}
}
