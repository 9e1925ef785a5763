package heuristic

import (
	"math"
	"regexp"
	"strconv"

	"github.com/printworks/platetrack/internal/validate"
)

// Filenames separate tokens with underscores and dots, which regexp \b
// treats as word characters. Boundaries are therefore spelled out as
// "not a letter or digit" on both sides.
var (
	reJobNumber = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(\d{4,})(?:[^a-z0-9]|$)`)
	reDimsMM    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)mm`)
)

// Dimensions is a plate size in centimeters.
type Dimensions struct {
	WidthCm  float64
	HeightCm float64
}

// JobNumber returns the first run of 4 or more consecutive digits in name,
// or "" when there is none. Absence is not an error. Runs glued to letters
// (spot-color codes like 2745C) or to an x-dimension do not count.
func JobNumber(name string) string {
	m := reJobNumber.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// DimensionsFromName extracts a `<w>x<h>mm` pattern from name and converts
// it to centimeters, rounded to 2 decimals. A matched pair that fails the
// dimension gate is discarded: callers must fall back to page geometry.
func DimensionsFromName(name string) *Dimensions {
	m := reDimsMM.FindStringSubmatch(name)
	if m == nil {
		return nil
	}
	wMM, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	hMM, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	d := &Dimensions{
		WidthCm:  round2(wMM / 10),
		HeightCm: round2(hMM / 10),
	}
	if validate.Dimensions(d.WidthCm, d.HeightCm) != nil {
		return nil
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
