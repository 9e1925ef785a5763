package heuristic

import "github.com/printworks/platetrack/constants"

// 1 point = 1/72 inch
const cmPerPoint = 2.54 / 72

// DimensionsFromGeometry estimates plate size from page geometry, adding
// marginCm on both sides of both dimensions. This is the last-resort path:
// filename-derived dimensions always take priority when present.
func DimensionsFromGeometry(widthPts, heightPts, marginCm float64) Dimensions {
	if marginCm < 0 {
		marginCm = constants.DefaultMarginCm
	}
	return Dimensions{
		WidthCm:  round2(widthPts*cmPerPoint + marginCm*2),
		HeightCm: round2(heightPts*cmPerPoint + marginCm*2),
	}
}
