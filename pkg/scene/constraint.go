package scene

import (
	"math"
	"strconv"
	"strings"
)

// PointsPerInch converts inch constraints to points.
const PointsPerInch = 72

// ParseConstraint returns the fixed width in points described by c, or -1
// when c does not describe one. The grammar is:
//
//	""        natural width
//	"120"     fixed width in points
//	"2in"     fixed width in inches
//	"*"       expandable (any string containing '*')
//
// Malformed numbers and widths outside the int32 range never fail; they
// yield -1 and the track falls back to its natural width.
func ParseConstraint(c string) int {
	if c == "" || strings.Contains(c, "*") {
		return -1
	}
	scale := 1.0
	if strings.Contains(c, "in") {
		c = strings.ReplaceAll(c, "in", "")
		scale = PointsPerInch
	}
	v, ok := parseNumber(c)
	if !ok {
		return -1
	}
	w := math.Ceil(v * scale)
	if w > math.MaxInt32 || w < math.MinInt32 {
		return -1
	}
	return int(w)
}

// Expandable reports whether c marks a track that absorbs spare width.
func Expandable(c string) bool {
	return strings.Contains(c, "*")
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return -1, false
	}
	return v, true
}
