package grading

import (
	"math"
	"strconv"

	"github.com/Tobby-01/Grademate/internal/model"
)

const (
	minUnits = 1
	maxUnits = 5
)

// EffectiveUnits normalizes a raw units string to the clamped integer weight
// a course contributes. ok is false when the course must be excluded from
// aggregation: unparseable, non-finite, or non-positive units.
func EffectiveUnits(raw string) (units int, ok bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	// Round first, then clamp: 0.4 rounds to 0 and clamps up to 1.
	n := int(math.Round(f))
	if n < minUnits {
		n = minUnits
	}
	if n > maxUnits {
		n = maxUnits
	}
	return n, true
}

// Aggregate folds one semester's rows into quality points and credit units.
// Rows with empty units or empty grade are skipped entirely; rows with an
// unknown grade still contribute their units at zero points. Summation is
// order-independent.
func Aggregate(courses []model.CourseRecord) model.AggregateResult {
	var res model.AggregateResult
	for _, c := range courses {
		if c.Units == "" || c.Grade == "" {
			continue
		}
		units, ok := EffectiveUnits(c.Units)
		if !ok {
			continue
		}
		res.QualityPoints += units * GradePoint(c.Grade)
		res.CreditUnits += units
	}
	return res
}

// Cumulative combines both semester results into a CGPA. ok is false when
// neither semester contributed any credit units.
func Cumulative(a, b model.AggregateResult) (cgpa float64, ok bool) {
	units := a.CreditUnits + b.CreditUnits
	if units == 0 {
		return 0, false
	}
	return float64(a.QualityPoints+b.QualityPoints) / float64(units), true
}
