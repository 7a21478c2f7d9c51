// Package grading computes grade points, semester GPA, and cumulative GPA.
package grading

import "strings"

// gradePoints maps uppercase letter grades to their point values on the
// 5-point scale.
var gradePoints = map[string]int{
	"A": 5,
	"B": 4,
	"C": 3,
	"D": 2,
	"E": 1,
	"F": 0,
}

// GradePoint returns the point value for a letter grade. The grade is
// uppercased before lookup; anything outside A-F scores zero rather than
// erroring.
func GradePoint(grade string) int {
	return gradePoints[strings.ToUpper(grade)]
}
