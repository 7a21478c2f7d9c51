// Package report renders plain-text GPA summaries.
package report

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/Tobby-01/Grademate/internal/grading"
	"github.com/Tobby-01/Grademate/internal/model"
)

const undefinedGPA = "--"

var semesterTitles = map[model.Semester]string{
	model.SemesterHarmattan: "Harmattan Semester",
	model.SemesterRain:      "Rain Semester",
}

// FormatGPA renders a GPA to two decimal places, or a placeholder when it is
// undefined. Rounding happens only here, at display time.
func FormatGPA(gpa float64, ok bool) string {
	if !ok {
		return undefinedGPA
	}
	return fmt.Sprintf("%.2f", gpa)
}

// Render prints both semester tables, their aggregates, and the CGPA.
// width limits line length when positive; zero disables truncation.
func Render(w io.Writer, set model.RecordSet, width int) error {
	results := map[model.Semester]model.AggregateResult{}
	for _, sem := range model.Semesters {
		res := grading.Aggregate(set.Courses(sem))
		results[sem] = res
		if err := renderSemester(w, sem, set.Courses(sem), res, width); err != nil {
			return err
		}
	}
	cgpa, ok := grading.Cumulative(results[model.SemesterHarmattan], results[model.SemesterRain])
	if _, err := fmt.Fprintf(w, "CGPA: %s\n", FormatGPA(cgpa, ok)); err != nil {
		return err
	}
	return nil
}

func renderSemester(w io.Writer, sem model.Semester, courses []model.CourseRecord, res model.AggregateResult, width int) error {
	if _, err := fmt.Fprintln(w, semesterTitles[sem]); err != nil {
		return err
	}

	headers := []string{"Code", "Units", "Grade"}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		if c.IsBlank() {
			continue
		}
		rows = append(rows, []string{c.Code, c.Units, c.Grade})
	}
	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, "No courses."); err != nil {
			return err
		}
	} else {
		rightAlign := map[int]bool{1: true}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if width > 0 {
				line = runewidth.Truncate(line, width, "...")
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	gpa, ok := res.GPA()
	if _, err := fmt.Fprintf(w, "QP: %d  CU: %d  GPA: %s\n", res.QualityPoints, res.CreditUnits, FormatGPA(gpa, ok)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
