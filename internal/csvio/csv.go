// Package csvio encodes and decodes the course record CSV format.
package csvio

import (
	"fmt"
	"strings"

	"github.com/Tobby-01/Grademate/internal/model"
)

// Header is the fixed first line of every export.
const Header = "semester,code,units,grade"

// ExportFilename is the default name for exported files.
const ExportFilename = "oau-grade-mate-export.csv"

var requiredColumns = []string{"semester", "code", "units", "grade"}

// FormatError reports a CSV document that cannot be imported at all: no
// usable lines, or a header missing required columns. Individual malformed
// rows are skipped silently and never produce a FormatError.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid CSV: %s", e.Reason)
}

// Encode serializes the record set. Harmattan rows come first, then rain;
// fully-blank placeholder rows are skipped. The three value fields are
// individually double-quoted with embedded quotes doubled.
func Encode(set model.RecordSet) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, sem := range model.Semesters {
		for _, c := range set.Courses(sem) {
			if c.IsBlank() {
				continue
			}
			b.WriteString(string(sem))
			b.WriteByte(',')
			b.WriteString(quote(c.Code))
			b.WriteByte(',')
			b.WriteString(quote(c.Units))
			b.WriteByte(',')
			b.WriteString(quote(c.Grade))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Decode parses arbitrary CSV text into a full replacement record set.
// It returns a *FormatError when the text holds no lines or the header lacks
// a required column; rows that yield fewer than four fields are skipped.
// Unrecognized semester labels fall back to harmattan. A semester with no
// rows ends up with a single blank row.
func Decode(text string) (model.RecordSet, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return model.RecordSet{}, &FormatError{Reason: "no rows found"}
	}

	if err := checkHeader(lines[0]); err != nil {
		return model.RecordSet{}, err
	}

	var set model.RecordSet
	for _, line := range lines[1:] {
		fields := splitRow(line)
		if len(fields) < 4 {
			continue
		}
		sem := model.SemesterHarmattan
		if strings.ToLower(unquote(fields[0])) == string(model.SemesterRain) {
			sem = model.SemesterRain
		}
		course := model.CourseRecord{
			Code:  unquote(fields[1]),
			Units: unquote(fields[2]),
			Grade: strings.ToUpper(unquote(fields[3])),
		}
		set.SetCourses(sem, append(set.Courses(sem), course))
	}
	set.Normalize()
	return set, nil
}

// splitLines splits on any line-ending style and drops lines that are empty
// after trimming.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// checkHeader verifies that every required column name is present. Column
// order is not validated.
func checkHeader(line string) error {
	seen := map[string]bool{}
	for _, token := range strings.Split(line, ",") {
		token = strings.ToLower(unquote(strings.TrimSpace(token)))
		seen[token] = true
	}
	for _, col := range requiredColumns {
		if !seen[col] {
			return &FormatError{Reason: fmt.Sprintf("missing required column %q", col)}
		}
	}
	return nil
}

// splitRow tokenizes a data row. Each field is either a double-quoted value
// (any characters up to the next quote) or a bare comma-free token. The
// tokenizer never fails; callers decide what to do with short rows.
func splitRow(line string) []string {
	var fields []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '"' {
			j := i + 1
			for j < len(line) && line[j] != '"' {
				j++
			}
			if j < len(line) {
				j++
			}
			fields = append(fields, line[i:j])
			i = j
			for i < len(line) && line[i] != ',' {
				i++
			}
		} else {
			j := i
			for j < len(line) && line[j] != ',' {
				j++
			}
			fields = append(fields, strings.TrimSpace(line[i:j]))
			i = j
		}
		if i < len(line) && line[i] == ',' {
			i++
			// A trailing comma means one final empty field.
			if i == len(line) {
				fields = append(fields, "")
			}
		}
	}
	return fields
}

// unquote strips one layer of surrounding double quotes if present.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
