// Package model defines shared data structures.
package model

// Semester identifies one of the two fixed academic semesters.
type Semester string

const (
	// SemesterHarmattan is the first semester. Canonical spelling is
	// "harmattan"; the historical misspelling "hamattan" is accepted on
	// read and normalized by the storage layer.
	SemesterHarmattan Semester = "harmattan"
	// SemesterRain is the second semester.
	SemesterRain Semester = "rain"
)

// Semesters lists both semesters in display and export order.
var Semesters = []Semester{SemesterHarmattan, SemesterRain}

// CourseRecord holds one course row as raw strings. Fields may be empty or
// invalid while the user is editing; normalization happens at aggregation
// time, not here.
type CourseRecord struct {
	Code  string `json:"code"`
	Units string `json:"units"`
	Grade string `json:"grade"`
}

// IsBlank reports whether all three fields are empty.
func (c CourseRecord) IsBlank() bool {
	return c.Code == "" && c.Units == "" && c.Grade == ""
}

// RecordSet holds the ordered course rows for both semesters. Each slice is
// never empty: a semester with no courses holds a single blank row.
type RecordSet struct {
	Harmattan []CourseRecord `json:"harmattan"`
	Rain      []CourseRecord `json:"rain"`
}

// NewRecordSet returns a record set with one blank row per semester.
func NewRecordSet() RecordSet {
	return RecordSet{
		Harmattan: []CourseRecord{{}},
		Rain:      []CourseRecord{{}},
	}
}

// Courses returns the rows for the given semester. Unknown semester values
// map to harmattan.
func (s *RecordSet) Courses(sem Semester) []CourseRecord {
	if sem == SemesterRain {
		return s.Rain
	}
	return s.Harmattan
}

// SetCourses replaces the rows for the given semester, substituting a single
// blank row for an empty slice.
func (s *RecordSet) SetCourses(sem Semester, courses []CourseRecord) {
	if len(courses) == 0 {
		courses = []CourseRecord{{}}
	}
	if sem == SemesterRain {
		s.Rain = courses
		return
	}
	s.Harmattan = courses
}

// AddCourse appends a blank row to the given semester.
func (s *RecordSet) AddCourse(sem Semester) {
	s.SetCourses(sem, append(s.Courses(sem), CourseRecord{}))
}

// RemoveCourse deletes the row at idx. Removing the last remaining row
// leaves a single blank row instead of an empty semester.
func (s *RecordSet) RemoveCourse(sem Semester, idx int) {
	courses := s.Courses(sem)
	if idx < 0 || idx >= len(courses) {
		return
	}
	if len(courses) == 1 {
		s.SetCourses(sem, []CourseRecord{{}})
		return
	}
	out := make([]CourseRecord, 0, len(courses)-1)
	out = append(out, courses[:idx]...)
	out = append(out, courses[idx+1:]...)
	s.SetCourses(sem, out)
}

// Normalize restores the never-empty invariant after decoding external data.
func (s *RecordSet) Normalize() {
	if len(s.Harmattan) == 0 {
		s.Harmattan = []CourseRecord{{}}
	}
	if len(s.Rain) == 0 {
		s.Rain = []CourseRecord{{}}
	}
}

// AggregateResult holds the summed contributions of one semester.
type AggregateResult struct {
	QualityPoints int
	CreditUnits   int
}

// GPA returns quality points over credit units. The second return value is
// false when no course contributed any credit units.
func (r AggregateResult) GPA() (float64, bool) {
	if r.CreditUnits == 0 {
		return 0, false
	}
	return float64(r.QualityPoints) / float64(r.CreditUnits), true
}

// Theme selects the TUI color scheme.
type Theme string

const (
	ThemeGolden   Theme = "golden"
	ThemePurple   Theme = "purple"
	ThemeCombined Theme = "combined"
)

// View selects the active TUI screen.
type View string

const (
	ViewCourses  View = "courses"
	ViewSettings View = "settings"
)

// Preferences holds user settings persisted alongside the record set.
type Preferences struct {
	RememberData bool
	Theme        Theme
	View         View
}

// DefaultPreferences returns the preferences used before any payload exists.
func DefaultPreferences() Preferences {
	return Preferences{
		RememberData: true,
		Theme:        ThemeGolden,
		View:         ViewCourses,
	}
}
