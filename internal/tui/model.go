// Package tui provides the Bubble Tea course editor.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Tobby-01/Grademate/internal/grading"
	"github.com/Tobby-01/Grademate/internal/model"
	"github.com/Tobby-01/Grademate/internal/report"
	"github.com/Tobby-01/Grademate/internal/storage"
)

const (
	fieldCode = iota
	fieldUnits
	fieldGrade
	fieldCount
)

const (
	codeColWidth  = 12
	unitsColWidth = 6
	gradeColWidth = 6
)

var fieldLabels = [fieldCount]string{"Code", "Units", "Grade"}

// Model implements the Bubble Tea course editor.
type Model struct {
	payload storage.Payload
	manager *storage.Manager

	width  int
	height int

	row   int
	field int
	input textinput.Model

	errMsg string
}

// NewModel constructs the course editor over a loaded payload.
func NewModel(payload storage.Payload, manager *storage.Manager) *Model {
	m := &Model{
		payload: payload,
		manager: manager,
	}
	m.payload.Set.Normalize()
	m.input = newCellInput()
	m.focusCell(0, fieldCode)
	return m
}

func newCellInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.commitCell()
			return m, tea.Quit
		}
		if m.payload.Prefs.View == model.ViewSettings {
			return m.updateSettings(msg)
		}
		return m.updateCourses(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateCourses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.moveField(1)
		return m, nil
	case "shift+tab":
		m.moveField(-1)
		return m, nil
	case "enter", "down":
		m.moveRow(1)
		return m, nil
	case "up":
		m.moveRow(-1)
		return m, nil
	case "ctrl+n":
		m.commitCell()
		m.payload.Set.AddCourse(m.payload.Current)
		m.focusCell(len(m.courses())-1, fieldCode)
		m.persist()
		return m, nil
	case "ctrl+d":
		// Deleting the last remaining row leaves a single blank row.
		m.payload.Set.RemoveCourse(m.payload.Current, m.row)
		if m.row >= len(m.courses()) {
			m.row = len(m.courses()) - 1
		}
		m.focusCell(m.row, m.field)
		m.persist()
		return m, nil
	case "ctrl+t":
		m.commitCell()
		m.toggleSemester()
		m.persist()
		return m, nil
	case "ctrl+s":
		m.commitCell()
		m.payload.Prefs.View = model.ViewSettings
		m.persist()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t":
		m.payload.Prefs.Theme = nextTheme(m.payload.Prefs.Theme)
		m.persist()
	case "r":
		m.payload.Prefs.RememberData = !m.payload.Prefs.RememberData
		m.persist()
	case "x":
		if err := m.manager.Clear(context.Background()); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.payload = storage.DefaultPayload()
		m.payload.Prefs.View = model.ViewSettings
		m.focusCell(0, fieldCode)
		m.errMsg = ""
	case "esc", "ctrl+s":
		m.payload.Prefs.View = model.ViewCourses
		m.focusCell(m.row, m.field)
		m.persist()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	styles := stylesFor(m.payload.Prefs.Theme, m.payload.Current)
	var sections []string
	sections = append(sections, m.renderTabs(styles))
	if m.payload.Prefs.View == model.ViewSettings {
		sections = append(sections, m.renderSettings(styles))
	} else {
		sections = append(sections, m.renderCourses(styles))
	}
	sections = append(sections, m.renderFooter(styles))
	return strings.Join(sections, "\n")
}

func (m *Model) renderTabs(styles themeStyles) string {
	parts := make([]string, 0, 3)
	for _, sem := range model.Semesters {
		label := semesterLabel(sem)
		active := m.payload.Prefs.View == model.ViewCourses && m.payload.Current == sem
		if active {
			parts = append(parts, styles.activeTab.Render(label))
		} else {
			parts = append(parts, styles.inactiveTab.Render(label))
		}
	}
	if m.payload.Prefs.View == model.ViewSettings {
		parts = append(parts, styles.activeTab.Render("Settings"))
	} else {
		parts = append(parts, styles.inactiveTab.Render("Settings"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderCourses(styles themeStyles) string {
	var b strings.Builder
	header := padCell(fieldLabels[fieldCode], codeColWidth) +
		padCell(fieldLabels[fieldUnits], unitsColWidth) +
		padCell(fieldLabels[fieldGrade], gradeColWidth)
	b.WriteString(styles.summary.Render(header))
	b.WriteByte('\n')

	widths := [fieldCount]int{codeColWidth, unitsColWidth, gradeColWidth}
	for i, c := range m.courses() {
		cells := [fieldCount]string{c.Code, c.Units, c.Grade}
		for f := 0; f < fieldCount; f++ {
			if i == m.row && f == m.field {
				b.WriteString(padANSICell(styles.focusedCell.Render(m.input.View()), widths[f]))
				continue
			}
			b.WriteString(styles.cell.Render(padCell(truncateCell(cells[f], widths[f]-1), widths[f])))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSettings(styles themeStyles) string {
	remember := "no"
	if m.payload.Prefs.RememberData {
		remember = "yes"
	}
	lines := []string{
		styles.title.Render("Settings"),
		fmt.Sprintf("Theme:    %s", m.payload.Prefs.Theme),
		fmt.Sprintf("Remember: %s", remember),
		"",
		styles.help.Render("t: cycle theme  r: toggle remember  x: clear saved data  esc: back"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(styles themeStyles) string {
	summary := m.summaryLine()
	help := "tab: next field  enter/up/down: rows  ctrl+n: add  ctrl+d: delete  ctrl+t: semester  ctrl+s: settings  ctrl+c: quit"
	footer := styles.summary.Render(truncateCell(summary, m.width)) + "\n" +
		styles.help.Render(truncateCell(help, m.width))
	if m.errMsg != "" {
		footer += "\n" + styles.errText.Render(truncateCell(m.errMsg, m.width))
	}
	return footer
}

// summaryLine recomputes all aggregates from the current record set. Results
// are derived state and never cached across edits.
func (m *Model) summaryLine() string {
	set := m.snapshotSet()
	harmattan := grading.Aggregate(set.Harmattan)
	rain := grading.Aggregate(set.Rain)
	hGPA, hOK := harmattan.GPA()
	rGPA, rOK := rain.GPA()
	cgpa, cOK := grading.Cumulative(harmattan, rain)
	return fmt.Sprintf("Harmattan GPA: %s  Rain GPA: %s  CGPA: %s",
		report.FormatGPA(hGPA, hOK),
		report.FormatGPA(rGPA, rOK),
		report.FormatGPA(cgpa, cOK))
}

// snapshotSet returns the record set with the in-flight cell edit applied,
// without committing it to the payload.
func (m *Model) snapshotSet() model.RecordSet {
	set := m.payload.Set
	courses := append([]model.CourseRecord(nil), set.Courses(m.payload.Current)...)
	if m.row >= 0 && m.row < len(courses) {
		courses[m.row] = withField(courses[m.row], m.field, m.input.Value())
	}
	set.SetCourses(m.payload.Current, courses)
	return set
}

func (m *Model) courses() []model.CourseRecord {
	return m.payload.Set.Courses(m.payload.Current)
}

func (m *Model) moveField(delta int) {
	m.commitCell()
	field := m.field + delta
	row := m.row
	if field >= fieldCount {
		field = fieldCode
		row++
		if row >= len(m.courses()) {
			row = 0
		}
	}
	if field < 0 {
		field = fieldGrade
		row--
		if row < 0 {
			row = len(m.courses()) - 1
		}
	}
	m.focusCell(row, field)
}

func (m *Model) moveRow(delta int) {
	m.commitCell()
	row := m.row + delta
	count := len(m.courses())
	if row < 0 {
		row = count - 1
	}
	if row >= count {
		row = 0
	}
	m.focusCell(row, m.field)
}

func (m *Model) toggleSemester() {
	if m.payload.Current == model.SemesterRain {
		m.payload.Current = model.SemesterHarmattan
	} else {
		m.payload.Current = model.SemesterRain
	}
	m.focusCell(0, fieldCode)
}

// commitCell writes the active input's value back into the record set and
// persists. Raw values are stored as typed; validation waits until
// aggregation.
func (m *Model) commitCell() {
	courses := m.courses()
	if m.row < 0 || m.row >= len(courses) {
		return
	}
	updated := withField(courses[m.row], m.field, m.input.Value())
	if updated == courses[m.row] {
		return
	}
	courses[m.row] = updated
	m.payload.Set.SetCourses(m.payload.Current, courses)
	m.persist()
}

func (m *Model) focusCell(row, field int) {
	courses := m.courses()
	if row < 0 {
		row = 0
	}
	if row >= len(courses) {
		row = len(courses) - 1
	}
	if field < 0 || field >= fieldCount {
		field = fieldCode
	}
	m.row = row
	m.field = field
	m.input.SetValue(fieldValue(courses[row], field))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) persist() {
	if err := m.manager.Save(context.Background(), m.payload); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func fieldValue(c model.CourseRecord, field int) string {
	switch field {
	case fieldUnits:
		return c.Units
	case fieldGrade:
		return c.Grade
	default:
		return c.Code
	}
}

func withField(c model.CourseRecord, field int, value string) model.CourseRecord {
	switch field {
	case fieldUnits:
		c.Units = value
	case fieldGrade:
		c.Grade = strings.ToUpper(value)
	default:
		c.Code = value
	}
	return c
}

func semesterLabel(sem model.Semester) string {
	if sem == model.SemesterRain {
		return "Rain"
	}
	return "Harmattan"
}

func padCell(value string, width int) string {
	w := runewidth.StringWidth(value)
	if w >= width {
		return value
	}
	return value + strings.Repeat(" ", width-w)
}

// padANSICell pads styled content whose printable width lipgloss must
// measure.
func padANSICell(value string, width int) string {
	w := lipgloss.Width(value)
	if w >= width {
		return value
	}
	return value + strings.Repeat(" ", width-w)
}

func truncateCell(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "")
}
