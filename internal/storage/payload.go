package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tobby-01/Grademate/internal/model"
)

// legacyHarmattanKey is the historical misspelling of the harmattan key.
// Payloads written under it are renamed to the canonical key on read.
const legacyHarmattanKey = "hamattan"

// legacyCombinedTheme is the stored alias older payloads used for the
// combined theme.
const legacyCombinedTheme = "both"

// Payload is the full persisted application state.
type Payload struct {
	Set     model.RecordSet
	Current model.Semester
	Prefs   model.Preferences
}

// DefaultPayload returns the state used before anything has been saved.
func DefaultPayload() Payload {
	return Payload{
		Set:     model.NewRecordSet(),
		Current: model.SemesterHarmattan,
		Prefs:   model.DefaultPreferences(),
	}
}

type jsonPayload struct {
	Semesters jsonSemesters  `json:"semesters"`
	Current   model.Semester `json:"currentSemester"`
	Remember  bool           `json:"rememberData"`
	Theme     model.Theme    `json:"theme"`
	View      model.View     `json:"view"`
}

type jsonSemesters struct {
	Harmattan []model.CourseRecord `json:"harmattan"`
	Rain      []model.CourseRecord `json:"rain"`
}

// EncodePayload serializes the payload to its JSON wire form. The semester
// map is always written under the canonical keys.
func EncodePayload(p Payload) ([]byte, error) {
	data, err := json.Marshal(jsonPayload{
		Semesters: jsonSemesters{Harmattan: p.Set.Harmattan, Rain: p.Set.Rain},
		Current:   p.Current,
		Remember:  p.Prefs.RememberData,
		Theme:     p.Prefs.Theme,
		View:      p.Prefs.View,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload parses a stored payload, tolerating every legacy shape:
// a flat semester map without the "semesters" wrapper, the misspelled
// "hamattan" key, non-list semester values, and missing or mistyped
// preference fields. ok is false only when the body is not a JSON object at
// all; a corrupt payload never fails, it just falls back to defaults.
func DecodePayload(body []byte) (Payload, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Payload{}, false
	}

	p := DefaultPayload()

	// Unwrap the "semesters" field when present; otherwise the top-level
	// object itself is the semester map (legacy flat format).
	semesters := top
	if raw, ok := top["semesters"]; ok {
		var unwrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &unwrapped); err == nil {
			semesters = unwrapped
		}
	}
	if _, ok := semesters[string(model.SemesterHarmattan)]; !ok {
		if raw, ok := semesters[legacyHarmattanKey]; ok {
			semesters[string(model.SemesterHarmattan)] = raw
		}
	}
	p.Set.Harmattan = decodeCourses(semesters[string(model.SemesterHarmattan)])
	p.Set.Rain = decodeCourses(semesters[string(model.SemesterRain)])

	if raw, ok := top["currentSemester"]; ok {
		var sem model.Semester
		if err := json.Unmarshal(raw, &sem); err == nil {
			if sem == model.SemesterRain {
				p.Current = model.SemesterRain
			} else {
				p.Current = model.SemesterHarmattan
			}
		}
	}
	if raw, ok := top["rememberData"]; ok {
		var remember bool
		if err := json.Unmarshal(raw, &remember); err == nil {
			p.Prefs.RememberData = remember
		}
	}
	if raw, ok := top["theme"]; ok {
		var theme model.Theme
		if err := json.Unmarshal(raw, &theme); err == nil {
			switch theme {
			case model.ThemeGolden, model.ThemePurple, model.ThemeCombined:
				p.Prefs.Theme = theme
			case legacyCombinedTheme:
				p.Prefs.Theme = model.ThemeCombined
			}
		}
	}
	if raw, ok := top["view"]; ok {
		var view model.View
		if err := json.Unmarshal(raw, &view); err == nil {
			switch view {
			case model.ViewCourses, model.ViewSettings:
				p.Prefs.View = view
			}
		}
	}
	return p, true
}

// decodeCourses parses one semester's value. Anything that is not a
// non-empty list of rows becomes a single blank row.
func decodeCourses(raw json.RawMessage) []model.CourseRecord {
	if len(raw) == 0 {
		return []model.CourseRecord{{}}
	}
	var courses []model.CourseRecord
	if err := json.Unmarshal(raw, &courses); err != nil || len(courses) == 0 {
		return []model.CourseRecord{{}}
	}
	return courses
}

// Manager routes payloads between the durable and ephemeral stores based on
// the remember-data preference, keeping at most one copy alive.
type Manager struct {
	Durable   Store
	Ephemeral Store
}

// NewManager wires a manager over the two backing stores.
func NewManager(durable, ephemeral Store) *Manager {
	return &Manager{Durable: durable, Ephemeral: ephemeral}
}

// Load reads the payload, durable store first, then ephemeral. ok is false
// when neither store holds a usable payload; corrupt bodies are treated as
// absent so startup never fails.
func (m *Manager) Load(ctx context.Context) (Payload, bool, error) {
	for _, st := range []Store{m.Durable, m.Ephemeral} {
		body, ok, err := st.Read(ctx)
		if err != nil {
			return Payload{}, false, fmt.Errorf("failed to read payload: %w", err)
		}
		if !ok {
			continue
		}
		if p, ok := DecodePayload([]byte(body)); ok {
			return p, true, nil
		}
	}
	return Payload{}, false, nil
}

// Save writes the payload to the store selected by the remember-data
// preference and clears the other store's copy.
func (m *Manager) Save(ctx context.Context, p Payload) error {
	body, err := EncodePayload(p)
	if err != nil {
		return err
	}
	target, other := m.Ephemeral, m.Durable
	if p.Prefs.RememberData {
		target, other = m.Durable, m.Ephemeral
	}
	if err := target.Write(ctx, string(body)); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	if err := other.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stale payload: %w", err)
	}
	return nil
}

// Clear removes the payload from both stores unconditionally.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.Durable.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear durable payload: %w", err)
	}
	if err := m.Ephemeral.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear ephemeral payload: %w", err)
	}
	return nil
}
