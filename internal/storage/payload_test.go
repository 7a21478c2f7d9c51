package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/Tobby-01/Grademate/internal/model"
)

func samplePayload() Payload {
	p := DefaultPayload()
	p.Set.Harmattan = []model.CourseRecord{
		{Code: "CSC101", Units: "3", Grade: "A"},
		{Code: "MTH102", Units: "4", Grade: "B"},
	}
	p.Set.Rain = []model.CourseRecord{
		{Code: "PHY103", Units: "2", Grade: "C"},
	}
	p.Current = model.SemesterRain
	p.Prefs = model.Preferences{
		RememberData: false,
		Theme:        model.ThemePurple,
		View:         model.ViewSettings,
	}
	return p
}

func TestEncodeDecodePayload(t *testing.T) {
	p := samplePayload()
	body, err := EncodePayload(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, ok := DecodePayload(body)
	if !ok {
		t.Fatal("expected payload to decode")
	}
	if !reflect.DeepEqual(decoded, p) {
		t.Errorf("decoded = %+v, want %+v", decoded, p)
	}
}

func TestDecodePayloadLegacyFlatShape(t *testing.T) {
	body := `{"hamattan":[{"code":"CSC101","units":"3","grade":"A"}],"rain":[]}`
	p, ok := DecodePayload([]byte(body))
	if !ok {
		t.Fatal("expected payload to decode")
	}
	want := []model.CourseRecord{{Code: "CSC101", Units: "3", Grade: "A"}}
	if !reflect.DeepEqual(p.Set.Harmattan, want) {
		t.Errorf("harmattan = %+v, want %+v", p.Set.Harmattan, want)
	}
	if len(p.Set.Rain) != 1 || !p.Set.Rain[0].IsBlank() {
		t.Errorf("rain = %+v, want a single blank row", p.Set.Rain)
	}
}

func TestDecodePayloadKeepsCanonicalOverLegacy(t *testing.T) {
	body := `{"semesters":{"harmattan":[{"code":"NEW","units":"2","grade":"B"}],` +
		`"hamattan":[{"code":"OLD","units":"3","grade":"A"}],"rain":[]}}`
	p, ok := DecodePayload([]byte(body))
	if !ok {
		t.Fatal("expected payload to decode")
	}
	if len(p.Set.Harmattan) != 1 || p.Set.Harmattan[0].Code != "NEW" {
		t.Errorf("harmattan = %+v, want the canonical-key rows", p.Set.Harmattan)
	}
}

func TestDecodePayloadTolerance(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{"semesters":`},
		{"top-level array", `[1,2,3]`},
		{"plain string", `"hello"`},
	}
	for _, tc := range cases {
		if _, ok := DecodePayload([]byte(tc.body)); ok {
			t.Errorf("%s: expected decode to report no payload", tc.name)
		}
	}

	// Malformed fields inside a valid object are ignored, not fatal.
	body := `{"semesters":{"harmattan":"oops","rain":null},` +
		`"currentSemester":42,"rememberData":"yes","theme":"neon","view":[]}`
	p, ok := DecodePayload([]byte(body))
	if !ok {
		t.Fatal("expected decode to succeed with defaults")
	}
	if !reflect.DeepEqual(p, DefaultPayload()) {
		t.Errorf("payload = %+v, want defaults", p)
	}
}

func TestDecodePayloadLegacyThemeAlias(t *testing.T) {
	p, ok := DecodePayload([]byte(`{"theme":"both"}`))
	if !ok {
		t.Fatal("expected payload to decode")
	}
	if p.Prefs.Theme != model.ThemeCombined {
		t.Errorf("theme = %q, want %q", p.Prefs.Theme, model.ThemeCombined)
	}
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemStore(), NewMemStore())

	p := samplePayload()
	p.Prefs.RememberData = true
	if err := m.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored payload")
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Errorf("loaded = %+v, want %+v", loaded, p)
	}
}

func TestManagerOneCopyInvariant(t *testing.T) {
	ctx := context.Background()
	durable := NewMemStore()
	ephemeral := NewMemStore()
	m := NewManager(durable, ephemeral)

	p := samplePayload()
	p.Prefs.RememberData = true
	if err := m.Save(ctx, p); err != nil {
		t.Fatalf("save durable: %v", err)
	}
	if _, ok, _ := ephemeral.Read(ctx); ok {
		t.Error("ephemeral store should be empty after a durable save")
	}

	p.Prefs.RememberData = false
	if err := m.Save(ctx, p); err != nil {
		t.Fatalf("save ephemeral: %v", err)
	}
	if _, ok, _ := durable.Read(ctx); ok {
		t.Error("durable store should be cleared after an ephemeral save")
	}
	if _, ok, _ := ephemeral.Read(ctx); !ok {
		t.Error("ephemeral store should hold the payload")
	}
}

func TestManagerLoadPrefersDurable(t *testing.T) {
	ctx := context.Background()
	durable := NewMemStore()
	ephemeral := NewMemStore()
	m := NewManager(durable, ephemeral)

	durableBody, _ := EncodePayload(samplePayload())
	if err := durable.Write(ctx, string(durableBody)); err != nil {
		t.Fatalf("write durable: %v", err)
	}
	other := DefaultPayload()
	other.Set.Harmattan = []model.CourseRecord{{Code: "EPH", Units: "1", Grade: "A"}}
	ephemeralBody, _ := EncodePayload(other)
	if err := ephemeral.Write(ctx, string(ephemeralBody)); err != nil {
		t.Fatalf("write ephemeral: %v", err)
	}

	loaded, ok, err := m.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if loaded.Set.Harmattan[0].Code != "CSC101" {
		t.Errorf("loaded %q, want the durable copy", loaded.Set.Harmattan[0].Code)
	}
}

func TestManagerLoadNothing(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemStore(), NewMemStore())
	if _, ok, err := m.Load(ctx); ok || err != nil {
		t.Errorf("load = ok=%v err=%v, want nothing", ok, err)
	}

	// A corrupt durable body falls through to nothing, never an error.
	if err := m.Durable.Write(ctx, "{corrupt"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := m.Load(ctx); ok || err != nil {
		t.Errorf("load with corrupt body = ok=%v err=%v, want nothing", ok, err)
	}
}

func TestManagerClear(t *testing.T) {
	ctx := context.Background()
	durable := NewMemStore()
	ephemeral := NewMemStore()
	m := NewManager(durable, ephemeral)

	if err := durable.Write(ctx, "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ephemeral.Write(ctx, "y"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := durable.Read(ctx); ok {
		t.Error("durable store should be empty after clear")
	}
	if _, ok, _ := ephemeral.Read(ctx); ok {
		t.Error("ephemeral store should be empty after clear")
	}
}
