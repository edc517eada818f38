package server

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const rowScript = `{"script": {"steps": [
	{"action": "start", "x": 20, "y": 20},
	{"action": "move", "x": 50, "y": 20},
	{"action": "move", "x": 80, "y": 20},
	{"action": "end", "x": 80, "y": 20}
]}}`

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReplay(t *testing.T) {
	rec := do(t, http.MethodPost, "/replay", rowScript)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if got := gjson.Get(body, "patterns.0").Raw; got != "[1,2,3]" {
		t.Errorf("patterns.0 = %s, want [1,2,3]", got)
	}
	if got := gjson.Get(body, "patterns.#").Int(); got != 1 {
		t.Errorf("patterns.# = %d, want 1", got)
	}
	if got := gjson.Get(body, "selection").Raw; got != "[1,2,3]" {
		t.Errorf("selection = %s", got)
	}
	if got := gjson.Get(body, "lines.#").Int(); got != 2 {
		t.Errorf("lines.# = %d, want 2", got)
	}
	if got := gjson.Get(body, "lines.1.x2").Float(); got != 80 {
		t.Errorf("lines.1.x2 = %v, want 80", got)
	}
	if got := gjson.Get(body, "state").String(); got != "idle" {
		t.Errorf("state = %q", got)
	}
	if got := gjson.Get(body, "hitRadius").Float(); got != 15 {
		t.Errorf("hitRadius = %v", got)
	}
}

func TestReplay_CustomConfig(t *testing.T) {
	body := `{
		"config": {"hit_radius": 5},
		"script": {"steps": [
			{"action": "start", "x": 30, "y": 20},
			{"action": "end"},
			{"action": "start", "x": 22, "y": 20},
			{"action": "end"}
		]}
	}`
	rec := do(t, http.MethodPost, "/replay", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	out := rec.Body.String()
	if got := gjson.Get(out, "patterns").Raw; got != "[[1]]" {
		t.Errorf("patterns = %s, want [[1]]", got)
	}
	if got := gjson.Get(out, "hitRadius").Float(); got != 5 {
		t.Errorf("hitRadius = %v, want 5", got)
	}
}

func TestReplay_NoPatterns(t *testing.T) {
	rec := do(t, http.MethodPost, "/replay", `{"script": {"steps": [{"action": "start", "x": 1, "y": 1}]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "patterns").Raw; got != "[]" {
		t.Errorf("patterns = %s, want []", got)
	}
}

func TestReplay_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"script":`},
		{"missing script", `{"config": {}}`},
		{"bad script", `{"script": {"steps": []}}`},
		{"bad config", `{"config": {"hit_radius": 0}, "script": {"steps": [{"action": "clear"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, http.MethodPost, "/replay", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	rec := do(t, http.MethodPost, "/snapshot?w=120&h=80", rowScript)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("size = %dx%d, want 120x80", b.Dx(), b.Dy())
	}
}

func TestSnapshot_BadSize(t *testing.T) {
	for _, q := range []string{"w=0", "h=abc", "w=99999"} {
		rec := do(t, http.MethodPost, "/snapshot?"+q, rowScript)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, http.MethodGet, "/replay", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /replay = %d, want 405", rec.Code)
	}
}
