// Package server exposes gesture replay over HTTP: clients post a recorded
// gesture script (and optionally a lock configuration) and get back the
// resulting pattern as JSON or the final lock state as a PNG.
package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/phanxgames/patternlock"
	"github.com/phanxgames/patternlock/snapshot"
)

const (
	maxBodyBytes    = 1 << 20
	defaultSnapSize = 300
	maxSnapSize     = 2048
)

// NewRouter returns the service router with the standard middleware stack.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	NewReplayHandler().RegisterRoutes(r)
	return r
}

// ReplayHandler serves the replay endpoints. Each request builds its own
// Lock, so the handler holds no shared gesture state.
type ReplayHandler struct{}

func NewReplayHandler() *ReplayHandler {
	return &ReplayHandler{}
}

func (h *ReplayHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Post("/replay", h.replay)
	r.Post("/snapshot", h.snapshot)
}

func (h *ReplayHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// replay accepts {"config": {...}, "script": {...}} and responds with the
// emitted patterns, final selection, state and connected lines.
func (h *ReplayHandler) replay(w http.ResponseWriter, r *http.Request) {
	lock, res, err := runRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body, err := encodeResult(res, lock)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// snapshot accepts the same body as replay and responds with a PNG of the
// final lock state. Query parameters w and h set the image size.
func (h *ReplayHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	width, err := sizeParam(r, "w")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := sizeParam(r, "h")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lock, _, err := runRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := snapshot.EncodePNG(&buf, lock, width, height); err != nil {
		patternlock.Logger().Warn("snapshot failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func runRequest(r *http.Request) (*patternlock.Lock, patternlock.ReplayResult, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, patternlock.ReplayResult{}, fmt.Errorf("read body: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, patternlock.ReplayResult{}, fmt.Errorf("body is not valid json")
	}

	cfg := patternlock.DefaultConfig()
	if raw := gjson.GetBytes(data, "config"); raw.Exists() {
		cfg, err = patternlock.ParseJSON([]byte(raw.Raw))
		if err != nil {
			return nil, patternlock.ReplayResult{}, err
		}
	}
	lock, err := patternlock.New(cfg)
	if err != nil {
		return nil, patternlock.ReplayResult{}, err
	}

	raw := gjson.GetBytes(data, "script")
	if !raw.Exists() {
		return nil, patternlock.ReplayResult{}, fmt.Errorf("missing script")
	}
	script, err := patternlock.LoadScript([]byte(raw.Raw))
	if err != nil {
		return nil, patternlock.ReplayResult{}, err
	}
	res, err := script.Replay(lock)
	if err != nil {
		return nil, patternlock.ReplayResult{}, err
	}
	return lock, res, nil
}

type lineJSON struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func encodeResult(res patternlock.ReplayResult, lock *patternlock.Lock) ([]byte, error) {
	lines := make([]lineJSON, len(res.Lines))
	for i, s := range res.Lines {
		lines[i] = lineJSON{X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2}
	}
	patterns := res.Patterns
	if patterns == nil {
		patterns = [][]int{}
	}

	out := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"patterns", patterns},
		{"cleared", res.Cleared},
		{"selection", res.Selection},
		{"state", res.State.String()},
		{"lines", lines},
		{"hitRadius", lock.HitRadius()},
	}
	for _, f := range fields {
		var err error
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return out, nil
}

func sizeParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return defaultSnapSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxSnapSize {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}
