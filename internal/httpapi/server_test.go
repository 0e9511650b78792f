package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func TestSimInitThenStepReturnsAFrame(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	initResp := postJSON(t, ts, "/sim/init", map[string]any{
		"lattice": "square", "width": 5, "height": 5, "rule": "B3/S23", "maxPeriod": 50,
	})
	if initResp.StatusCode != http.StatusOK {
		t.Fatalf("init status = %d", initResp.StatusCode)
	}

	stepResp, err := http.Post(ts.URL+"/sim/step", "application/json", nil)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if stepResp.StatusCode != http.StatusOK {
		t.Fatalf("step status = %d", stepResp.StatusCode)
	}

	var frame struct {
		Generation int `json:"Generation"`
	}
	if err := json.NewDecoder(stepResp.Body).Decode(&frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
}

func TestSimStepBeforeInitReportsConflict(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/sim/step", "application/json", nil)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict before init, got %d", resp.StatusCode)
	}
}

func TestSimLoadByPatternName(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	postJSON(t, ts, "/sim/init", map[string]any{
		"lattice": "square", "width": 8, "height": 8, "rule": "B3/S23", "maxPeriod": 50,
	})

	loadResp := postJSON(t, ts, "/sim/load", map[string]any{"pattern": "blinker"})
	if loadResp.StatusCode != http.StatusOK {
		t.Fatalf("load status = %d", loadResp.StatusCode)
	}
}

func TestSimLoadUnknownPatternReportsConflict(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	postJSON(t, ts, "/sim/init", map[string]any{
		"lattice": "square", "width": 8, "height": 8, "rule": "B3/S23", "maxPeriod": 50,
	})

	loadResp := postJSON(t, ts, "/sim/load", map[string]any{"pattern": "not-a-real-pattern"})
	if loadResp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict for unknown pattern, got %d", loadResp.StatusCode)
	}
}

func TestGARunThenCancelWhileRunningIsAccepted(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	runResp := postJSON(t, ts, "/ga/run", map[string]any{
		"config": map[string]any{
			"populationSize": 6, "mutationRate": 0.2, "eliteCount": 2,
			"maxGenerations": 20, "gridSize": 16, "lattice": "square",
			"rule": "B3/S23", "toroidal": false, "borderPenalty": 5,
		},
		"options": map[string]any{"iterations": 10000, "seedWindow": 6},
		"seed":    int64(42),
	})
	if runResp.StatusCode != http.StatusAccepted {
		t.Fatalf("run status = %d", runResp.StatusCode)
	}

	cancelResp, err := http.Post(ts.URL+"/ga/cancel", "application/json", nil)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelResp.StatusCode != http.StatusOK {
		t.Fatalf("cancel status = %d", cancelResp.StatusCode)
	}
}

func TestGARunTwiceWithoutCancelReportsConflict(t *testing.T) {
	ts := httptest.NewServer(NewServer().Routes())
	defer ts.Close()

	body := map[string]any{
		"config": map[string]any{
			"populationSize": 6, "mutationRate": 0.2, "eliteCount": 2,
			"maxGenerations": 50, "gridSize": 16, "lattice": "square",
			"rule": "B3/S23", "toroidal": false, "borderPenalty": 5,
		},
		"options": map[string]any{"iterations": 10000, "seedWindow": 6},
		"seed":    int64(7),
	}

	first := postJSON(t, ts, "/ga/run", body)
	if first.StatusCode != http.StatusAccepted {
		t.Fatalf("first run status = %d", first.StatusCode)
	}
	second := postJSON(t, ts, "/ga/run", body)
	if second.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict starting a second concurrent run, got %d", second.StatusCode)
	}

	http.Post(ts.URL+"/ga/cancel", "application/json", nil)
}
