package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/revealyaml/pkg/observability"
	"github.com/matzehuels/revealyaml/pkg/pipeline"
)

func newTestServer(t *testing.T, deck string) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "talk.yaml")
	writeFile(t, deckPath, deck)
	writeFile(t, filepath.Join(dir, "theme.css"), "body{}")

	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	c := testCLI()
	p := &preview{
		runner:   pipeline.NewRunner(nil, nil, c.Logger),
		logger:   c.Logger,
		deckPath: deckPath,
	}
	srv := httptest.NewServer(newPreviewHandler(p, dir, reg))
	t.Cleanup(srv.Close)
	return srv, deckPath
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServeDeck(t *testing.T) {
	srv, deckPath := newTestServer(t, testDeck)

	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("GET / = %d: %s", code, body)
	}
	if !strings.Contains(body, `<section><h2>Intro</h2><p>Hello</p></section>`) {
		t.Error("page does not contain the first slide")
	}

	// The deck is re-read on every request.
	writeFile(t, deckPath, strings.Replace(testDeck, "Hello", "Changed", 1))
	_, body = get(t, srv.URL+"/")
	if !strings.Contains(body, "<p>Changed</p>") {
		t.Error("edited deck not picked up")
	}
}

func TestServeAssets(t *testing.T) {
	srv, _ := newTestServer(t, testDeck)

	code, body := get(t, srv.URL+"/theme.css")
	if code != http.StatusOK || body != "body{}" {
		t.Errorf("GET /theme.css = %d %q", code, body)
	}
}

func TestServeInvalidDeck(t *testing.T) {
	srv, _ := newTestServer(t, "slides:\n  - content: x\n")

	code, body := get(t, srv.URL+"/")
	if code != http.StatusUnprocessableEntity {
		t.Errorf("GET / = %d, want %d", code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(body, "metadata.presentation.title") {
		t.Errorf("body = %q, want the missing field", body)
	}
}

func TestServeMetrics(t *testing.T) {
	srv, _ := newTestServer(t, testDeck)
	get(t, srv.URL+"/")

	code, body := get(t, srv.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", code)
	}
	for _, want := range []string{
		`revealyaml_http_requests_total{code="200",method="GET",route="/"} 1`,
		`revealyaml_stage_duration_seconds_count{stage="render"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServeRejectsMalformedDecks(t *testing.T) {
	tests := []struct {
		name string
		deck string
		want int
	}{
		{"shape", "slides: 5\n", http.StatusUnprocessableEntity},
		{"empty", " \n", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.deck)
			if code, _ := get(t, srv.URL+"/"); code != tt.want {
				t.Errorf("GET / = %d, want %d", code, tt.want)
			}
		})
	}
}
