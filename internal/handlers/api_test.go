package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"watchwise/internal/clients/metadata"
	"watchwise/internal/config"
	"watchwise/internal/utils"
)

type recordingClient struct {
	got     []metadata.SearchQuery
	results []metadata.MediaSummary
}

func (c *recordingClient) Search(ctx context.Context, q metadata.SearchQuery) []metadata.MediaSummary {
	c.got = append(c.got, q)
	return c.results
}

func newTestRouter(client metadata.Client) http.Handler {
	cfg, _ := config.Load("")
	logger := utils.NewNopLogger()
	return NewServer(cfg, NewAPIHandler(client, metadata.MediaTypeMovie, logger), logger).Router()
}

// newUpstreamRouter wires the router to a real OMDb client pointed at a fake upstream.
func newUpstreamRouter(t *testing.T, upstream http.HandlerFunc) (http.Handler, <-chan url.Values) {
	t.Helper()
	seen := make(chan url.Values, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Query()
		upstream(w, r)
	}))
	t.Cleanup(server.Close)

	client := metadata.NewOMDbClient(server.URL+"/", "key", 0, 2*time.Second, utils.NewNopLogger())
	return newTestRouter(client), seen
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHello(t *testing.T) {
	router := newTestRouter(&recordingClient{})
	rec := get(router, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "Hello world" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestSearch_Batman(t *testing.T) {
	router, seen := newUpstreamRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Search":[{"Title":"Batman","Year":"1989","imdbID":"tt0096895","Type":"movie","Poster":"url"}],"totalResults":"1","Response":"True"}`))
	})

	rec := get(router, "/search?query=batman")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	want := `[{"Title":"Batman","Year":"1989","imdbID":"tt0096895","Type":"movie","Poster":"url"}]`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}

	if len(seen) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(seen))
	}
	q := <-seen
	if q.Get("s") != "batman" || q.Get("type") != "movie" || q.Get("apikey") != "key" {
		t.Fatalf("unexpected upstream query: %v", q)
	}
	if q.Has("y") {
		t.Fatalf("year should be omitted: %v", q)
	}
}

func TestSearch_UpstreamFailuresReturnEmptyArray(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"response false": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!","totalResults":"3"}`))
		},
		"status 500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		},
		"item without type": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Search":[{"Title":"Batman","Year":"1989","imdbID":"tt0096895","Poster":"url"}],"totalResults":"1","Response":"True"}`))
		},
	}
	for name, upstream := range cases {
		t.Run(name, func(t *testing.T) {
			router, _ := newUpstreamRouter(t, upstream)
			rec := get(router, "/search?query=batman")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("content type = %q", ct)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
				t.Fatalf("body = %q", got)
			}
		})
	}
}

func TestSearch_UnencodableResultsFallBackToEmptyArray(t *testing.T) {
	client := &recordingClient{results: []metadata.MediaSummary{{Title: "Batman", ImdbID: "tt0096895"}}}
	router := newTestRouter(client)

	rec := get(router, "/search?query=batman")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q", got)
	}
}

func TestSearch_MissingQueryEqualsEmpty(t *testing.T) {
	client := &recordingClient{}
	router := newTestRouter(client)

	first := get(router, "/search")
	second := get(router, "/search?query=")
	third := get(router, "/search?query=%zz")

	for _, rec := range []*httptest.ResponseRecorder{first, second, third} {
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Fatalf("body = %q", got)
		}
	}
	if len(client.got) != 3 {
		t.Fatalf("expected 3 searches, got %d", len(client.got))
	}
	for _, q := range client.got {
		if q != client.got[0] {
			t.Fatalf("queries differ: %+v vs %+v", q, client.got[0])
		}
		if q.Term != "" || q.Type != metadata.MediaTypeMovie {
			t.Fatalf("unexpected query: %+v", q)
		}
	}
}

func TestSearch_TypeAndYear(t *testing.T) {
	client := &recordingClient{}
	router := newTestRouter(client)

	get(router, "/search?query=lost&type=series&year=2004")
	get(router, "/search?query=lost&type=game")

	if got := client.got[0]; got.Type != metadata.MediaTypeSeries || got.Year != "2004" || got.Term != "lost" {
		t.Fatalf("unexpected query: %+v", got)
	}
	if got := client.got[1]; got.Type != metadata.MediaTypeMovie || got.Year != "" {
		t.Fatalf("unknown type should fall back to movie: %+v", got)
	}
}

func TestSearch_PostNotAllowed(t *testing.T) {
	router := newTestRouter(&recordingClient{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&recordingClient{})
	get(router, "/")
	rec := get(router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "watchwise_http_requests_total") {
		t.Fatal("expected request counter in metrics output")
	}
}
