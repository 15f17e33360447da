package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Options{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		Language: "ko-KR",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListSendsCredentialAndLocale(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Error("missing api_key")
		}
		if q.Get("language") != "ko-KR" {
			t.Errorf("expected ko-KR locale, got %q", q.Get("language"))
		}
		if q.Get("with_genres") != genreAction {
			t.Errorf("expected with_genres=%s, got %q", genreAction, q.Get("with_genres"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Heat","poster_path":"/a.jpg"},{"id":2,"poster_path":null}]}`))
	}))

	query, ok := Lookup(domain.KindMovie, "action")
	if !ok {
		t.Fatal("action query not found")
	}

	items, err := client.List(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Kind != domain.KindMovie {
		t.Errorf("expected fallback kind movie, got %q", items[0].Kind)
	}
	if items[1].PosterPath != "" {
		t.Errorf("expected null poster to map to empty, got %q", items[1].PosterPath)
	}
}

func TestListMissingResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))

	items, err := client.List(context.Background(), trending(domain.KindTV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestSearchMulti(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "matrix" {
			t.Errorf("unexpected query: %s", q.Get("query"))
		}
		if q.Get("page") != "2" {
			t.Errorf("expected page 2, got %s", q.Get("page"))
		}
		if q.Get("include_adult") != "false" {
			t.Errorf("expected include_adult=false, got %s", q.Get("include_adult"))
		}
		json.NewEncoder(w).Encode(listResponse{
			Page:       2,
			TotalPages: 3,
			Results: []mediaResult{
				{ID: 5, Title: "The Matrix", MediaType: "movie", PosterPath: "/m.jpg"},
				{ID: 6, Name: "Keanu Reeves", MediaType: "person"},
			},
		})
	}))

	page, err := client.SearchMulti(context.Background(), "matrix", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", page)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 raw results, got %d", len(page.Results))
	}
	if page.Results[1].Kind != domain.KindPerson {
		t.Errorf("expected person kind, got %q", page.Results[1].Kind)
	}
}

func TestVideos(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1399/videos" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":1399,"results":[{"key":"abc","site":"YouTube","type":"Trailer","name":"Official Trailer"}]}`))
	}))

	videos, err := client.Videos(context.Background(), domain.KindTV, 1399)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 1 || videos[0].Key != "abc" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
}

func TestVideosRejectsPerson(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}))

	if _, err := client.Videos(context.Background(), domain.KindPerson, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"server error", http.StatusInternalServerError, domain.ErrCatalogUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
			}))

			_, err := client.List(context.Background(), trending(domain.KindMovie))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Message != "Invalid API key" {
				t.Errorf("unexpected message: %q", apiErr.Message)
			}
		})
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		base, size, path string
		want             string
	}{
		{"", PosterSize, "/abc.jpg", "https://image.tmdb.org/t/p/w300/abc.jpg"},
		{"https://img.example/t/p", BackdropSize, "/b.jpg", "https://img.example/t/p/original/b.jpg"},
		{"", PosterSize, "", ""},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.base, tt.size, tt.path); got != tt.want {
			t.Errorf("ImageURL(%q, %q, %q) = %q, want %q", tt.base, tt.size, tt.path, got, tt.want)
		}
	}
}
