package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/pokespeare/pkg/integrations"
)

const mewtwoJSON = `{
	"flavor_text_entries": [
		{"flavor_text": "It was created\nby a scientist.", "language": {"name": "en", "url": "https://pokeapi.co/api/v2/language/9/"}, "version": {"name": "red"}}
	],
	"habitat": {"name": "rare", "url": "https://pokeapi.co/api/v2/pokemon-habitat/5/"},
	"is_legendary": true,
	"name": "mewtwo"
}`

func TestClient_FetchSpecies(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mewtwoJSON))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)

	info, err := c.FetchSpecies(context.Background(), "mewtwo")
	if err != nil {
		t.Fatalf("FetchSpecies failed: %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
	if gotPath != "/pokemon-species/mewtwo" {
		t.Errorf("path = %s, want /pokemon-species/mewtwo", gotPath)
	}

	want := SpeciesInfo{
		Name:        "mewtwo",
		Description: "It was created by a scientist.",
		Habitat:     "rare",
		IsLegendary: true,
	}
	if *info != want {
		t.Errorf("FetchSpecies() = %+v, want %+v", *info, want)
	}
}

func TestClient_FetchSpecies_TrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(mewtwoJSON))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", time.Second)
	if _, err := c.FetchSpecies(context.Background(), "mewtwo"); err != nil {
		t.Fatalf("FetchSpecies failed: %v", err)
	}
	if gotPath != "/pokemon-species/mewtwo" {
		t.Errorf("path = %s, want /pokemon-species/mewtwo", gotPath)
	}
}

func TestClient_FetchSpecies_SelectsFirstEnglishEntry(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "english after other languages",
			body: `{"name":"ditto","habitat":{"name":"urban"},"is_legendary":false,"flavor_text_entries":[
				{"flavor_text":"Il peut se transformer.","language":{"name":"fr"}},
				{"flavor_text":"Es kann sich verwandeln.","language":{"name":"de"}},
				{"flavor_text":"It can\ntransform.","language":{"name":"en"}},
				{"flavor_text":"Second english.","language":{"name":"en"}}
			]}`,
			want: "It can transform.",
		},
		{
			name: "english first",
			body: `{"name":"ditto","habitat":{"name":"urban"},"is_legendary":false,"flavor_text_entries":[
				{"flavor_text":"First\nenglish.","language":{"name":"en"}},
				{"flavor_text":"Il peut se transformer.","language":{"name":"fr"}}
			]}`,
			want: "First english.",
		},
		{
			name: "all line break styles folded",
			body: `{"name":"ditto","habitat":{"name":"urban"},"is_legendary":false,"flavor_text_entries":[
				{"flavor_text":"a\nb\r\nc\rd\fe","language":{"name":"en"}}
			]}`,
			want: "a b c d e",
		},
		{
			name: "entry without language is skipped",
			body: `{"name":"ditto","habitat":{"name":"urban"},"is_legendary":false,"flavor_text_entries":[
				{"flavor_text":"orphan"},
				{"flavor_text":"Found.","language":{"name":"en"}}
			]}`,
			want: "Found.",
		},
		{
			name: "malformed entries in other languages are ignored",
			body: `{"name":"ditto","habitat":{"name":"urban"},"is_legendary":false,"flavor_text_entries":[
				{"flavor_text":5,"language":{"name":"fr"}},
				{"flavor_text":"x","language":{"name":7}},
				"not an entry",
				{"flavor_text":"Still found.","language":{"name":"en"}}
			]}`,
			want: "Still found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			info, err := NewClient(server.URL, time.Second).FetchSpecies(context.Background(), "ditto")
			if err != nil {
				t.Fatalf("FetchSpecies failed: %v", err)
			}
			if info.Description != tt.want {
				t.Errorf("Description = %q, want %q", info.Description, tt.want)
			}
		})
	}
}

func TestClient_FetchSpecies_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"missing habitat", `{"name":"mewtwo","is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"null habitat", `{"name":"mewtwo","habitat":null,"is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"missing habitat name", `{"name":"mewtwo","habitat":{},"is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"missing is_legendary", `{"name":"mewtwo","habitat":{"name":"rare"},"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"missing flavor_text_entries", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":true}`},
		{"empty flavor_text_entries", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[]}`},
		{"no english entry", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"ja"}}]}`},
		{"english entry without text", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[{"language":{"name":"en"}}]}`},
		{"english entry with mistyped text", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[{"flavor_text":5,"language":{"name":"en"}}]}`},
		{"mistyped name", `{"name":5,"habitat":{"name":"rare"},"is_legendary":true,"flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"mistyped is_legendary", `{"name":"mewtwo","habitat":{"name":"rare"},"is_legendary":"yes","flavor_text_entries":[{"flavor_text":"x","language":{"name":"en"}}]}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).FetchSpecies(context.Background(), "mewtwo")
			assertKind(t, err, integrations.KindInternal)
		})
	}
}

func TestClient_FetchSpecies_Status(t *testing.T) {
	tests := []struct {
		status int
		want   integrations.Kind
	}{
		{http.StatusNotFound, integrations.KindNotFound},
		{http.StatusInternalServerError, integrations.KindInternal},
		{http.StatusBadGateway, integrations.KindInternal},
		{http.StatusBadRequest, integrations.KindInternal},
		{http.StatusTooManyRequests, integrations.KindInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).FetchSpecies(context.Background(), "missingno")
			assertKind(t, err, tt.want)
		})
	}
}

func TestClient_FetchSpecies_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(server.URL, 50*time.Millisecond).FetchSpecies(context.Background(), "slowbro")
	assertKind(t, err, integrations.KindInternal)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("FetchSpecies took %v, want bounded by timeout", elapsed)
	}
}

func TestClient_FetchSpecies_Cancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := NewClient(server.URL, 5*time.Second).FetchSpecies(ctx, "mewtwo")
	assertKind(t, err, integrations.KindInternal)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FetchSpecies() error = %v, want context.Canceled in its chain", err)
	}
}

func TestClient_FetchSpecies_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).FetchSpecies(context.Background(), "mewtwo")
	assertKind(t, err, integrations.KindInternal)
}

func TestClient_FetchSpecies_ForwardsNameAsIs(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)

	_, err := c.FetchSpecies(context.Background(), "")
	assertKind(t, err, integrations.KindNotFound)
	if gotPath != "/pokemon-species/" {
		t.Errorf("path = %q, want %q", gotPath, "/pokemon-species/")
	}

	_, _ = c.FetchSpecies(context.Background(), "Mr Mime")
	if gotPath != "/pokemon-species/Mr Mime" {
		t.Errorf("path = %q, want %q", gotPath, "/pokemon-species/Mr Mime")
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := wrap(integrations.KindInternal, cause)
	if !errors.Is(err, cause) {
		t.Error("Error should unwrap to its cause")
	}
	if got := err.Error(); got != "pokeapi: internal error: boom" {
		t.Errorf("Error() = %q", got)
	}

	br := BadRequest("name is required")
	if br.Kind != integrations.KindBadRequest || br.Message != "name is required" {
		t.Errorf("BadRequest() = %+v", br)
	}
}

func assertKind(t *testing.T, err error, want integrations.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %T (%v), want *pokeapi.Error", err, err)
	}
	if e.Kind != want {
		t.Errorf("Kind = %v, want %v (err: %v)", e.Kind, want, err)
	}
}
