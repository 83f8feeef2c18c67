package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestExtractLinksFiltersTrackingAndDuplicates(t *testing.T) {
	body := strings.Join([]string{
		"Read https://example.com/story-one today.",
		"Also https://example.com/story-one again,",
		"then https://news.example.com/launch.",
		"Manage: https://list.example.com/unsubscribe",
		"Pixel: https://t.example.com/tracking/open",
		"Campaign: https://example.com/post?utm_campaign=daily",
	}, "\n")

	got := ExtractLinks(body, 5)

	want := []string{
		"https://example.com/story-one",
		"https://news.example.com/launch",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %q, want %q", got, want)
	}
}

func TestExtractLinksDropsTrailingPunctuation(t *testing.T) {
	got := ExtractLinks("See https://example.com/story. Next!", 5)

	if len(got) != 1 || got[0] != "https://example.com/story" {
		t.Errorf("links = %q", got)
	}
}

func TestExtractLinksCapIsTwiceMax(t *testing.T) {
	var parts []string
	for i := 0; i < 10; i++ {
		parts = append(parts, "https://example.com/a"+strings.Repeat("b", i+1))
	}

	got := ExtractLinks(strings.Join(parts, " "), 2)

	if len(got) != 4 {
		t.Errorf("expected 4 links (2x max), got %d", len(got))
	}
}

func TestExtractLinksEmptyBody(t *testing.T) {
	if got := ExtractLinks("", 5); got != nil {
		t.Errorf("expected no links, got %q", got)
	}
}

func TestExcerptsFetchAndClean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Error("missing browser user agent")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title> The Launch Post </title>
<script>tracker()</script></head>
<body><nav>menu</nav><article>The model shipped today.

It is faster.</article><footer>legal</footer></body></html>`))
	}))
	defer srv.Close()

	f := New(srv.Client(), 5)

	excerpts := f.Excerpts(context.Background(), []string{srv.URL + "/story"})
	if len(excerpts) != 1 {
		t.Fatalf("expected one excerpt, got %d", len(excerpts))
	}
	ex := excerpts[0]
	if ex.Title != "The Launch Post" {
		t.Errorf("title = %q", ex.Title)
	}
	if !strings.Contains(ex.ExcerptText, "The model shipped today.") {
		t.Errorf("excerpt = %q", ex.ExcerptText)
	}
	if strings.Contains(ex.ExcerptText, "menu") || strings.Contains(ex.ExcerptText, "tracker") {
		t.Error("boilerplate elements leaked into the excerpt")
	}
	if ex.URL != srv.URL+"/story" {
		t.Errorf("url = %q", ex.URL)
	}
	if ex.DateFetched.IsZero() {
		t.Error("fetch timestamp not set")
	}
}

func TestExcerptsCapLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Long</title></head><body><article>" +
			strings.Repeat("w", 5000) + "</article></body></html>"))
	}))
	defer srv.Close()

	f := New(srv.Client(), 5)

	excerpts := f.Excerpts(context.Background(), []string{srv.URL})
	if len(excerpts) != 1 {
		t.Fatalf("expected one excerpt, got %d", len(excerpts))
	}
	if got := excerpts[0].ExcerptText; len(got) != 3003 || !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt length = %d, want 3000 plus ellipsis", len(got))
	}
}

func TestExcerptsSkipFailuresAndNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><head><title>Ok</title></head><body><article>fine</article></body></html>"))
		}
	}))
	defer srv.Close()

	f := New(srv.Client(), 5)

	excerpts := f.Excerpts(context.Background(), []string{
		srv.URL + "/pdf", srv.URL + "/missing", srv.URL + "/good",
	})
	if len(excerpts) != 1 || excerpts[0].Title != "Ok" {
		t.Errorf("expected only the HTML page, got %+v", excerpts)
	}
}

func TestExcerptsRespectMaxLinks(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>T</title></head><body><article>x</article></body></html>"))
	}))
	defer srv.Close()

	f := New(srv.Client(), 2)

	links := []string{srv.URL + "/1", srv.URL + "/2", srv.URL + "/3", srv.URL + "/4"}
	if got := f.Excerpts(context.Background(), links); len(got) != 2 {
		t.Errorf("expected 2 excerpts, got %d", len(got))
	}
	if hits != 2 {
		t.Errorf("expected 2 requests, got %d", hits)
	}
}
