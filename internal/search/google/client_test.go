package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/ivmolchanov/search-gateway/internal/domain"
	"github.com/ivmolchanov/search-gateway/internal/search"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := New(Config{
		APIKey:   "test-key",
		EngineID: "test-cx",
		BaseURL:  ts.URL,
	}, zap.NewNop())
	return client, ts
}

func TestClient_SearchWeb(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"kind": "customsearch#search",
			"searchInformation": map[string]any{
				"searchTime":   0.23,
				"totalResults": "12400",
			},
			"items": []map[string]any{
				{"title": "First", "link": "https://a.example.com", "snippet": "s1", "displayLink": "a.example.com"},
				{"title": "Second", "link": "https://b.example.com", "htmlTitle": "<b>Second</b>"},
			},
		})
	})

	resp, err := client.SearchWeb(context.Background(), &domain.WebRequest{
		BaseRequest: domain.BaseRequest{Query: "golang"},
	})
	if err != nil {
		t.Fatalf("SearchWeb() error: %v", err)
	}

	if gotQuery.Get("key") != "test-key" || gotQuery.Get("cx") != "test-cx" {
		t.Error("credentials not passed to upstream")
	}
	if gotQuery.Get("q") != "golang" {
		t.Errorf("q = %q, want golang", gotQuery.Get("q"))
	}
	if gotQuery.Get("num") != "10" || gotQuery.Get("start") != "1" {
		t.Errorf("pagination defaults wrong: num=%q start=%q", gotQuery.Get("num"), gotQuery.Get("start"))
	}
	if gotQuery.Get("safe") != "medium" || gotQuery.Get("lr") != "lang_en" || gotQuery.Get("gl") != "us" {
		t.Error("locale/safe defaults wrong")
	}

	if len(resp.Items) != 2 {
		t.Fatalf("parsed %d items, want 2", len(resp.Items))
	}
	if resp.Items[0].Title != "First" || resp.Items[1].HTMLTitle != "<b>Second</b>" {
		t.Error("item fields not mapped")
	}
	if resp.SearchInformation == nil || resp.SearchInformation.TotalResults != "12400" {
		t.Error("search information not mapped")
	}
}

func TestClient_SearchWeb_SkipsMalformedItems(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"kind": "customsearch#search",
			"items": [
				{"title": "Good", "link": "https://ok.example.com"},
				{"title": "No link"},
				{"title": 42, "link": "https://bad-type.example.com"},
				{"title": "Also good", "link": "https://ok2.example.com"}
			]
		}`))
	})

	resp, err := client.SearchWeb(context.Background(), &domain.WebRequest{
		BaseRequest: domain.BaseRequest{Query: "q"},
	})
	if err != nil {
		t.Fatalf("SearchWeb() error: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("parsed %d items, want 2 (malformed skipped)", len(resp.Items))
	}
	if resp.Items[0].Title != "Good" || resp.Items[1].Title != "Also good" {
		t.Error("wrong items survived parsing")
	}
}

func TestClient_SearchImages(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"kind": "customsearch#search",
			"items": []map[string]any{
				{
					"title": "Pic", "link": "https://img.example.com/a.png",
					"image": map[string]any{
						"contextLink":     "https://page.example.com",
						"thumbnailLink":   "https://thumb.example.com/a.png",
						"thumbnailHeight": 68,
						"thumbnailWidth":  120,
					},
				},
			},
		})
	})

	resp, err := client.SearchImages(context.Background(), &domain.ImageRequest{
		BaseRequest: domain.BaseRequest{Query: "gopher"},
		ImageSize:   domain.SizeLarge,
		ImageType:   domain.TypePhoto,
		Color:       "blue",
	})
	if err != nil {
		t.Fatalf("SearchImages() error: %v", err)
	}

	if gotQuery.Get("searchType") != "image" {
		t.Error("searchType=image not set")
	}
	if gotQuery.Get("imgSize") != "large" || gotQuery.Get("imgType") != "photo" || gotQuery.Get("imgColorType") != "blue" {
		t.Error("image filters not passed")
	}

	if len(resp.Items) != 1 {
		t.Fatalf("parsed %d items, want 1", len(resp.Items))
	}
	item := resp.Items[0]
	if item.ThumbnailLink != "https://thumb.example.com/a.png" || item.ThumbnailHeight != 68 {
		t.Error("thumbnail metadata not mapped")
	}
	if item.ContextLink != "https://page.example.com" {
		t.Error("context link not mapped")
	}
}

func TestClient_SearchNews(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"kind": "customsearch#search",
			"items": []map[string]any{
				{
					"title": "Breaking", "link": "https://news.example.com/1",
					"displayLink": "news.example.com",
					"pagemap": map[string]any{
						"newsarticle": []map[string]any{
							{"datepublished": "2025-05-30T10:00:00Z", "author": "I. Petrov"},
						},
					},
				},
				{"title": "No pagemap", "link": "https://news.example.com/2"},
			},
		})
	})

	resp, err := client.SearchNews(context.Background(), &domain.NewsRequest{
		BaseRequest: domain.BaseRequest{Query: "economy"},
		SortBy:      "date",
		TimeFilter:  domain.PastWeek,
	})
	if err != nil {
		t.Fatalf("SearchNews() error: %v", err)
	}

	if gotQuery.Get("tbm") != "nws" || gotQuery.Get("sort") != "date" || gotQuery.Get("tbs") != "qdr:w" {
		t.Errorf("news params wrong: tbm=%q sort=%q tbs=%q", gotQuery.Get("tbm"), gotQuery.Get("sort"), gotQuery.Get("tbs"))
	}

	if len(resp.Items) != 2 {
		t.Fatalf("parsed %d items, want 2", len(resp.Items))
	}
	first := resp.Items[0]
	if first.PublishedDate == nil || first.PublishedDate.Year() != 2025 {
		t.Error("published date not extracted from pagemap")
	}
	if first.Author != "I. Petrov" {
		t.Errorf("author = %q, want I. Petrov", first.Author)
	}
	if first.Source != "news.example.com" {
		t.Errorf("source = %q, want display link", first.Source)
	}
	if resp.Items[1].PublishedDate != nil {
		t.Error("item without pagemap should have no published date")
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, search.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, search.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, search.ErrRateLimited},
		{"bad request", http.StatusBadRequest, search.ErrInvalidRequest},
		{"server error", http.StatusInternalServerError, search.ErrSearchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(`{"error": "boom"}`))
			})

			_, err := client.SearchWeb(context.Background(), &domain.WebRequest{
				BaseRequest: domain.BaseRequest{Query: "q"},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_BadJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	})

	_, err := client.SearchWeb(context.Background(), &domain.WebRequest{
		BaseRequest: domain.BaseRequest{Query: "q"},
	})
	if !errors.Is(err, search.ErrBadResponse) {
		t.Errorf("error = %v, want ErrBadResponse", err)
	}
}

func TestWebValues_QueryModifiers(t *testing.T) {
	client := New(Config{APIKey: "k", EngineID: "cx"}, zap.NewNop())

	values := client.webValues(&domain.WebRequest{
		BaseRequest:  domain.BaseRequest{Query: "golang"},
		Site:         "reddit.com",
		FileType:     "pdf",
		ExactTerms:   "standard library",
		ExcludeTerms: "java",
		TimeFilter:   domain.PastMonth,
	})

	want := `golang site:reddit.com filetype:pdf "standard library" -java`
	if got := values.Get("q"); got != want {
		t.Errorf("q = %q, want %q", got, want)
	}
	if values.Get("dateRestrict") != "m" {
		t.Errorf("dateRestrict = %q, want m", values.Get("dateRestrict"))
	}
}
