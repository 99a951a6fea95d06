// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleVolumesJSON = `{
  "totalItems": 2,
  "items": [
    {
      "id": "zyTCAlFPjgYC",
      "volumeInfo": {
        "title": "The Go Programming Language",
        "description": "The authoritative resource for Go.",
        "authors": ["Alan A. A. Donovan", "Brian W. Kernighan"],
        "publishedDate": "2015-11-16",
        "imageLinks": {
          "smallThumbnail": "https://books.example.com/small/zyTCAlFPjgYC",
          "thumbnail": "https://books.example.com/thumb/zyTCAlFPjgYC"
        },
        "previewLink": "https://books.example.com/preview/zyTCAlFPjgYC",
        "infoLink": "https://books.example.com/info/zyTCAlFPjgYC"
      }
    },
    {
      "id": "abc123",
      "volumeInfo": {
        "title": "  Untrimmed Title  ",
        "publishedDate": "2020",
        "imageLinks": {
          "smallThumbnail": "https://books.example.com/small/abc123"
        },
        "infoLink": "https://books.example.com/info/abc123"
      }
    }
  ]
}`

// --- GoogleBooks.Search ---

func TestGoogleBooksSearch(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, sampleVolumesJSON)
	defer ts.Close()

	old := googleBooksAPIBase
	googleBooksAPIBase = ts.URL
	defer func() { googleBooksAPIBase = old }()

	p := &GoogleBooks{Client: ts.Client(), APIKey: "test-key"}
	candidates, err := p.Search(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}

	c0 := candidates[0]
	if c0.Title != "The Go Programming Language" {
		t.Errorf("Title = %q", c0.Title)
	}
	if c0.Source != SourceGoogleBooks {
		t.Errorf("Source = %q, want %q", c0.Source, SourceGoogleBooks)
	}
	if c0.ExternalID != "zyTCAlFPjgYC" {
		t.Errorf("ExternalID = %q", c0.ExternalID)
	}
	if len(c0.Authors) != 2 || c0.Authors[0] != "Alan A. A. Donovan" {
		t.Errorf("Authors = %v", c0.Authors)
	}
	if c0.Thumbnail != "https://books.example.com/thumb/zyTCAlFPjgYC" {
		t.Errorf("Thumbnail = %q, want the full-size thumbnail", c0.Thumbnail)
	}
	if c0.PreviewLink != "https://books.example.com/preview/zyTCAlFPjgYC" {
		t.Errorf("PreviewLink = %q", c0.PreviewLink)
	}

	c1 := candidates[1]
	// Title whitespace is trimmed.
	if c1.Title != "Untrimmed Title" {
		t.Errorf("Title = %q, want trimmed", c1.Title)
	}
	// No full-size thumbnail → small thumbnail is used.
	if c1.Thumbnail != "https://books.example.com/small/abc123" {
		t.Errorf("Thumbnail = %q, want small thumbnail fallback", c1.Thumbnail)
	}
	// No authors → Unknown placeholder.
	if len(c1.Authors) != 1 || c1.Authors[0] != "Unknown" {
		t.Errorf("Authors = %v, want [Unknown]", c1.Authors)
	}
}

func TestGoogleBooksSearchEmptyQuery(t *testing.T) {
	p := &GoogleBooks{Client: http.DefaultClient, APIKey: "test-key"}
	if _, err := p.Search(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestGoogleBooksSearchWithoutKey(t *testing.T) {
	p := &GoogleBooks{Client: http.DefaultClient}
	if p.Enabled() {
		t.Error("Enabled() = true without an API key")
	}
	if _, err := p.Search(context.Background(), "golang", 10); err == nil {
		t.Error("expected error without an API key")
	}
}

func TestGoogleBooksSearchHTTPError(t *testing.T) {
	ts := jsonTestServer(http.StatusForbidden, `{"error": "quota"}`)
	defer ts.Close()

	old := googleBooksAPIBase
	googleBooksAPIBase = ts.URL
	defer func() { googleBooksAPIBase = old }()

	p := &GoogleBooks{Client: ts.Client(), APIKey: "test-key"}
	if _, err := p.Search(context.Background(), "golang", 10); err == nil {
		t.Error("expected error for HTTP 403")
	}
}

func TestGoogleBooksRequestParameters(t *testing.T) {
	var gotQuery, gotKey, gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		gotMax = r.URL.Query().Get("maxResults")
		fmt.Fprint(w, `{"totalItems": 0, "items": []}`)
	}))
	defer ts.Close()

	old := googleBooksAPIBase
	googleBooksAPIBase = ts.URL
	defer func() { googleBooksAPIBase = old }()

	p := &GoogleBooks{Client: ts.Client(), APIKey: "secret"}
	if _, err := p.Search(context.Background(), "databases", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "databases" {
		t.Errorf("q param = %q", gotQuery)
	}
	if gotKey != "secret" {
		t.Errorf("key param = %q", gotKey)
	}
	if gotMax != "5" {
		t.Errorf("maxResults param = %q", gotMax)
	}
}

func TestGoogleBooksLimitClamped(t *testing.T) {
	var gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("maxResults")
		fmt.Fprint(w, `{"totalItems": 0, "items": []}`)
	}))
	defer ts.Close()

	old := googleBooksAPIBase
	googleBooksAPIBase = ts.URL
	defer func() { googleBooksAPIBase = old }()

	p := &GoogleBooks{Client: ts.Client(), APIKey: "secret"}
	if _, err := p.Search(context.Background(), "databases", 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	// The volumes API caps maxResults at 40.
	if gotMax != "40" {
		t.Errorf("maxResults param = %q, want 40", gotMax)
	}
}
