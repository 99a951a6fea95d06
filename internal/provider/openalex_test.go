// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// --- reconstructAbstract ---

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "empty map",
			index: map[string][]int{},
			want:  "",
		},
		{
			name:  "nil map",
			index: nil,
			want:  "",
		},
		{
			name:  "single word",
			index: map[string][]int{"hello": {0}},
			want:  "hello",
		},
		{
			name: "multi-word ordered",
			index: map[string][]int{
				"We":      {0},
				"propose": {1},
				"a":       {2},
				"new":     {3},
				"method":  {4},
			},
			want: "We propose a new method",
		},
		{
			name: "word appearing multiple times",
			index: map[string][]int{
				"the": {0, 4},
				"cat": {1},
				"sat": {2},
				"on":  {3},
				"mat": {5},
			},
			want: "the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructAbstract(tt.index)
			if got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- openAlexShortID ---

func TestOpenAlexShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"https://openalex.org/W2741809807", "W2741809807"},
		{"W2741809807", "W2741809807"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := openAlexShortID(tt.id); got != tt.want {
			t.Errorf("openAlexShortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// --- Mock OpenAlex server ---

const sampleOpenAlexJSON = `{
  "meta": {"count": 2, "per_page": 20, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "publication_date": "2017-06-12",
      "publication_year": 2017,
      "authorships": [
        {"author": {"id": "A1", "display_name": "Ashish Vaswani"}},
        {"author": {"id": "A2", "display_name": "Noam Shazeer"}}
      ],
      "abstract_inverted_index": {
        "We": [0],
        "propose": [1],
        "a": [2, 5],
        "new": [3],
        "architecture": [4],
        "based": [6],
        "on": [7],
        "attention": [8]
      },
      "open_access": {"is_oa": true, "oa_status": "green", "oa_url": "https://arxiv.org/pdf/1706.03762"}
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": "BERT: Pre-training of Deep Bidirectional Transformers",
      "doi": "https://doi.org/10.1234/bert",
      "publication_date": "",
      "publication_year": 2018,
      "authorships": [],
      "abstract_inverted_index": {},
      "open_access": {"is_oa": false, "oa_status": "closed", "oa_url": ""}
    }
  ]
}`

func jsonTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

// --- OpenAlex.Search ---

func TestOpenAlexSearch(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, sampleOpenAlexJSON)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	p := &OpenAlex{Client: ts.Client(), Email: "test@example.com"}
	candidates, err := p.Search(context.Background(), "attention", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}

	c0 := candidates[0]
	if c0.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", c0.Title)
	}
	if c0.Source != SourceOpenAlex {
		t.Errorf("Source = %q, want %q", c0.Source, SourceOpenAlex)
	}
	// External ID is the short work ID, not the full URL.
	if c0.ExternalID != "W2741809807" {
		t.Errorf("ExternalID = %q, want W2741809807", c0.ExternalID)
	}
	if c0.InfoLink != "https://openalex.org/W2741809807" {
		t.Errorf("InfoLink = %q", c0.InfoLink)
	}
	// Open-access URL wins over DOI for the preview link.
	if c0.PreviewLink != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("PreviewLink = %q, want the oa_url", c0.PreviewLink)
	}
	if len(c0.Authors) != 2 || c0.Authors[0] != "Ashish Vaswani" || c0.Authors[1] != "Noam Shazeer" {
		t.Errorf("Authors = %v, want [Ashish Vaswani, Noam Shazeer]", c0.Authors)
	}
	if c0.PublishedDate != "2017-06-12" {
		t.Errorf("PublishedDate = %q, want 2017-06-12", c0.PublishedDate)
	}
	// Description is reconstructed from the inverted index.
	if !strings.Contains(c0.Description, "We propose a new architecture") {
		t.Errorf("Description = %q, should contain reconstructed text", c0.Description)
	}

	c1 := candidates[1]
	// No oa_url → preview falls back to the DOI resolver.
	if c1.PreviewLink != "https://doi.org/10.1234/bert" {
		t.Errorf("PreviewLink = %q, want DOI fallback", c1.PreviewLink)
	}
	// No publication_date but publication_year given.
	if c1.PublishedDate != "2018" {
		t.Errorf("PublishedDate = %q, want 2018", c1.PublishedDate)
	}
	// No authorships → Unknown placeholder.
	if len(c1.Authors) != 1 || c1.Authors[0] != "Unknown" {
		t.Errorf("Authors = %v, want [Unknown]", c1.Authors)
	}
	// Empty inverted index → empty description.
	if c1.Description != "" {
		t.Errorf("Description = %q, want empty", c1.Description)
	}
}

func TestOpenAlexSearchEmptyQuery(t *testing.T) {
	p := &OpenAlex{Client: http.DefaultClient}
	if _, err := p.Search(context.Background(), "   ", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestOpenAlexSearchHTTPError(t *testing.T) {
	ts := jsonTestServer(http.StatusInternalServerError, `{"error": "boom"}`)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	p := &OpenAlex{Client: ts.Client()}
	if _, err := p.Search(context.Background(), "test", 10); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestOpenAlexSearchMalformedJSON(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, `{not json`)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	p := &OpenAlex{Client: ts.Client()}
	if _, err := p.Search(context.Background(), "test", 10); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestOpenAlexRequestParameters(t *testing.T) {
	var gotQuery, gotMailto, gotPerPage string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		gotMailto = r.URL.Query().Get("mailto")
		gotPerPage = r.URL.Query().Get("per_page")
		fmt.Fprint(w, `{"meta": {"count": 0}, "results": []}`)
	}))
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	p := &OpenAlex{Client: ts.Client(), Email: "lib@campus.edu"}
	if _, err := p.Search(context.Background(), "machine learning", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "machine learning" {
		t.Errorf("search param = %q", gotQuery)
	}
	if gotMailto != "lib@campus.edu" {
		t.Errorf("mailto param = %q", gotMailto)
	}
	if gotPerPage != "5" {
		t.Errorf("per_page param = %q", gotPerPage)
	}
}
