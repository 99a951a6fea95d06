// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/campusware/unihub/internal/httputil"
	"github.com/campusware/unihub/pkg/types"
)

// googleBooksAPIBase is the Google Books volumes endpoint. Declared as a
// var so tests can substitute an httptest server.
var googleBooksAPIBase = "https://www.googleapis.com/books/v1/volumes"

// SourceGoogleBooks is the provider name used in source lists and envelopes.
const SourceGoogleBooks = "googleBooks"

// GoogleBooks queries the Google Books volumes API.
type GoogleBooks struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *GoogleBooks) Name() string { return SourceGoogleBooks }

// Enabled reports whether an API key is configured.
func (p *GoogleBooks) Enabled() bool { return p.APIKey != "" }

// Search queries the volumes API and returns normalized candidates.
func (p *GoogleBooks) Search(ctx context.Context, query string, limit int) ([]types.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty Google Books query")
	}
	if !p.Enabled() {
		return nil, fmt.Errorf("google Books API key not configured")
	}

	params := url.Values{
		"q":          {query},
		"maxResults": {fmt.Sprintf("%d", clampLimit(limit, 40))},
		"key":        {p.APIKey},
	}
	reqURL := googleBooksAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("google Books API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google Books API returned HTTP %d", resp.StatusCode)
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("parsing Google Books response: %w", err)
	}

	var candidates []types.Candidate
	for _, item := range vr.Items {
		info := item.VolumeInfo
		c := types.Candidate{
			ID:            item.ID,
			Title:         strings.TrimSpace(info.Title),
			Description:   strings.TrimSpace(info.Description),
			Authors:       authorsOrUnknown(info.Authors),
			PublishedDate: info.PublishedDate,
			Thumbnail:     info.ImageLinks.Thumbnail,
			PreviewLink:   info.PreviewLink,
			InfoLink:      info.InfoLink,
			Source:        SourceGoogleBooks,
			ExternalID:    item.ID,
		}
		if c.Thumbnail == "" {
			c.Thumbnail = info.ImageLinks.SmallThumbnail
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Google Books API JSON structures.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Authors       []string   `json:"authors"`
	PublishedDate string     `json:"publishedDate"`
	ImageLinks    imageLinks `json:"imageLinks"`
	PreviewLink   string     `json:"previewLink"`
	InfoLink      string     `json:"infoLink"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
