// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/campusware/unihub/internal/httputil"
	"github.com/campusware/unihub/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works search endpoint. Declared as a var
// so tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// SourceOpenAlex is the provider name used in source lists and envelopes.
const SourceOpenAlex = "openAlex"

// OpenAlex queries the OpenAlex open-access works API. No credential is
// required; Email joins the polite pool when set.
type OpenAlex struct {
	Client *http.Client
	Email  string
}

// Name returns the provider identifier.
func (p *OpenAlex) Name() string { return SourceOpenAlex }

// Enabled is always true: OpenAlex needs no credential.
func (p *OpenAlex) Enabled() bool { return true }

// Search queries the works API and returns normalized candidates.
func (p *OpenAlex) Search(ctx context.Context, query string, limit int) ([]types.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}

	params := url.Values{
		"search":   {query},
		"per_page": {fmt.Sprintf("%d", clampLimit(limit, 50))},
		"page":     {"1"},
	}
	if p.Email != "" {
		params.Set("mailto", p.Email)
	}
	reqURL := openAlexAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("openAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var candidates []types.Candidate
	for _, work := range oar.Results {
		c := types.Candidate{
			ID:            work.ID,
			Title:         strings.TrimSpace(work.Title),
			Description:   reconstructAbstract(work.AbstractInvertedIndex),
			PublishedDate: work.PublicationDate,
			InfoLink:      work.ID,
			Source:        SourceOpenAlex,
			ExternalID:    openAlexShortID(work.ID),
		}
		if c.PublishedDate == "" && work.PublicationYear > 0 {
			c.PublishedDate = fmt.Sprintf("%d", work.PublicationYear)
		}

		var authors []string
		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				authors = append(authors, authorship.Author.DisplayName)
			}
		}
		c.Authors = authorsOrUnknown(authors)

		// Prefer a direct open-access copy for preview; fall back to the
		// DOI resolver.
		switch {
		case work.OpenAccess.OAURL != "":
			c.PreviewLink = work.OpenAccess.OAURL
		case work.DOI != "":
			c.PreviewLink = work.DOI
		}

		candidates = append(candidates, c)
	}
	return candidates, nil
}

// openAlexShortID strips the https://openalex.org/ prefix from a work ID
// (e.g. "https://openalex.org/W2741809807" -> "W2741809807").
func openAlexShortID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}
