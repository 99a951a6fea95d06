// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Candidate is a normalized search result from an external catalog
// provider. It lives only for the request/response cycle that produced it
// and gains a persistent identity only when imported.
type Candidate struct {
	// ID is the provider-assigned record identifier.
	ID string `json:"id" yaml:"id"`

	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Authors     []string `json:"authors" yaml:"authors"`

	// PublishedDate is the provider's publication date string, as given
	// (providers disagree on granularity: "2019", "2019-03", "2019-03-02").
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	PreviewLink string `json:"preview_link,omitempty" yaml:"preview_link,omitempty"`
	InfoLink    string `json:"info_link,omitempty" yaml:"info_link,omitempty"`

	// Source names the provider that produced this candidate; ExternalID
	// identifies the record within that provider. The pair is unique.
	Source     string `json:"source" yaml:"source"`
	ExternalID string `json:"external_id" yaml:"external_id"`
}

// Usable reports whether the candidate carries enough data to import:
// a title and at least one link a reader could follow.
func (c Candidate) Usable() bool {
	return c.Title != "" && (c.PreviewLink != "" || c.InfoLink != "")
}

// BestLink returns the preview link when present, else the info link.
func (c Candidate) BestLink() string {
	if c.PreviewLink != "" {
		return c.PreviewLink
	}
	return c.InfoLink
}
