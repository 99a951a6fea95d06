// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceLocal names the local resource store in source lists and result
// envelopes. External providers use their own names ("googleBooks", ...).
const SourceLocal = "local"

// ResourceFilter selects local resources. Zero values mean "no constraint"
// except ApprovedOnly, which search always sets.
type ResourceFilter struct {
	Query        string
	Type         ResourceType
	Level        int
	DepartmentID string
	CourseID     string
	ApprovedOnly bool
}

// Empty reports whether the filter contains no criteria at all.
func (f ResourceFilter) Empty() bool {
	return f.Query == "" && f.Type == "" && f.Level == 0 &&
		f.DepartmentID == "" && f.CourseID == ""
}

// SearchCounts splits the result count by space: local resources are paged
// and authoritative, external candidates are capped advisory lists.
type SearchCounts struct {
	Local    int `json:"local"`
	External int `json:"external"`
}

// Pagination describes the local page. Pages is ceil(total/limit); external
// lists are never paged.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// SearchData keeps the two result spaces visibly separate: their pagination
// semantics are incompatible.
type SearchData struct {
	Local    []Resource             `json:"local"`
	External map[string][]Candidate `json:"external"`
}

// SearchResult is the combined envelope for one discovery request.
type SearchResult struct {
	Counts     SearchCounts `json:"counts"`
	Pagination Pagination   `json:"pagination"`
	Data       SearchData   `json:"data"`

	// Warnings names providers that failed or timed out; their lists are
	// empty but the request still succeeds.
	Warnings []string `json:"warnings,omitempty"`
}
