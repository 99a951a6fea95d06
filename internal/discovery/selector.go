// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discovery answers resource search requests: it selects which
// sources to consult, fans the query out to the local store and the
// external catalog providers concurrently, and aggregates the outcomes
// into one envelope. Provider failures degrade the response; only a local
// store failure aborts it.
package discovery

import (
	"errors"

	"github.com/campusware/unihub/pkg/types"
)

// ErrInvalidRequest is returned when a request carries neither a free-text
// query nor any structured filter.
var ErrInvalidRequest = errors.New("search request has no criteria")

// Request holds one discovery query.
type Request struct {
	Query        string
	Type         types.ResourceType
	Level        int
	DepartmentID string
	CourseID     string

	// Sources lists the requested sources by name. Empty means local plus
	// every configured provider.
	Sources []string

	Page  int
	Limit int
}

// Filter returns the local-store filter for this request. Public search
// only ever sees approved resources.
func (r Request) Filter() types.ResourceFilter {
	return types.ResourceFilter{
		Query:        r.Query,
		Type:         r.Type,
		Level:        r.Level,
		DepartmentID: r.DepartmentID,
		CourseID:     r.CourseID,
		ApprovedOnly: true,
	}
}

// selectSources resolves the effective source list. Rules: a request with
// no searchable criteria at all is invalid; without a free-text query only
// the local store runs, whatever was requested, because filter-only search
// has no analog against unstructured external catalogs; unknown source
// names are dropped; the local store always runs.
func selectSources(req Request, available []string) ([]string, error) {
	if req.Query == "" && req.Filter().Empty() {
		return nil, ErrInvalidRequest
	}
	if req.Query == "" {
		return []string{types.SourceLocal}, nil
	}

	requested := req.Sources
	if len(requested) == 0 {
		return append([]string{types.SourceLocal}, available...), nil
	}

	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}

	effective := []string{types.SourceLocal}
	seen := map[string]bool{types.SourceLocal: true}
	for _, name := range requested {
		if seen[name] {
			continue
		}
		if name == types.SourceLocal || known[name] {
			seen[name] = true
			if name != types.SourceLocal {
				effective = append(effective, name)
			}
		}
	}
	return effective, nil
}
