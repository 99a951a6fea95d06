// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements the external catalog adapters. Each provider
// (Google Books, OpenAlex, arXiv) is a narrow translation layer: it builds
// its own wire request, parses its own wire format, and emits normalized
// Candidates. Provider-native shapes never leave this package.
package provider

import (
	"context"
	"net/http"

	"github.com/campusware/unihub/pkg/types"
)

// Provider searches a single external catalog. Each provider implements
// this interface per the Strategy pattern.
type Provider interface {
	Name() string

	// Enabled reports whether the provider may be dispatched. A provider
	// whose credential is missing is disabled, not broken.
	Enabled() bool

	Search(ctx context.Context, query string, limit int) ([]types.Candidate, error)
}

// Configured returns the providers switched on in cfg, in a stable order.
// A provider without its credential is left out entirely so the engine
// never attempts network I/O for it.
func Configured(client *http.Client, cfg types.SearchConfig) []Provider {
	var providers []Provider
	if cfg.EnableGoogleBooks {
		p := &GoogleBooks{Client: client, APIKey: cfg.GoogleBooksAPIKey}
		if p.Enabled() {
			providers = append(providers, p)
		}
	}
	if cfg.EnableOpenAlex {
		providers = append(providers, &OpenAlex{Client: client, Email: cfg.OpenAlexEmail})
	}
	if cfg.EnableArxiv {
		providers = append(providers, &Arxiv{Client: client})
	}
	return providers
}

// authorsOrUnknown guarantees a non-empty author list on every candidate.
func authorsOrUnknown(authors []string) []string {
	if len(authors) == 0 {
		return []string{"Unknown"}
	}
	return authors
}

// clampLimit applies the default and upper bound for per-provider result caps.
func clampLimit(limit, max int) int {
	if limit <= 0 {
		return 10
	}
	if limit > max {
		return max
	}
	return limit
}
